package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskSentinel/internal/analytics"
	"RiskSentinel/internal/marketdata"
	"RiskSentinel/internal/model"
	"RiskSentinel/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	provider := marketdata.NewProvider(&marketdata.MockFetcher{}, marketdata.NewMemoryCache(), zerolog.Nop())
	return New(store.NewMemoryStore(), provider, analytics.DefaultParams(), Options{Mode: "test"}, zerolog.Nop())
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	body := decode[map[string]string](t, w)
	assert.Equal(t, "ok", body["status"])
}

func TestListPortfolios(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/portfolios", nil)

	require.Equal(t, http.StatusOK, w.Code)
	portfolios := decode[[]model.Portfolio](t, w)
	require.Len(t, portfolios, len(store.SeedPortfolios))
	assert.Equal(t, store.SeedPortfolios[0].Name, portfolios[0].Name)
}

func TestGetPortfolio_NotFound(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/portfolios/9999", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "Portfolio not found", body["detail"])
}

func TestGetPortfolio_InvalidID(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/portfolios/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAndDeletePortfolio(t *testing.T) {
	s := newTestServer(t)

	payload := model.Portfolio{
		Name: "Scratch",
		Type: model.TypeEquity,
		Positions: []model.Position{
			{Ticker: "AAPL", Weight: 0.6, AssetClass: "equity", Sector: "Technology"},
			{Ticker: model.CashTicker, Weight: 0.4, AssetClass: "cash"},
		},
	}
	w := doRequest(t, s, http.MethodPost, "/api/portfolios", payload)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[model.Portfolio](t, w)
	assert.Positive(t, created.ID)

	w = doRequest(t, s, http.MethodDelete, fmt.Sprintf("/api/portfolios/%d", created.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, s, http.MethodGet, fmt.Sprintf("/api/portfolios/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRisk(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/portfolios/1/risk", nil)

	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	metrics := decode[model.ComparativeRiskMetrics](t, w)
	assert.Greater(t, metrics.Portfolio.Volatility, 0.0)
	assert.GreaterOrEqual(t, metrics.Portfolio.Var99, metrics.Portfolio.Var95)
}

func TestGetRiskContributions(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/portfolios/1/risk/contributions", nil)

	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	contributions := decode[[]model.RiskContribution](t, w)
	assert.NotEmpty(t, contributions)
}

func TestGetMonteCarlo_InvalidSimulations(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/portfolios/1/risk/montecarlo?simulations=-5", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMonteCarlo(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/portfolios/1/risk/montecarlo?simulations=500&horizon=20", nil)

	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	result := decode[model.MonteCarloResult](t, w)
	assert.Equal(t, 500, result.Simulations)
	assert.Equal(t, 20, result.Horizon)
	assert.Len(t, result.FanChart.Days, 21)
}

func TestRunWhatIf(t *testing.T) {
	s := newTestServer(t)
	payload := map[string]map[string]float64{
		"changes": {"AAPL": 0.15},
	}
	w := doRequest(t, s, http.MethodPost, "/api/portfolios/1/risk/whatif", payload)

	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	result := decode[model.WhatIfResult](t, w)
	assert.Contains(t, result.Delta, "volatility")
}

func TestGetSectorConcentration(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/portfolios/1/concentration/sector", nil)

	require.Equal(t, http.StatusOK, w.Code)
	result := decode[model.SectorConcentration](t, w)
	assert.NotEmpty(t, result.Sectors)
	assert.Greater(t, result.HHI, 0.0)
}

func TestGetLiquidity(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/portfolios/1/liquidity", nil)

	require.Equal(t, http.StatusOK, w.Code)
	result := decode[model.PortfolioLiquidity](t, w)
	assert.NotEmpty(t, result.Positions)
	assert.GreaterOrEqual(t, result.WeightedScore, 0.0)
	assert.LessOrEqual(t, result.WeightedScore, 100.0)
}

func TestGetPerformance(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/portfolios/1/performance", nil)

	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	result := decode[model.PerformanceMetrics](t, w)
	assert.NotEmpty(t, result.Attribution.Contributions)
}

func TestGetGIPS(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/portfolios/1/gips?fee_bps=75", nil)

	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	result := decode[model.GIPSMetrics](t, w)
	assert.Equal(t, "75 bps annual management fee", result.FeeSchedule)
	assert.Len(t, result.DisclosureChecklist, 7)
}

func TestGetESG(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/portfolios/1/esg", nil)

	require.Equal(t, http.StatusOK, w.Code)
	result := decode[model.PortfolioESG](t, w)
	assert.NotEmpty(t, result.Positions)
	assert.NotEmpty(t, result.Rating)
}

func TestCheckGuidelines(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/portfolios/1/guidelines", nil)

	require.Equal(t, http.StatusOK, w.Code)
	report := decode[model.GuidelineReport](t, w)
	assert.NotEmpty(t, report.Results)
	assert.NotEmpty(t, report.OverallStatus)
}

func TestStressEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/stress/scenarios", nil)
	require.Equal(t, http.StatusOK, w.Code)
	scenarios := decode[[]model.StressScenario](t, w)
	assert.Len(t, scenarios, 6)

	w = doRequest(t, s, http.MethodGet, "/api/portfolios/1/stress/equity_crash", nil)
	require.Equal(t, http.StatusOK, w.Code)
	result := decode[model.StressResult](t, w)
	assert.Equal(t, "equity_crash", result.ScenarioID)
	assert.Negative(t, result.TotalPnlPct)

	w = doRequest(t, s, http.MethodGet, "/api/portfolios/1/stress/not_a_scenario", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, s, http.MethodPost, "/api/portfolios/1/stress/custom",
		map[string]map[string]float64{"shocks": {"equity": -25}})
	require.Equal(t, http.StatusOK, w.Code)
	custom := decode[model.StressResult](t, w)
	assert.Equal(t, "custom", custom.ScenarioID)

	w = doRequest(t, s, http.MethodPost, "/api/portfolios/1/stress/custom", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetQuote(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/market/aapl", nil)

	require.Equal(t, http.StatusOK, w.Code)
	quote := decode[model.Quote](t, w)
	assert.Equal(t, "AAPL", quote.Ticker)
	assert.Greater(t, quote.Price, 0.0)
}

func TestGetSnapshots_Empty(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/portfolios/1/snapshots", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuidelineDefinitions(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/guidelines/definitions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "single_position_max")
}
