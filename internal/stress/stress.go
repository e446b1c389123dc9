// Package stress applies instantaneous asset-class shocks to a
// portfolio and reports per-position and total P&L in percent of value.
package stress

import (
	"errors"
	"math"

	"RiskSentinel/internal/model"
)

// ErrUnknownScenario is returned when a scenario id is not registered.
var ErrUnknownScenario = errors.New("unknown stress scenario")

// Scenarios are the standard historical/hypothetical shock sets.
var Scenarios = []model.StressScenario{
	{
		ID:          "equity_crash",
		Name:        "Equity Crash",
		Description: "Equity -20%, Flight to quality (bonds +5%)",
		Shocks:      map[string]float64{"equity": -20, "fixed_income": 5, "commodity": -10, "cash": 0},
	},
	{
		ID:          "rate_shock_up",
		Name:        "Rate Shock Up",
		Description: "Rates +200bps, Bonds down significantly",
		Shocks:      map[string]float64{"equity": -5, "fixed_income": -15, "commodity": 0, "cash": 0},
	},
	{
		ID:          "rate_shock_down",
		Name:        "Rate Shock Down",
		Description: "Rates -100bps, Bonds rally",
		Shocks:      map[string]float64{"equity": 3, "fixed_income": 10, "commodity": 5, "cash": 0},
	},
	{
		ID:          "credit_spread",
		Name:        "Credit Spread Widening",
		Description: "IG +100bps, HY +300bps, Treasuries rally",
		Shocks:      map[string]float64{"equity": -10, "fixed_income": -8, "commodity": -5, "cash": 0},
	},
	{
		ID:          "stagflation",
		Name:        "Stagflation",
		Description: "Equity -15%, Rates +150bps, Gold +10%",
		Shocks:      map[string]float64{"equity": -15, "fixed_income": -12, "commodity": 10, "cash": 0},
	},
	{
		ID:          "risk_off",
		Name:        "Risk-Off",
		Description: "Equity -10%, Credit spreads +150bps, Gold +5%",
		Shocks:      map[string]float64{"equity": -10, "fixed_income": -3, "commodity": 5, "cash": 0},
	},
}

var scenarioIndex = func() map[string]model.StressScenario {
	m := make(map[string]model.StressScenario, len(Scenarios))
	for _, s := range Scenarios {
		m[s.ID] = s
	}
	return m
}()

// Scenario looks up a registered scenario by id.
func Scenario(id string) (model.StressScenario, bool) {
	s, ok := scenarioIndex[id]
	return s, ok
}

// RunScenario applies a registered scenario to a portfolio.
func RunScenario(scenarioID string, portfolio model.Portfolio) (model.StressResult, error) {
	scenario, ok := Scenario(scenarioID)
	if !ok {
		return model.StressResult{}, ErrUnknownScenario
	}
	return apply(scenario, portfolio), nil
}

// RunCustom applies caller-supplied asset-class shocks.
func RunCustom(shocks map[string]float64, portfolio model.Portfolio) model.StressResult {
	return apply(model.StressScenario{
		ID:     "custom",
		Name:   "Custom Scenario",
		Shocks: shocks,
	}, portfolio)
}

func apply(scenario model.StressScenario, portfolio model.Portfolio) model.StressResult {
	result := model.StressResult{
		ScenarioID:    scenario.ID,
		ScenarioName:  scenario.Name,
		PortfolioID:   portfolio.ID,
		PortfolioName: portfolio.Name,
		Positions:     make([]model.StressPosition, 0, len(portfolio.Positions)),
	}

	var total float64
	for _, pos := range portfolio.Positions {
		assetClass := pos.AssetClass
		if assetClass == "" {
			assetClass = "equity"
		}
		shock := scenario.Shocks[assetClass]
		pnl := pos.Weight * shock
		total += pnl

		result.Positions = append(result.Positions, model.StressPosition{
			Ticker:     pos.Ticker,
			Name:       pos.Name,
			Weight:     pos.Weight,
			AssetClass: assetClass,
			Shock:      shock,
			PnlPct:     round2(pnl),
		})
	}
	result.TotalPnlPct = round2(total)
	return result
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
