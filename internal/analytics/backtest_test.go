package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskSentinel/internal/model"
)

func TestBacktestVar_CountsBreaches(t *testing.T) {
	params := DefaultParams()
	// Flat +0.1% days with three engineered -5% crashes after the
	// warmup window. Every crash breaches the VaR estimated from the
	// calm trailing window.
	n := 100
	window := 60
	returns := make([]float64, n)
	for i := range returns {
		returns[i] = 0.001
	}
	returns[70] = -0.05
	returns[80] = -0.05
	returns[90] = -0.05

	closes := make([]float64, n+1)
	closes[0] = 100
	for i, r := range returns {
		closes[i+1] = closes[i] * (1 + r)
	}
	histories := map[string]model.PriceHistory{
		"AAA": historyFromCloses(closes),
	}

	result, err := BacktestVar(histories, model.WeightMap{"AAA": 1}, window, 0.95, params)
	require.NoError(t, err)

	assert.Len(t, result.PredictedVar, n-window)
	assert.Len(t, result.RealizedReturns, n-window)
	assert.Len(t, result.Dates, n-window)
	assert.Equal(t, 3, result.Breaches)
	assert.InDelta(t, 7.5, result.BreachRate, 1e-9)
}

func TestBacktestVar_InvalidWindow(t *testing.T) {
	params := DefaultParams()
	histories := map[string]model.PriceHistory{
		"AAA": historyFromCloses(noisyCloses(120, 0.0003, 0.01, 3)),
	}
	_, err := BacktestVar(histories, model.WeightMap{"AAA": 1}, 0, 0.95, params)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestBacktestVar_InvalidConfidence(t *testing.T) {
	params := DefaultParams()
	histories := map[string]model.PriceHistory{
		"AAA": historyFromCloses(noisyCloses(120, 0.0003, 0.01, 3)),
	}
	_, err := BacktestVar(histories, model.WeightMap{"AAA": 1}, 60, 1.5, params)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestBacktestVar_SeriesShorterThanWindow(t *testing.T) {
	params := DefaultParams()
	histories := map[string]model.PriceHistory{
		"AAA": historyFromCloses(noisyCloses(40, 0.0003, 0.01, 3)),
	}
	_, err := BacktestVar(histories, model.WeightMap{"AAA": 1}, 60, 0.95, params)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
