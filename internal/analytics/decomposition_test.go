package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskSentinel/internal/model"
)

// noisyCloses builds a price series by compounding noisy returns.
func noisyCloses(n int, mean, sigma float64, seed uint64) []float64 {
	returns := noisyReturns(n-1, mean, sigma, seed)
	closes := make([]float64, n)
	closes[0] = 100
	for i, r := range returns {
		closes[i+1] = closes[i] * (1 + r)
	}
	return closes
}

func TestCalculateRiskContributions_SumToPortfolioRisk(t *testing.T) {
	params := DefaultParams()
	histories := map[string]model.PriceHistory{
		"AAA": historyFromCloses(noisyCloses(120, 0.0005, 0.01, 11)),
		"BBB": historyFromCloses(noisyCloses(120, 0.0002, 0.02, 22)),
		"CCC": historyFromCloses(noisyCloses(120, 0.0004, 0.015, 33)),
	}
	weights := model.WeightMap{"AAA": 0.5, "BBB": 0.3, "CCC": 0.2}

	contributions, err := CalculateRiskContributions(histories, weights, params)
	require.NoError(t, err)
	require.Len(t, contributions, 3)

	var totalPct float64
	for _, c := range contributions {
		totalPct += c.PctContribution
		assert.Greater(t, c.Volatility, 0.0)
	}
	// Component contributions decompose total risk exactly; only the
	// per-entry rounding can move the sum off 100.
	assert.InDelta(t, 100.0, totalPct, 0.05)

	// Sorted descending by contribution.
	for i := 1; i < len(contributions); i++ {
		assert.GreaterOrEqual(t, contributions[i-1].PctContribution, contributions[i].PctContribution)
	}
}

func TestCalculateCorrelationMatrix_ProportionalSeries(t *testing.T) {
	params := DefaultParams()
	closes := noisyCloses(80, 0.0003, 0.012, 5)
	doubled := make([]float64, len(closes))
	for i, c := range closes {
		doubled[i] = 2 * c
	}
	histories := map[string]model.PriceHistory{
		"AAA": historyFromCloses(closes),
		"BBB": historyFromCloses(doubled),
	}
	weights := model.WeightMap{"AAA": 0.5, "BBB": 0.5}

	corr, err := CalculateCorrelationMatrix(histories, weights, params)
	require.NoError(t, err)
	require.Equal(t, []string{"AAA", "BBB"}, corr.Tickers)

	// A scaled copy of the same price series has identical returns.
	assert.InDelta(t, 1.0, corr.Matrix[0][1], 1e-9)
	assert.InDelta(t, 1.0, corr.Matrix[0][0], 1e-9)
	assert.InDelta(t, 1.0, corr.Matrix[1][1], 1e-9)
}

func TestCalculateCorrelationMatrix_SingleInstrument(t *testing.T) {
	params := DefaultParams()
	histories := map[string]model.PriceHistory{
		"AAA": historyFromCloses(noisyCloses(60, 0.0003, 0.01, 9)),
	}
	_, err := CalculateCorrelationMatrix(histories, model.WeightMap{"AAA": 1}, params)
	assert.ErrorIs(t, err, ErrInsufficientData)
}
