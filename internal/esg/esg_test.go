package esg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskSentinel/internal/model"
)

func TestPositionESG_Deterministic(t *testing.T) {
	pos := model.Position{Ticker: "AAPL", Name: "Apple Inc", Weight: 0.08, Sector: "Technology"}
	first := PositionESG(pos)
	second := PositionESG(pos)
	assert.Equal(t, first, second)

	assert.GreaterOrEqual(t, first.ESGScore, 0.0)
	assert.LessOrEqual(t, first.ESGScore, 100.0)
	assert.Equal(t, 8.0, first.Weight)
	assert.False(t, first.ControversyFlag)
}

func TestPositionESG_CashIsPerfect(t *testing.T) {
	scored := PositionESG(model.Position{Ticker: model.CashTicker, Name: "Cash", Weight: 0.05})
	assert.Equal(t, 100.0, scored.ESGScore)
	assert.Equal(t, 100.0, scored.Environmental)
	assert.Equal(t, 100.0, scored.Social)
	assert.Equal(t, 100.0, scored.Governance)
	assert.Equal(t, 0.0, scored.CarbonIntensity)
}

func TestPositionESG_ControversyFlag(t *testing.T) {
	scored := PositionESG(model.Position{Ticker: "XOM", Name: "Exxon Mobil", Weight: 0.03, Sector: "Energy"})
	assert.True(t, scored.ControversyFlag)
	assert.Contains(t, scored.ControversyDetails, "Environmental litigation")
}

func TestPositionESG_UnknownSectorFallsBack(t *testing.T) {
	scored := PositionESG(model.Position{Ticker: "ZZZT", Weight: 0.02, Sector: "Made Up"})
	// Unknown profile is 50 across pillars, variation stays within ±20%.
	assert.GreaterOrEqual(t, scored.Environmental, 40.0)
	assert.LessOrEqual(t, scored.Environmental, 60.0)
}

func TestRating_Thresholds(t *testing.T) {
	assert.Equal(t, "AAA", Rating(85))
	assert.Equal(t, "AA", Rating(70))
	assert.Equal(t, "A", Rating(60))
	assert.Equal(t, "BBB", Rating(50))
	assert.Equal(t, "BB", Rating(40))
	assert.Equal(t, "B", Rating(30))
	assert.Equal(t, "CCC", Rating(29.9))
}

func TestCalculatePortfolioESG_Aggregation(t *testing.T) {
	portfolio := model.Portfolio{
		ID:   1,
		Name: "Test",
		Positions: []model.Position{
			{Ticker: "AAPL", Weight: 0.40, Sector: "Technology"},
			{Ticker: "XOM", Weight: 0.40, Sector: "Energy"},
			{Ticker: model.CashTicker, Weight: 0.20},
		},
	}

	result := CalculatePortfolioESG(portfolio)

	// Cash is excluded from positions and coverage.
	require.Len(t, result.Positions, 2)
	assert.Equal(t, 80.0, result.CoveragePct)
	assert.Equal(t, 1, result.ControversyCount)
	assert.Equal(t, 140.0, result.BenchmarkCarbon)
	assert.Equal(t, Rating(result.ESGScore), result.Rating)

	// Worst score first; Energy scores below Technology.
	assert.Equal(t, "XOM", result.Positions[0].Ticker)

	var distTotal int
	for _, n := range result.RatingDistribution {
		distTotal += n
	}
	assert.Equal(t, 2, distTotal)
}

func TestCalculatePortfolioESG_CarbonVsBenchmark(t *testing.T) {
	heavy := CalculatePortfolioESG(model.Portfolio{Positions: []model.Position{
		{Ticker: "XOM", Weight: 1, Sector: "Energy"},
	}})
	light := CalculatePortfolioESG(model.Portfolio{Positions: []model.Position{
		{Ticker: "JPM", Weight: 1, Sector: "Financials"},
	}})

	assert.Positive(t, heavy.CarbonVsBenchmark)
	assert.Negative(t, light.CarbonVsBenchmark)
}

func TestCalculatePortfolioESG_Empty(t *testing.T) {
	result := CalculatePortfolioESG(model.Portfolio{})
	assert.Empty(t, result.Positions)
	assert.Equal(t, 0.0, result.CoveragePct)
	assert.Equal(t, 0.0, result.ESGScore)
}
