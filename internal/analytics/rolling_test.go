package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskSentinel/internal/model"
)

func TestCalculateRollingMetrics_SeriesShape(t *testing.T) {
	params := DefaultParams()
	histories := map[string]model.PriceHistory{
		"AAA": historyFromCloses(noisyCloses(101, 0.0003, 0.012, 21)),
	}
	weights := model.WeightMap{"AAA": 1}

	result, err := CalculateRollingMetrics(histories, weights, 20, params)
	require.NoError(t, err)

	// 100 returns, window 20: 81 windows, all series aligned.
	require.Len(t, result.RollingVar95, 81)
	assert.Len(t, result.RollingVolatility, 81)
	assert.Len(t, result.DrawdownSeries, 81)
	assert.Len(t, result.Dates, 81)

	for i, dd := range result.DrawdownSeries {
		assert.LessOrEqual(t, dd, 0.0, "drawdown at %d", i)
	}
	for _, vol := range result.RollingVolatility {
		assert.GreaterOrEqual(t, vol, 0.0)
	}
}

func TestCalculateRollingMetrics_ConstantReturns(t *testing.T) {
	params := DefaultParams()
	histories := map[string]model.PriceHistory{
		"AAA": historyFromCloses(growthSeries(100, 0.001, 60)),
	}
	result, err := CalculateRollingMetrics(histories, model.WeightMap{"AAA": 1}, 20, params)
	require.NoError(t, err)

	for _, vol := range result.RollingVolatility {
		assert.Equal(t, 0.0, vol)
	}
	for _, dd := range result.DrawdownSeries {
		assert.Equal(t, 0.0, dd)
	}
}

func TestCalculateRollingMetrics_WindowTooLarge(t *testing.T) {
	params := DefaultParams()
	histories := map[string]model.PriceHistory{
		"AAA": historyFromCloses(noisyCloses(30, 0.0003, 0.01, 2)),
	}
	_, err := CalculateRollingMetrics(histories, model.WeightMap{"AAA": 1}, 60, params)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestCalculateTailRisk_WorstAndBestDays(t *testing.T) {
	params := DefaultParams()
	closes := growthSeries(100, 0.001, 50)
	// Inject one crash and one spike mid-series.
	closes[25] = closes[24] * 0.9
	closes[26] = closes[25] * 1.15
	histories := map[string]model.PriceHistory{
		"AAA": historyFromCloses(closes),
	}

	result, err := CalculateTailRisk(histories, model.WeightMap{"AAA": 1}, 5, params)
	require.NoError(t, err)

	require.Len(t, result.WorstDays, 5)
	require.Len(t, result.BestDays, 5)
	assert.InDelta(t, -10.54, result.WorstDays[0].ReturnPct, 0.01)
	assert.InDelta(t, 13.98, result.BestDays[0].ReturnPct, 0.01)

	// Worst ascending from the bottom, best descending from the top.
	assert.Less(t, result.WorstDays[0].ReturnPct, result.WorstDays[1].ReturnPct)
	assert.Greater(t, result.BestDays[0].ReturnPct, result.BestDays[1].ReturnPct)
}

func TestCalculateWhatIf_ShiftToLowVolAsset(t *testing.T) {
	params := DefaultParams()
	histories := map[string]model.PriceHistory{
		"CALM": historyFromCloses(noisyCloses(120, 0.0003, 0.004, 41)),
		"WILD": historyFromCloses(noisyCloses(120, 0.0003, 0.025, 42)),
	}
	original := model.WeightMap{"CALM": 0.2, "WILD": 0.8}
	modified := model.WeightMap{"CALM": 0.8, "WILD": 0.2}

	result, err := CalculateWhatIf(histories, original, modified, params)
	require.NoError(t, err)

	assert.Less(t, result.Modified.Volatility, result.Original.Volatility)
	assert.Negative(t, result.Delta["volatility"])
	assert.InDelta(t, result.Modified.Var95-result.Original.Var95, result.Delta["var_95"], 0.01)
}
