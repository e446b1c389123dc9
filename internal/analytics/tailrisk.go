package analytics

import (
	"sort"

	"RiskSentinel/internal/model"
)

// CalculateTailRisk reports skewness, excess kurtosis and the n worst
// and best days of the portfolio return series.
func CalculateTailRisk(histories map[string]model.PriceHistory, weights model.WeightMap, n int, params Params) (model.TailRiskStats, error) {
	returns, dates, err := PortfolioReturnsWithDates(histories, weights, params)
	if err != nil {
		return model.TailRiskStats{}, err
	}

	paired := make([]model.DayReturn, len(returns))
	for i, r := range returns {
		paired[i] = model.DayReturn{Date: dates[i], ReturnPct: round2(r * 100)}
	}
	sort.Slice(paired, func(i, j int) bool { return paired[i].ReturnPct < paired[j].ReturnPct })

	if n > len(paired) {
		n = len(paired)
	}
	worst := make([]model.DayReturn, n)
	copy(worst, paired[:n])
	best := make([]model.DayReturn, 0, n)
	for i := 0; i < n; i++ {
		best = append(best, paired[len(paired)-1-i])
	}

	return model.TailRiskStats{
		Skewness:  round3(Skewness(returns)),
		Kurtosis:  round3(ExcessKurtosis(returns)),
		WorstDays: worst,
		BestDays:  best,
	}, nil
}
