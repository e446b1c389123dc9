package performance

import (
	"fmt"
	"sort"
	"time"

	"RiskSentinel/internal/analytics"
	"RiskSentinel/internal/model"
)

// CalculatePerformanceMetrics builds the full performance report:
// period returns, benchmark comparison, risk-adjusted ratios and
// per-position attribution. The benchmark history may be empty, in
// which case benchmark-relative fields fall back to their sentinels.
func CalculatePerformanceMetrics(histories map[string]model.PriceHistory, weights model.WeightMap, benchmark model.PriceHistory, params analytics.Params) (model.PerformanceMetrics, error) {
	values, dates, err := BuildValueSeries(histories, weights, params)
	if err != nil {
		return model.PerformanceMetrics{}, err
	}

	dailyReturns := simpleReturns(values)
	benchPrices := alignBenchmark(benchmark, len(values))
	var benchReturns []float64
	if benchPrices != nil {
		benchReturns = simpleReturns(benchPrices)
	}

	attribution, err := calculateAttribution(histories, weights, params)
	if err != nil {
		return model.PerformanceMetrics{}, err
	}

	return model.PerformanceMetrics{
		PeriodReturns: calculatePeriodReturns(values, dates, params),
		Benchmark:     compareBenchmark(values, benchPrices, dailyReturns, benchReturns, params),
		RiskAdjusted:  calculateRatios(dailyReturns, benchReturns, params),
		Attribution:   attribution,
	}, nil
}

// simpleReturns converts a value series into daily simple returns.
func simpleReturns(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = values[i]/values[i-1] - 1
	}
	return out
}

// alignBenchmark right-aligns the benchmark closes to the portfolio
// series length, or returns nil when coverage is insufficient.
func alignBenchmark(benchmark model.PriceHistory, n int) []float64 {
	if len(benchmark) < n || n < 2 {
		return nil
	}
	return benchmark.Tail(n).Closes()
}

// calculatePeriodReturns computes cumulative returns to the standard
// period boundaries derived from the series' final date. A boundary
// maps to the first observation on or after it; trailing one-year is
// nil when the series does not reach back a full year.
func calculatePeriodReturns(values []float64, dates []time.Time, params analytics.Params) model.PeriodReturns {
	last := dates[len(dates)-1]
	lastVal := values[len(values)-1]

	monthStart := time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, last.Location())
	quarterMonth := time.Month((int(last.Month())-1)/3*3 + 1)
	quarterStart := time.Date(last.Year(), quarterMonth, 1, 0, 0, 0, 0, last.Location())
	yearStart := time.Date(last.Year(), time.January, 1, 0, 0, 0, 0, last.Location())
	oneYearAgo := last.AddDate(-1, 0, 0)

	returnFrom := func(boundary time.Time) *float64 {
		for i, d := range dates {
			if !d.Before(boundary) {
				r := round2((lastVal/values[i] - 1) * 100)
				return &r
			}
		}
		return nil
	}

	var oneYear *float64
	if !dates[0].After(oneYearAgo) {
		oneYear = returnFrom(oneYearAgo)
	}

	sinceInception := lastVal/values[0] - 1
	nDays := len(values)
	annualized := pow1p(sinceInception, float64(params.TradingDays)/float64(nDays))

	return model.PeriodReturns{
		MTD:            returnFrom(monthStart),
		QTD:            returnFrom(quarterStart),
		YTD:            returnFrom(yearStart),
		OneYear:        oneYear,
		SinceInception: round2(sinceInception * 100),
		Annualized:     round2(annualized * 100),
	}
}

// compareBenchmark computes active return, tracking error and
// information ratio against the aligned benchmark.
func compareBenchmark(values, benchPrices, dailyReturns, benchReturns []float64, params analytics.Params) model.BenchmarkComparison {
	portfolioReturn := values[len(values)-1]/values[0] - 1
	out := model.BenchmarkComparison{
		PortfolioReturn: round2(portfolioReturn * 100),
	}
	if benchPrices == nil || len(benchReturns) != len(dailyReturns) {
		return out
	}

	benchReturn := benchPrices[len(benchPrices)-1]/benchPrices[0] - 1
	active := make([]float64, len(dailyReturns))
	for i := range dailyReturns {
		active[i] = dailyReturns[i] - benchReturns[i]
	}
	trackingError := analytics.PopStdDev(active) * params.AnnualFactor()

	out.BenchmarkReturn = round2(benchReturn * 100)
	out.ActiveReturn = round2((portfolioReturn - benchReturn) * 100)
	out.TrackingError = round2(trackingError * 100)
	if trackingError > 0 {
		ir := round2(analytics.Mean(active) * float64(params.TradingDays) / trackingError)
		out.InformationRatio = &ir
	}
	return out
}

// calculateRatios computes Sharpe, Sortino, Treynor and Calmar from
// the daily return series. Treynor needs a positive benchmark beta;
// Calmar needs a positive max drawdown; both are nil otherwise.
func calculateRatios(dailyReturns, benchReturns []float64, params analytics.Params) model.RiskAdjustedRatios {
	annualReturn := analytics.Mean(dailyReturns) * float64(params.TradingDays)
	volatility := analytics.PopStdDev(dailyReturns) * params.AnnualFactor()
	excess := annualReturn - params.RiskFreeRate

	sharpe := 0.0
	if volatility > 0 {
		sharpe = excess / volatility
	}

	var downside []float64
	for _, r := range dailyReturns {
		if r < 0 {
			downside = append(downside, r)
		}
	}
	sortino := 0.0
	if dd := analytics.PopStdDev(downside) * params.AnnualFactor(); dd > 0 {
		sortino = excess / dd
	}

	out := model.RiskAdjustedRatios{
		Sharpe:  round2(sharpe),
		Sortino: round2(sortino),
	}

	if len(benchReturns) == len(dailyReturns) && len(benchReturns) >= params.MinObservations {
		if beta, err := analytics.CalculateBeta(dailyReturns, benchReturns, params); err == nil && beta.Beta > 0 {
			treynor := round2(excess / beta.Beta * 100)
			out.Treynor = &treynor
		}
	}

	maxDD := maxDrawdownPct(dailyReturns)
	if maxDD > 0 {
		calmar := round2(annualReturn * 100 / maxDD)
		out.Calmar = &calmar
	}
	return out
}

// maxDrawdownPct is the max drawdown of the cumulative return curve
// as a positive percentage magnitude.
func maxDrawdownPct(returns []float64) float64 {
	cumulative := 1.0
	peak := 0.0
	minDD := 0.0
	for _, r := range returns {
		cumulative *= 1 + r
		if cumulative > peak {
			peak = cumulative
		}
		if dd := cumulative/peak - 1; dd < minDD {
			minDD = dd
		}
	}
	return -minDD * 100
}

// calculateAttribution decomposes total return by position over the
// aligned window: contribution = weight × (last/first − 1), with
// weights renormalized over eligible instruments.
func calculateAttribution(histories map[string]model.PriceHistory, weights model.WeightMap, params analytics.Params) (model.PerformanceAttribution, error) {
	tickers, minLen, err := eligibleWindow(histories, weights, params)
	if err != nil {
		return model.PerformanceAttribution{}, err
	}

	var weightSum float64
	for _, t := range tickers {
		weightSum += weights[t]
	}
	if weightSum == 0 {
		return model.PerformanceAttribution{}, fmt.Errorf("eligible weights sum to zero: %w", analytics.ErrInvalidParameter)
	}

	var total float64
	raw := make([]float64, len(tickers))
	contributions := make([]model.PositionContribution, 0, len(tickers))
	for i, t := range tickers {
		closes := histories[t].Tail(minLen).Closes()
		posReturn := closes[len(closes)-1]/closes[0] - 1
		weight := weights[t] / weightSum
		raw[i] = weight * posReturn
		total += raw[i]
		contributions = append(contributions, model.PositionContribution{
			Ticker:         t,
			Weight:         round2(weight * 100),
			PositionReturn: round2(posReturn * 100),
			Contribution:   round2(raw[i] * 100),
		})
	}
	for i := range contributions {
		if total != 0 {
			contributions[i].PctOfTotal = round2(raw[i] / total * 100)
		}
	}
	sort.Slice(contributions, func(i, j int) bool {
		return contributions[i].Contribution > contributions[j].Contribution
	})

	return model.PerformanceAttribution{
		TotalReturn:   round2(total * 100),
		Contributions: contributions,
	}, nil
}
