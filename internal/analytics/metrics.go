package analytics

import (
	"fmt"

	"RiskSentinel/internal/model"
)

// CalculateRiskMetrics computes the core risk numbers from a daily
// return series. Percentages are annualized and rounded to two
// decimals at this boundary; both drawdowns are positive magnitudes.
func CalculateRiskMetrics(returns []float64, params Params) (model.RiskMetrics, error) {
	if len(returns) < params.MinObservations {
		return model.RiskMetrics{}, fmt.Errorf("risk metrics need %d returns, got %d: %w", params.MinObservations, len(returns), ErrInsufficientData)
	}

	annual := params.AnnualFactor()
	volatility := PopStdDev(returns) * annual
	meanAnnual := Mean(returns) * float64(params.TradingDays)

	var95 := -Percentile(returns, 5) * annual
	var99 := -Percentile(returns, 1) * annual

	// CVaR: average of the tail at or below the 5th percentile.
	threshold := Percentile(returns, 5)
	var tail []float64
	for _, r := range returns {
		if r <= threshold {
			tail = append(tail, r)
		}
	}
	cvar95 := -Mean(tail) * annual

	sharpe := 0.0
	if volatility > 0 {
		sharpe = (meanAnnual - params.RiskFreeRate) / volatility
	}

	_, maxDD, currentDD := drawdownCurve(returns)

	return model.RiskMetrics{
		Var95:           round2(var95 * 100),
		Var99:           round2(var99 * 100),
		CVar95:          round2(cvar95 * 100),
		Volatility:      round2(volatility * 100),
		Sharpe:          round2(sharpe),
		MaxDrawdown:     round2(maxDD * 100),
		CurrentDrawdown: round2(currentDD * 100),
	}, nil
}

// drawdownCurve builds the drawdown series of the cumulative return
// curve: D[i] = C[i]/peak(C[0..i]) - 1 (non-positive). Returns the
// series in fractional units plus max and current drawdown as
// positive magnitudes.
func drawdownCurve(returns []float64) (series []float64, maxDD, currentDD float64) {
	series = make([]float64, len(returns))
	cumulative := 1.0
	peak := 0.0
	minDD := 0.0
	for i, r := range returns {
		cumulative *= 1 + r
		if cumulative > peak {
			peak = cumulative
		}
		dd := cumulative/peak - 1
		series[i] = dd
		if dd < minDD {
			minDD = dd
		}
	}
	if len(series) == 0 {
		return series, 0, 0
	}
	return series, -minDD, -series[len(series)-1]
}
