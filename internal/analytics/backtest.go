package analytics

import (
	"fmt"

	"RiskSentinel/internal/model"
)

// DefaultBacktestWindow is the standard lookback for VaR backtesting.
const DefaultBacktestWindow = 60

// BacktestVar estimates VaR from each trailing window and compares it
// against the realized next-day return. A breach is a realized return
// below the negated prediction. A healthy 95% model breaches on about
// 5% of days; deviation is a model-validity signal, not an error.
func BacktestVar(histories map[string]model.PriceHistory, weights model.WeightMap, window int, confidence float64, params Params) (model.VarBacktest, error) {
	if window <= 0 {
		return model.VarBacktest{}, fmt.Errorf("window must be positive, got %d: %w", window, ErrInvalidParameter)
	}
	if confidence <= 0 || confidence >= 1 {
		return model.VarBacktest{}, fmt.Errorf("confidence %v outside (0,1): %w", confidence, ErrInvalidParameter)
	}
	returns, dates, err := PortfolioReturnsWithDates(histories, weights, params)
	if err != nil {
		return model.VarBacktest{}, err
	}
	if len(returns) < window+1 {
		return model.VarBacktest{}, fmt.Errorf("backtest needs %d returns, got %d: %w", window+1, len(returns), ErrInvalidParameter)
	}

	percentile := (1 - confidence) * 100
	n := len(returns)
	predicted := make([]float64, 0, n-window)
	realized := make([]float64, 0, n-window)
	backtestDates := make([]string, 0, n-window)
	breaches := 0

	for i := window; i < n; i++ {
		varEstimate := round2(-Percentile(returns[i-window:i], percentile) * 100)
		realizedPct := round2(returns[i] * 100)
		if realizedPct < -varEstimate {
			breaches++
		}
		predicted = append(predicted, varEstimate)
		realized = append(realized, realizedPct)
		backtestDates = append(backtestDates, dates[i])
	}

	breachRate := 0.0
	if len(realized) > 0 {
		breachRate = float64(breaches) / float64(len(realized))
	}

	return model.VarBacktest{
		Dates:           backtestDates,
		PredictedVar:    predicted,
		RealizedReturns: realized,
		Breaches:        breaches,
		BreachRate:      round2(breachRate * 100),
	}, nil
}
