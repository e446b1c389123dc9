package analytics

import (
	"fmt"

	"RiskSentinel/internal/model"
)

// DefaultRollingWindow is the standard window for rolling risk series.
const DefaultRollingWindow = 20

// CalculateRollingMetrics slides a fixed window over the portfolio
// return series and reports VaR(95) and volatility per window, with
// right-aligned dates. The drawdown series is the point-in-time
// drawdown of the full cumulative curve, not re-windowed.
func CalculateRollingMetrics(histories map[string]model.PriceHistory, weights model.WeightMap, window int, params Params) (model.RollingMetrics, error) {
	if window <= 0 {
		return model.RollingMetrics{}, fmt.Errorf("window must be positive, got %d: %w", window, ErrInvalidParameter)
	}
	returns, dates, err := PortfolioReturnsWithDates(histories, weights, params)
	if err != nil {
		return model.RollingMetrics{}, err
	}
	if len(returns) < window {
		return model.RollingMetrics{}, fmt.Errorf("window %d exceeds series length %d: %w", window, len(returns), ErrInvalidParameter)
	}

	annual := params.AnnualFactor()
	n := len(returns)
	count := n - window + 1
	rollingVar := make([]float64, 0, count)
	rollingVol := make([]float64, 0, count)

	for i := window; i <= n; i++ {
		windowReturns := returns[i-window : i]
		rollingVol = append(rollingVol, round2(PopStdDev(windowReturns)*annual*100))
		rollingVar = append(rollingVar, round2(-Percentile(windowReturns, 5)*annual*100))
	}

	ddSeries, _, _ := drawdownCurve(returns)
	drawdowns := make([]float64, 0, count)
	for _, dd := range ddSeries[window-1:] {
		drawdowns = append(drawdowns, round2(dd*100))
	}

	return model.RollingMetrics{
		Dates:             dates[window-1:],
		RollingVar95:      rollingVar,
		RollingVolatility: rollingVol,
		DrawdownSeries:    drawdowns,
	}, nil
}
