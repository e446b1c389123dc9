package analytics

import "math"

// Params carries the engine's numeric conventions. Passed explicitly
// into every computation so tests can vary them deterministically.
type Params struct {
	// TradingDays per year, used for all annualization.
	TradingDays int
	// RiskFreeRate is the annual risk-free rate for Sharpe-family ratios.
	RiskFreeRate float64
	// MinObservations is the smallest return sample any metric accepts.
	MinObservations int
	// Seed drives every random draw (Monte Carlo paths, terminal-value
	// sampling). Identical inputs and seed give bit-identical output.
	Seed uint64
}

// DefaultParams returns the production conventions: 252 trading days,
// 5% risk-free rate, 20-observation minimum, seed 42.
func DefaultParams() Params {
	return Params{
		TradingDays:     252,
		RiskFreeRate:    0.05,
		MinObservations: 20,
		Seed:            42,
	}
}

// AnnualFactor is sqrt(TradingDays), the daily-to-annual volatility scale.
func (p Params) AnnualFactor() float64 {
	return math.Sqrt(float64(p.TradingDays))
}
