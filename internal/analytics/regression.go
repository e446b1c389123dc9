package analytics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"RiskSentinel/internal/model"
)

// FactorNames are the three named factor series for the multi-factor
// regression, in coefficient order after the intercept.
var FactorNames = []string{"market", "size", "value"}

// CalculateBeta regresses portfolio returns against a benchmark:
// beta = cov(p,b)/var(b), annualized alpha, R² as squared correlation.
// Both series must be equal-length and meet the minimum sample size.
func CalculateBeta(portfolio, benchmark []float64, params Params) (model.BetaMetrics, error) {
	if len(portfolio) != len(benchmark) {
		return model.BetaMetrics{}, fmt.Errorf("series lengths differ (%d vs %d): %w", len(portfolio), len(benchmark), ErrInsufficientData)
	}
	if len(portfolio) < params.MinObservations {
		return model.BetaMetrics{}, fmt.Errorf("beta needs %d returns, got %d: %w", params.MinObservations, len(portfolio), ErrInsufficientData)
	}

	cov := stat.Covariance(portfolio, benchmark, nil)
	varBenchmark := PopVariance(benchmark)
	beta := 0.0
	if varBenchmark > 0 {
		beta = cov / varBenchmark
	}

	alpha := (Mean(portfolio) - beta*Mean(benchmark)) * float64(params.TradingDays)

	correlation := 0.0
	if PopVariance(portfolio) > 0 && varBenchmark > 0 {
		correlation = stat.Correlation(portfolio, benchmark, nil)
	}

	return model.BetaMetrics{
		Beta:        round3(beta),
		Alpha:       round2(alpha * 100),
		RSquared:    round3(correlation * correlation),
		Correlation: round3(correlation),
	}, nil
}

// CalculateFactorExposures runs an ordinary least squares regression of
// portfolio returns on an intercept plus the market, size and value
// factor series. All factor series must be present and aligned to the
// portfolio series length.
func CalculateFactorExposures(portfolio []float64, factors map[string][]float64) (model.FactorExposures, error) {
	n := len(portfolio)
	for _, name := range FactorNames {
		series, ok := factors[name]
		if !ok {
			return model.FactorExposures{}, fmt.Errorf("missing factor %q: %w", name, ErrRegressionUnavailable)
		}
		if len(series) != n {
			return model.FactorExposures{}, fmt.Errorf("factor %q length %d != %d: %w", name, len(series), n, ErrRegressionUnavailable)
		}
	}
	if n <= len(FactorNames)+1 {
		return model.FactorExposures{}, fmt.Errorf("under-determined system with %d observations: %w", n, ErrRegressionUnavailable)
	}

	cols := len(FactorNames) + 1
	x := mat.NewDense(n, cols, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		for j, name := range FactorNames {
			x.Set(i, j+1, factors[name][i])
		}
	}
	y := mat.NewVecDense(n, portfolio)

	var beta mat.VecDense
	if err := beta.SolveVec(x, y); err != nil {
		return model.FactorExposures{}, fmt.Errorf("least squares solve: %w", ErrRegressionUnavailable)
	}

	// R² = 1 - SS_res/SS_tot against the fitted values.
	var fitted mat.VecDense
	fitted.MulVec(x, &beta)
	meanY := Mean(portfolio)
	var ssRes, ssTot float64
	for i := 0; i < n; i++ {
		res := portfolio[i] - fitted.AtVec(i)
		ssRes += res * res
		dev := portfolio[i] - meanY
		ssTot += dev * dev
	}
	rSquared := 0.0
	if ssTot > 0 {
		rSquared = 1 - ssRes/ssTot
	}

	return model.FactorExposures{
		MarketBeta: round3(beta.AtVec(1)),
		SizeBeta:   round3(beta.AtVec(2)),
		ValueBeta:  round3(beta.AtVec(3)),
		RSquared:   round3(rSquared),
	}, nil
}
