package analytics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"RiskSentinel/internal/model"
)

// CalculateRiskContributions decomposes portfolio VaR across positions
// via the annualized covariance matrix: marginal VaR = (Σw)/σ_p and
// component VaR = w·marginal, both scaled by the one-tailed 95% normal
// quantile. Contributions are sorted descending by percent contribution.
func CalculateRiskContributions(histories map[string]model.PriceHistory, weights model.WeightMap, params Params) ([]model.RiskContribution, error) {
	a, err := align(histories, weights, params)
	if err != nil {
		return nil, err
	}

	cov := covarianceMatrix(a.returns, params)
	k := len(a.tickers)

	// portfolio variance = wᵀΣw
	var portfolioVar float64
	sigmaW := make([]float64, k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			sigmaW[i] += cov.At(i, j) * a.weights[j]
		}
		portfolioVar += a.weights[i] * sigmaW[i]
	}
	portfolioVol := math.Sqrt(portfolioVar)
	if portfolioVol == 0 {
		return nil, fmt.Errorf("degenerate covariance, zero portfolio volatility: %w", ErrInsufficientData)
	}

	zFactor := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.95)

	contributions := make([]model.RiskContribution, k)
	for i, ticker := range a.tickers {
		marginal := sigmaW[i] / portfolioVol
		component := a.weights[i] * marginal
		contributions[i] = model.RiskContribution{
			Ticker:          ticker,
			Weight:          round2(a.weights[i] * 100),
			Volatility:      round2(math.Sqrt(cov.At(i, i)) * 100),
			MarginalVar:     round2(marginal * zFactor * 100),
			ComponentVar:    round2(component * zFactor * 100),
			PctContribution: round2(component / portfolioVol * 100),
		}
	}
	sort.Slice(contributions, func(i, j int) bool {
		return contributions[i].PctContribution > contributions[j].PctContribution
	})
	return contributions, nil
}

// CalculateCorrelationMatrix computes the pairwise Pearson correlation
// of the aligned asset return series. Requires at least two eligible
// instruments.
func CalculateCorrelationMatrix(histories map[string]model.PriceHistory, weights model.WeightMap, params Params) (model.CorrelationMatrix, error) {
	a, err := align(histories, weights, params)
	if err != nil {
		return model.CorrelationMatrix{}, err
	}
	if len(a.tickers) < 2 {
		return model.CorrelationMatrix{}, fmt.Errorf("correlation needs >= 2 instruments, got %d: %w", len(a.tickers), ErrInsufficientData)
	}

	x := observationMatrix(a.returns)
	var corr mat.SymDense
	stat.CorrelationMatrix(&corr, x, nil)

	k := len(a.tickers)
	rows := make([][]float64, k)
	for i := 0; i < k; i++ {
		rows[i] = make([]float64, k)
		for j := 0; j < k; j++ {
			rows[i][j] = round2(clampCorr(corr.At(i, j)))
		}
	}
	return model.CorrelationMatrix{Tickers: a.tickers, Matrix: rows}, nil
}

// covarianceMatrix builds the annualized sample covariance of the
// per-instrument return series. Transient: never retained past the
// calling computation.
func covarianceMatrix(returns [][]float64, params Params) *mat.SymDense {
	x := observationMatrix(returns)
	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, x, nil)
	cov.ScaleSym(float64(params.TradingDays), &cov)
	return &cov
}

// observationMatrix lays the instrument-major return series out as the
// observations-by-variables matrix gonum's stat package expects.
func observationMatrix(returns [][]float64) *mat.Dense {
	k := len(returns)
	n := len(returns[0])
	x := mat.NewDense(n, k, nil)
	for i, series := range returns {
		for t, r := range series {
			x.Set(t, i, r)
		}
	}
	return x
}

// clampCorr bounds floating noise so correlations stay in [-1, 1].
func clampCorr(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
