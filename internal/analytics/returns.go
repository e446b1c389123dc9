package analytics

import (
	"fmt"
	"math"
	"sort"

	"RiskSentinel/internal/model"
)

// LogReturns converts a price series of length n into n-1 log returns,
// r[i] = ln(price[i+1]/price[i]).
func LogReturns(prices []float64) ([]float64, error) {
	if len(prices) < 2 {
		return nil, fmt.Errorf("log returns need at least 2 prices, got %d: %w", len(prices), ErrInsufficientData)
	}
	for _, p := range prices {
		if p <= 0 {
			return nil, fmt.Errorf("non-positive price %v: %w", p, ErrInvalidParameter)
		}
	}
	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns[i-1] = math.Log(prices[i] / prices[i-1])
	}
	return returns, nil
}

// alignedReturns is the right-aligned, weight-renormalized view of a
// portfolio's eligible instruments. Short-lived: built per call,
// consumed, discarded.
type alignedReturns struct {
	tickers []string
	weights []float64 // renormalized, sums to 1
	returns [][]float64
	dates   []string // one date per return observation
}

// align excludes cash and instruments without history, truncates all
// series to the shortest common length anchored at the most recent
// date, and renormalizes the surviving weights to sum to one.
// Tickers are processed in sorted order so output is deterministic.
func align(histories map[string]model.PriceHistory, weights model.WeightMap, params Params) (*alignedReturns, error) {
	tickers := make([]string, 0, len(weights))
	for t := range weights {
		if t == model.CashTicker || len(histories[t]) == 0 {
			continue
		}
		tickers = append(tickers, t)
	}
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no eligible instruments: %w", ErrInsufficientData)
	}
	sort.Strings(tickers)

	minLen := len(histories[tickers[0]])
	for _, t := range tickers[1:] {
		if n := len(histories[t]); n < minLen {
			minLen = n
		}
	}
	if minLen < params.MinObservations {
		return nil, fmt.Errorf("shortest common history %d < %d: %w", minLen, params.MinObservations, ErrInsufficientData)
	}

	var weightSum float64
	weightList := make([]float64, len(tickers))
	returnsMatrix := make([][]float64, len(tickers))
	for i, t := range tickers {
		tail := histories[t].Tail(minLen)
		r, err := LogReturns(tail.Closes())
		if err != nil {
			return nil, fmt.Errorf("returns for %s: %w", t, err)
		}
		returnsMatrix[i] = r
		weightList[i] = weights[t]
		weightSum += weights[t]
	}
	if weightSum == 0 {
		return nil, fmt.Errorf("eligible weights sum to zero: %w", ErrInvalidParameter)
	}
	for i := range weightList {
		weightList[i] /= weightSum
	}

	// Return i corresponds to the move into date i+1.
	dates := histories[tickers[0]].Tail(minLen).Dates()[1:]

	return &alignedReturns{
		tickers: tickers,
		weights: weightList,
		returns: returnsMatrix,
		dates:   dates,
	}, nil
}

// combined collapses the per-instrument return matrix into the single
// weighted portfolio return series.
func (a *alignedReturns) combined() []float64 {
	n := len(a.returns[0])
	out := make([]float64, n)
	for i, series := range a.returns {
		w := a.weights[i]
		for j, r := range series {
			out[j] += w * r
		}
	}
	return out
}

// PortfolioReturns builds the weight-combined daily log-return series
// for a portfolio. Cash and instruments without history are excluded;
// the remaining weights are renormalized to sum to one.
func PortfolioReturns(histories map[string]model.PriceHistory, weights model.WeightMap, params Params) ([]float64, error) {
	a, err := align(histories, weights, params)
	if err != nil {
		return nil, err
	}
	return a.combined(), nil
}

// PortfolioReturnsWithDates is PortfolioReturns plus the observation
// dates, for time-series consumers (rolling metrics, backtests).
func PortfolioReturnsWithDates(histories map[string]model.PriceHistory, weights model.WeightMap, params Params) ([]float64, []string, error) {
	a, err := align(histories, weights, params)
	if err != nil {
		return nil, nil, err
	}
	return a.combined(), a.dates, nil
}
