package analytics

import (
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"sort"
	"sync"

	"RiskSentinel/internal/model"
)

// DefaultSimulations is the standard Monte Carlo path count.
const DefaultSimulations = 10000

// terminalSampleCap bounds the terminal-value sample retained for
// presentation; the full path set is discarded.
const terminalSampleCap = 500

// SimulateMonteCarlo fits daily drift and volatility from the
// historical portfolio return series and simulates forward value paths
// under geometric Brownian motion, normalized to a base value of 100
// with day 0 fixed at exactly 100.
//
// Output is deterministic for identical inputs, path count and seed:
// each path draws from its own PCG stream keyed on (seed, path index),
// so splitting paths across workers cannot perturb the result.
func SimulateMonteCarlo(histories map[string]model.PriceHistory, weights model.WeightMap, simulations, horizon int, params Params) (model.MonteCarloResult, error) {
	if simulations <= 0 {
		return model.MonteCarloResult{}, fmt.Errorf("simulations must be positive, got %d: %w", simulations, ErrInvalidParameter)
	}
	if horizon <= 0 {
		return model.MonteCarloResult{}, fmt.Errorf("horizon must be positive, got %d: %w", horizon, ErrInvalidParameter)
	}
	returns, err := PortfolioReturns(histories, weights, params)
	if err != nil {
		return model.MonteCarloResult{}, err
	}

	mu := Mean(returns)
	sigma := PopStdDev(returns)
	drift := mu - 0.5*sigma*sigma

	// byDay[d] holds every path's value at day d, indexed by path, so
	// workers write disjoint slots without coordination.
	byDay := make([][]float64, horizon+1)
	for d := range byDay {
		byDay[d] = make([]float64, simulations)
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > simulations {
		workers = simulations
	}
	var wg sync.WaitGroup
	chunk := (simulations + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > simulations {
			end = simulations
		}
		if start >= end {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for path := start; path < end; path++ {
				rng := rand.New(rand.NewPCG(params.Seed, uint64(path)+1))
				byDay[0][path] = 100
				cumLog := 0.0
				for d := 1; d <= horizon; d++ {
					cumLog += drift + sigma*rng.NormFloat64()
					byDay[d][path] = 100 * math.Exp(cumLog)
				}
			}
		}(start, end)
	}
	wg.Wait()

	fan := model.MonteCarloFanChart{
		Days: make([]int, horizon+1),
		P1:   make([]float64, horizon+1),
		P5:   make([]float64, horizon+1),
		P25:  make([]float64, horizon+1),
		P50:  make([]float64, horizon+1),
		P75:  make([]float64, horizon+1),
		P95:  make([]float64, horizon+1),
		P99:  make([]float64, horizon+1),
	}
	for d := 0; d <= horizon; d++ {
		sort.Float64s(byDay[d])
		fan.Days[d] = d
		fan.P1[d] = round2(percentileSorted(byDay[d], 1))
		fan.P5[d] = round2(percentileSorted(byDay[d], 5))
		fan.P25[d] = round2(percentileSorted(byDay[d], 25))
		fan.P50[d] = round2(percentileSorted(byDay[d], 50))
		fan.P75[d] = round2(percentileSorted(byDay[d], 75))
		fan.P95[d] = round2(percentileSorted(byDay[d], 95))
		fan.P99[d] = round2(percentileSorted(byDay[d], 99))
	}

	terminal := byDay[horizon] // sorted above
	p5 := percentileSorted(terminal, 5)
	p1 := percentileSorted(terminal, 1)

	return model.MonteCarloResult{
		Simulations:          simulations,
		Horizon:              horizon,
		Var95:                round2(100 - p5),
		Var99:                round2(100 - p1),
		CVar95:               round2(100 - tailMean(terminal, p5)),
		CVar99:               round2(100 - tailMean(terminal, p1)),
		FanChart:             fan,
		TerminalDistribution: sampleTerminal(terminal, params.Seed),
	}, nil
}

// percentileSorted is Percentile for an already-sorted slice.
func percentileSorted(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	h := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	frac := h - float64(lo)
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// tailMean averages the sorted values at or below the threshold.
func tailMean(sorted []float64, threshold float64) float64 {
	var sum float64
	count := 0
	for _, v := range sorted {
		if v > threshold {
			break
		}
		sum += v
		count++
	}
	if count == 0 {
		return threshold
	}
	return sum / float64(count)
}

// sampleTerminal draws a uniform random sample of at most
// terminalSampleCap terminal values, seeded for reproducibility.
func sampleTerminal(terminal []float64, seed uint64) []float64 {
	if len(terminal) <= terminalSampleCap {
		out := make([]float64, len(terminal))
		for i, v := range terminal {
			out[i] = round2(v)
		}
		return out
	}
	rng := rand.New(rand.NewPCG(seed, uint64(len(terminal))<<32))
	out := make([]float64, 0, terminalSampleCap)
	for _, idx := range rng.Perm(len(terminal))[:terminalSampleCap] {
		out = append(out, round2(terminal[idx]))
	}
	return out
}
