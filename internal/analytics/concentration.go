package analytics

import (
	"math"
	"sort"

	"RiskSentinel/internal/model"
)

// defaultPortfolioValue is the assumed book size for liquidity sizing.
const defaultPortfolioValue = 1_000_000

// CalculateComparativeRisk computes portfolio risk metrics alongside
// the benchmark's own metrics and the per-metric differences. The
// benchmark block is omitted when its history is too short.
func CalculateComparativeRisk(histories map[string]model.PriceHistory, weights model.WeightMap, benchmark model.PriceHistory, params Params) (model.ComparativeRiskMetrics, error) {
	returns, err := PortfolioReturns(histories, weights, params)
	if err != nil {
		return model.ComparativeRiskMetrics{}, err
	}
	portfolio, err := CalculateRiskMetrics(returns, params)
	if err != nil {
		return model.ComparativeRiskMetrics{}, err
	}
	out := model.ComparativeRiskMetrics{Portfolio: portfolio}

	benchReturns, err := LogReturns(benchmark.Closes())
	if err != nil || len(benchReturns) < params.MinObservations {
		return out, nil
	}
	bench, err := CalculateRiskMetrics(benchReturns, params)
	if err != nil {
		return out, nil
	}

	out.Benchmark = &bench
	out.Delta = map[string]float64{
		"var_95":       round2(portfolio.Var95 - bench.Var95),
		"var_99":       round2(portfolio.Var99 - bench.Var99),
		"cvar_95":      round2(portfolio.CVar95 - bench.CVar95),
		"volatility":   round2(portfolio.Volatility - bench.Volatility),
		"sharpe":       round2(portfolio.Sharpe - bench.Sharpe),
		"max_drawdown": round2(portfolio.MaxDrawdown - bench.MaxDrawdown),
	}
	return out, nil
}

// CalculateSectorConcentration aggregates weights by sector and
// computes the Herfindahl-Hirschman index on the 0-10000 scale. Cash
// counts as its own sector.
func CalculateSectorConcentration(weights model.WeightMap, sectorMap map[string]string) model.SectorConcentration {
	type bucket struct {
		weight  float64
		tickers []string
	}
	buckets := make(map[string]*bucket)

	tickers := make([]string, 0, len(weights))
	for t := range weights {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	for _, ticker := range tickers {
		sector := "Unknown"
		if ticker == model.CashTicker {
			sector = "Cash"
		} else if s, ok := sectorMap[ticker]; ok && s != "" {
			sector = s
		}
		b, ok := buckets[sector]
		if !ok {
			b = &bucket{}
			buckets[sector] = b
		}
		b.weight += weights[ticker]
		b.tickers = append(b.tickers, ticker)
	}

	sectors := make([]model.SectorExposure, 0, len(buckets))
	var hhi float64
	for sector, b := range buckets {
		sectors = append(sectors, model.SectorExposure{
			Sector:  sector,
			Weight:  round2(b.weight * 100),
			Tickers: b.tickers,
		})
		hhi += (b.weight * 100) * (b.weight * 100)
	}
	sort.Slice(sectors, func(i, j int) bool {
		if sectors[i].Weight != sectors[j].Weight {
			return sectors[i].Weight > sectors[j].Weight
		}
		return sectors[i].Sector < sectors[j].Sector
	})

	return model.SectorConcentration{Sectors: sectors, HHI: math.Round(hhi)}
}

// CalculateLiquidity scores positions by days-to-liquidate assuming a
// tenth of average daily dollar volume can be traded per day. Scores
// run 0-100 and fall off logarithmically past one day.
func CalculateLiquidity(weights model.WeightMap, volumes map[string]model.VolumeStats, portfolioValue float64) model.PortfolioLiquidity {
	if portfolioValue <= 0 {
		portfolioValue = defaultPortfolioValue
	}

	tickers := make([]string, 0, len(weights))
	for t := range weights {
		if t != model.CashTicker {
			tickers = append(tickers, t)
		}
	}
	sort.Strings(tickers)

	positions := make([]model.PositionLiquidity, 0, len(tickers))
	for _, ticker := range tickers {
		stats := volumes[ticker]
		dollarVolume := stats.AvgVolume * stats.AvgPrice

		positionValue := portfolioValue * weights[ticker]
		daysToLiquidate := 999.0
		if dollarVolume > 0 {
			daysToLiquidate = positionValue / (dollarVolume * 0.1)
		}

		var score float64
		switch {
		case daysToLiquidate < 1:
			score = 100
		case daysToLiquidate > 30:
			score = 0
		default:
			score = math.Max(0, 100-math.Log(daysToLiquidate+1)/math.Log(31)*100)
		}

		positions = append(positions, model.PositionLiquidity{
			Ticker:          ticker,
			AvgVolume:       math.Round(stats.AvgVolume),
			AvgDollarVolume: math.Round(dollarVolume),
			DaysToLiquidate: math.Round(daysToLiquidate*10) / 10,
			Score:           math.Round(score),
		})
	}

	var totalWeight, weightedScore float64
	for _, p := range positions {
		totalWeight += weights[p.Ticker]
		weightedScore += p.Score * weights[p.Ticker]
	}
	score := 0.0
	if totalWeight > 0 {
		score = math.Round(weightedScore / totalWeight)
	}

	sort.Slice(positions, func(i, j int) bool {
		if positions[i].Score != positions[j].Score {
			return positions[i].Score < positions[j].Score
		}
		return positions[i].Ticker < positions[j].Ticker
	})

	return model.PortfolioLiquidity{Positions: positions, WeightedScore: score}
}
