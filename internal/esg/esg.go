// Package esg provides ESG scoring and carbon metrics for portfolios.
//
// Scores are synthetic, derived from sector profiles with a
// deterministic per-ticker variation, mirroring the shape of data from
// providers like MSCI ESG or Sustainalytics.
package esg

import (
	"crypto/md5"
	"encoding/hex"
	"math"
	"sort"
	"strconv"

	"RiskSentinel/internal/model"
)

// BenchmarkCarbonIntensity is the SPY average in tCO2e per $M revenue.
const BenchmarkCarbonIntensity = 140

type sectorProfile struct {
	e, s, g, carbon float64
}

var sectorProfiles = map[string]sectorProfile{
	"Technology":             {e: 65, s: 70, g: 75, carbon: 45},
	"Financials":             {e: 55, s: 65, g: 80, carbon: 25},
	"Financial Services":     {e: 55, s: 65, g: 80, carbon: 25},
	"Healthcare":             {e: 60, s: 75, g: 70, carbon: 55},
	"Consumer Discretionary": {e: 50, s: 60, g: 65, carbon: 120},
	"Consumer Cyclical":      {e: 50, s: 60, g: 65, carbon: 120},
	"Communication Services": {e: 60, s: 55, g: 70, carbon: 35},
	"Industrials":            {e: 45, s: 60, g: 65, carbon: 250},
	"Consumer Staples":       {e: 55, s: 65, g: 70, carbon: 150},
	"Consumer Defensive":     {e: 55, s: 65, g: 70, carbon: 150},
	"Energy":                 {e: 30, s: 55, g: 60, carbon: 450},
	"Utilities":              {e: 40, s: 60, g: 65, carbon: 380},
	"Basic Materials":        {e: 35, s: 55, g: 60, carbon: 320},
	"Real Estate":            {e: 50, s: 60, g: 70, carbon: 85},
	"Unknown":                {e: 50, s: 50, g: 50, carbon: 150},
	"Cash":                   {e: 100, s: 100, g: 100, carbon: 0},
}

var controversies = map[string]string{
	"XOM":   "Environmental litigation - climate change disclosure",
	"CVX":   "Environmental litigation - climate change disclosure",
	"META":  "Data privacy and content moderation concerns",
	"GOOGL": "Antitrust investigations in multiple jurisdictions",
}

// variation perturbs base by up to ±rangePct using an MD5 hash of the
// key, so a ticker always gets the same score. Clamped to [0, 100].
func variation(key string, base, rangePct float64) float64 {
	sum := md5.Sum([]byte(key))
	hashVal, _ := strconv.ParseUint(hex.EncodeToString(sum[:])[:8], 16, 64)
	v := (float64(hashVal%100) - 50) / 50 * rangePct
	return math.Max(0, math.Min(100, base*(1+v)))
}

// PositionESG returns the scored ESG record for one position.
func PositionESG(pos model.Position) model.PositionESG {
	if pos.Ticker == model.CashTicker {
		return model.PositionESG{
			Ticker:        pos.Ticker,
			Name:          pos.Name,
			Weight:        round2(pos.Weight * 100),
			ESGScore:      100,
			Environmental: 100,
			Social:        100,
			Governance:    100,
		}
	}

	profile, ok := sectorProfiles[pos.Sector]
	if !ok {
		profile = sectorProfiles["Unknown"]
	}

	env := variation(pos.Ticker+"_E", profile.e, 0.2)
	soc := variation(pos.Ticker+"_S", profile.s, 0.2)
	gov := variation(pos.Ticker+"_G", profile.g, 0.2)
	// MSCI-style pillar weighting.
	score := env*0.35 + soc*0.30 + gov*0.35
	carbon := variation(pos.Ticker+"_C", profile.carbon, 0.3)

	detail, flagged := controversies[pos.Ticker]

	return model.PositionESG{
		Ticker:             pos.Ticker,
		Name:               pos.Name,
		Weight:             round2(pos.Weight * 100),
		ESGScore:           round1(score),
		Environmental:      round1(env),
		Social:             round1(soc),
		Governance:         round1(gov),
		CarbonIntensity:    round1(carbon),
		ControversyFlag:    flagged,
		ControversyDetails: detail,
	}
}

// Rating converts a numeric ESG score to an MSCI-style letter rating.
func Rating(score float64) string {
	switch {
	case score >= 85:
		return "AAA"
	case score >= 70:
		return "AA"
	case score >= 60:
		return "A"
	case score >= 50:
		return "BBB"
	case score >= 40:
		return "BB"
	case score >= 30:
		return "B"
	default:
		return "CCC"
	}
}

// CalculatePortfolioESG aggregates position scores to portfolio level,
// weighting by position weight over non-cash holdings.
func CalculatePortfolioESG(portfolio model.Portfolio) model.PortfolioESG {
	var (
		positions                            []model.PositionESG
		totalWeight                          float64
		sumESG, sumE, sumS, sumG, sumCarbon  float64
		flagged                              int
	)
	ratingDist := make(map[string]int)

	for _, pos := range portfolio.Positions {
		if pos.Ticker == model.CashTicker {
			continue
		}
		scored := PositionESG(pos)
		positions = append(positions, scored)

		totalWeight += pos.Weight
		sumESG += scored.ESGScore * pos.Weight
		sumE += scored.Environmental * pos.Weight
		sumS += scored.Social * pos.Weight
		sumG += scored.Governance * pos.Weight
		sumCarbon += scored.CarbonIntensity * pos.Weight
		if scored.ControversyFlag {
			flagged++
		}
		ratingDist[Rating(scored.ESGScore)]++
	}

	var esg, e, s, g, carbon float64
	if totalWeight > 0 {
		esg = sumESG / totalWeight
		e = sumE / totalWeight
		s = sumS / totalWeight
		g = sumG / totalWeight
		carbon = sumCarbon / totalWeight
	}

	carbonVsBench := (carbon - BenchmarkCarbonIntensity) / BenchmarkCarbonIntensity * 100

	coverage := 0.0
	if totalWeight > 0 {
		coverage = totalWeight * 100
	}

	// Worst scores first so problem positions surface.
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].ESGScore < positions[j].ESGScore
	})

	return model.PortfolioESG{
		Positions:          positions,
		ESGScore:           round1(esg),
		Rating:             Rating(esg),
		Environmental:      round1(e),
		Social:             round1(s),
		Governance:         round1(g),
		CarbonIntensity:    round1(carbon),
		BenchmarkCarbon:    BenchmarkCarbonIntensity,
		CarbonVsBenchmark:  round1(carbonVsBench),
		ControversyCount:   flagged,
		CoveragePct:        round1(coverage),
		RatingDistribution: ratingDist,
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
