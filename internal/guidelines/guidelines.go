// Package guidelines evaluates investment-guideline limits against a
// portfolio with a traffic-light outcome per rule: compliant inside the
// limit with headroom, warning within 10% of the limit, breach beyond it.
package guidelines

import (
	"math"
	"sort"
	"time"

	"RiskSentinel/internal/model"
)

// warningThreshold flags rules using more than 90% of their limit.
const warningThreshold = 0.90

// Rule is one configurable guideline definition.
type Rule struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Limit       float64 `json:"limit"`
	UpperLimit  float64 `json:"upper_limit,omitempty"`
}

// DefaultRules are the standard guideline templates applied to every
// portfolio when none are configured.
var DefaultRules = []Rule{
	{ID: "single_position_max", Name: "Single Position Limit",
		Description: "No single position shall exceed 10% of portfolio value", Limit: 10},
	{ID: "sector_max", Name: "Sector Concentration",
		Description: "No single sector shall exceed 30% of portfolio value", Limit: 30},
	{ID: "top5_concentration", Name: "Top 5 Concentration",
		Description: "Top 5 positions shall not exceed 50% of portfolio value", Limit: 50},
	{ID: "cash_min", Name: "Minimum Cash",
		Description: "Cash allocation shall be at least 2% for liquidity", Limit: 2},
	{ID: "max_positions", Name: "Maximum Positions",
		Description: "Portfolio shall hold no more than 50 positions", Limit: 50},
	{ID: "equity_range", Name: "Equity Allocation Range",
		Description: "Equity allocation shall be between 40% and 80%", Limit: 40, UpperLimit: 80},
}

// CheckGuidelines runs every rule against the portfolio.
func CheckGuidelines(portfolio model.Portfolio, rules []Rule) model.GuidelineReport {
	if rules == nil {
		rules = DefaultRules
	}

	var results []model.GuidelineResult
	for _, rule := range rules {
		var result model.GuidelineResult
		switch rule.ID {
		case "single_position_max":
			result = checkPositionLimit(rule, portfolio)
		case "sector_max":
			result = checkSectorLimit(rule, portfolio)
		case "top5_concentration":
			result = checkTop5Limit(rule, portfolio)
		case "cash_min":
			result = checkCashMinimum(rule, portfolio)
		case "max_positions":
			result = checkPositionCount(rule, portfolio)
		case "equity_range":
			result = checkAssetClassRange(rule, portfolio, "equity")
		default:
			continue
		}
		results = append(results, result)
	}

	report := model.GuidelineReport{
		PortfolioID:   portfolio.ID,
		PortfolioName: portfolio.Name,
		CheckedAt:     time.Now().Format(time.RFC3339),
		OverallStatus: model.GuidelineCompliant,
		Results:       results,
	}
	for _, r := range results {
		switch r.Status {
		case model.GuidelineCompliant:
			report.Compliant++
		case model.GuidelineWarning:
			report.Warnings++
		case model.GuidelineBreach:
			report.Breaches++
		}
	}
	if report.Breaches > 0 {
		report.OverallStatus = model.GuidelineBreach
	} else if report.Warnings > 0 {
		report.OverallStatus = model.GuidelineWarning
	}
	return report
}

func statusFromHeadroom(breached bool, headroomPct float64) model.GuidelineStatus {
	switch {
	case breached:
		return model.GuidelineBreach
	case headroomPct < (1-warningThreshold)*100:
		return model.GuidelineWarning
	default:
		return model.GuidelineCompliant
	}
}

func checkPositionLimit(rule Rule, portfolio model.Portfolio) model.GuidelineResult {
	var maxWeight float64
	var offenders []string
	for _, pos := range portfolio.Positions {
		weightPct := pos.Weight * 100
		if weightPct > maxWeight {
			maxWeight = weightPct
		}
		if weightPct > rule.Limit {
			offenders = append(offenders, pos.Ticker)
		}
	}
	headroom := rule.Limit - maxWeight
	headroomPct := headroom / rule.Limit * 100

	return model.GuidelineResult{
		RuleID:      rule.ID,
		Name:        rule.Name,
		Description: rule.Description,
		Status:      statusFromHeadroom(len(offenders) > 0, headroomPct),
		Limit:       rule.Limit,
		Observed:    round2(maxWeight),
		Headroom:    round2(headroom),
		HeadroomPct: round2(headroomPct),
		Offenders:   offenders,
	}
}

func checkSectorLimit(rule Rule, portfolio model.Portfolio) model.GuidelineResult {
	sectorWeights := make(map[string]float64)
	for _, pos := range portfolio.Positions {
		if pos.Ticker == model.CashTicker {
			continue
		}
		sector := pos.Sector
		if sector == "" {
			sector = "Unknown"
		}
		sectorWeights[sector] += pos.Weight * 100
	}

	var maxWeight float64
	var offenders []string
	for sector, weight := range sectorWeights {
		if weight > maxWeight {
			maxWeight = weight
		}
		if weight > rule.Limit {
			offenders = append(offenders, sector)
		}
	}
	sort.Strings(offenders)
	headroom := rule.Limit - maxWeight
	headroomPct := headroom / rule.Limit * 100

	return model.GuidelineResult{
		RuleID:      rule.ID,
		Name:        rule.Name,
		Description: rule.Description,
		Status:      statusFromHeadroom(len(offenders) > 0, headroomPct),
		Limit:       rule.Limit,
		Observed:    round2(maxWeight),
		Headroom:    round2(headroom),
		HeadroomPct: round2(headroomPct),
		Offenders:   offenders,
	}
}

func checkTop5Limit(rule Rule, portfolio model.Portfolio) model.GuidelineResult {
	sorted := make([]model.Position, len(portfolio.Positions))
	copy(sorted, portfolio.Positions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Weight > sorted[j].Weight })

	n := 5
	if len(sorted) < n {
		n = len(sorted)
	}
	var top5Weight float64
	var tickers []string
	for _, pos := range sorted[:n] {
		top5Weight += pos.Weight * 100
		tickers = append(tickers, pos.Ticker)
	}
	headroom := rule.Limit - top5Weight
	headroomPct := headroom / rule.Limit * 100

	var offenders []string
	if top5Weight > rule.Limit {
		offenders = tickers
	}
	return model.GuidelineResult{
		RuleID:      rule.ID,
		Name:        rule.Name,
		Description: rule.Description,
		Status:      statusFromHeadroom(top5Weight > rule.Limit, headroomPct),
		Limit:       rule.Limit,
		Observed:    round2(top5Weight),
		Headroom:    round2(headroom),
		HeadroomPct: round2(headroomPct),
		Offenders:   offenders,
	}
}

func checkCashMinimum(rule Rule, portfolio model.Portfolio) model.GuidelineResult {
	var cashWeight float64
	for _, pos := range portfolio.Positions {
		if pos.Ticker == model.CashTicker || pos.AssetClass == "cash" {
			cashWeight += pos.Weight * 100
		}
	}
	// Headroom points up: distance above the minimum.
	headroom := cashWeight - rule.Limit
	headroomPct := headroom / rule.Limit * 100

	var offenders []string
	if cashWeight < rule.Limit {
		offenders = []string{model.CashTicker}
	}
	return model.GuidelineResult{
		RuleID:      rule.ID,
		Name:        rule.Name,
		Description: rule.Description,
		Status:      statusFromHeadroom(cashWeight < rule.Limit, headroomPct),
		Limit:       rule.Limit,
		Observed:    round2(cashWeight),
		Headroom:    round2(headroom),
		HeadroomPct: round2(headroomPct),
		Offenders:   offenders,
	}
}

func checkPositionCount(rule Rule, portfolio model.Portfolio) model.GuidelineResult {
	count := 0
	for _, pos := range portfolio.Positions {
		if pos.Ticker != model.CashTicker {
			count++
		}
	}
	headroom := rule.Limit - float64(count)
	headroomPct := headroom / rule.Limit * 100

	return model.GuidelineResult{
		RuleID:      rule.ID,
		Name:        rule.Name,
		Description: rule.Description,
		Status:      statusFromHeadroom(float64(count) > rule.Limit, headroomPct),
		Limit:       rule.Limit,
		Observed:    float64(count),
		Headroom:    round2(headroom),
		HeadroomPct: round2(headroomPct),
	}
}

func checkAssetClassRange(rule Rule, portfolio model.Portfolio, assetClass string) model.GuidelineResult {
	var classWeight float64
	for _, pos := range portfolio.Positions {
		if pos.AssetClass == assetClass {
			classWeight += pos.Weight * 100
		}
	}
	lower, upper := rule.Limit, rule.UpperLimit
	if upper == 0 {
		upper = 100
	}

	var status model.GuidelineStatus
	var headroom float64
	var offenders []string
	switch {
	case classWeight < lower:
		status = model.GuidelineBreach
		headroom = classWeight - lower
		offenders = []string{assetClass}
	case classWeight > upper:
		status = model.GuidelineBreach
		headroom = upper - classWeight
		offenders = []string{assetClass}
	default:
		headroom = math.Min(classWeight-lower, upper-classWeight)
		headroomPct := headroom / (upper - lower) * 100
		if headroomPct < 10 {
			status = model.GuidelineWarning
		} else {
			status = model.GuidelineCompliant
		}
	}
	headroomPct := math.Abs(headroom) / ((upper - lower) / 2) * 100

	return model.GuidelineResult{
		RuleID:      rule.ID,
		Name:        rule.Name,
		Description: rule.Description,
		Status:      status,
		Limit:       lower,
		Observed:    round2(classWeight),
		Headroom:    round2(headroom),
		HeadroomPct: round2(headroomPct),
		Offenders:   offenders,
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
