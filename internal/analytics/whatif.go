package analytics

import "RiskSentinel/internal/model"

// CalculateWhatIf compares the risk metrics of the current weighting
// against a modified one over the same histories.
func CalculateWhatIf(histories map[string]model.PriceHistory, original, modified model.WeightMap, params Params) (model.WhatIfResult, error) {
	originalReturns, err := PortfolioReturns(histories, original, params)
	if err != nil {
		return model.WhatIfResult{}, err
	}
	modifiedReturns, err := PortfolioReturns(histories, modified, params)
	if err != nil {
		return model.WhatIfResult{}, err
	}

	before, err := CalculateRiskMetrics(originalReturns, params)
	if err != nil {
		return model.WhatIfResult{}, err
	}
	after, err := CalculateRiskMetrics(modifiedReturns, params)
	if err != nil {
		return model.WhatIfResult{}, err
	}

	return model.WhatIfResult{
		Original: before,
		Modified: after,
		Delta: map[string]float64{
			"var_95":       round2(after.Var95 - before.Var95),
			"var_99":       round2(after.Var99 - before.Var99),
			"cvar_95":      round2(after.CVar95 - before.CVar95),
			"volatility":   round2(after.Volatility - before.Volatility),
			"sharpe":       round2(after.Sharpe - before.Sharpe),
			"max_drawdown": round2(after.MaxDrawdown - before.MaxDrawdown),
		},
	}, nil
}
