package model

// RiskMetrics holds the core risk numbers for a return series.
// VaR, CVaR, volatility and drawdowns are annualized percentages;
// sharpe is dimensionless. Both drawdowns are positive magnitudes.
type RiskMetrics struct {
	Var95           float64 `json:"var_95"`
	Var99           float64 `json:"var_99"`
	CVar95          float64 `json:"cvar_95"`
	Volatility      float64 `json:"volatility"`
	Sharpe          float64 `json:"sharpe"`
	MaxDrawdown     float64 `json:"max_drawdown"`
	CurrentDrawdown float64 `json:"current_drawdown"`
}

// ComparativeRiskMetrics pairs portfolio risk with an optional
// benchmark and the per-metric differences (portfolio minus benchmark).
type ComparativeRiskMetrics struct {
	Portfolio RiskMetrics        `json:"portfolio"`
	Benchmark *RiskMetrics       `json:"benchmark,omitempty"`
	Delta     map[string]float64 `json:"delta,omitempty"`
}

// RiskContribution is one position's share of portfolio VaR.
type RiskContribution struct {
	Ticker          string  `json:"ticker"`
	Weight          float64 `json:"weight"`
	Volatility      float64 `json:"volatility"`
	MarginalVar     float64 `json:"marginal_var"`
	ComponentVar    float64 `json:"component_var"`
	PctContribution float64 `json:"pct_contribution"`
}

// CorrelationMatrix is the pairwise Pearson correlation of asset returns.
type CorrelationMatrix struct {
	Tickers []string    `json:"tickers"`
	Matrix  [][]float64 `json:"matrix"`
}

// RollingMetrics holds windowed VaR/volatility series plus the
// point-in-time drawdown of the full cumulative curve.
type RollingMetrics struct {
	Dates             []string  `json:"dates"`
	RollingVar95      []float64 `json:"rolling_var_95"`
	RollingVolatility []float64 `json:"rolling_volatility"`
	DrawdownSeries    []float64 `json:"drawdown_series"`
}

// DayReturn pairs a date with its realized return in percent.
type DayReturn struct {
	Date      string  `json:"date"`
	ReturnPct float64 `json:"return_pct"`
}

// TailRiskStats describes the shape of the return distribution.
type TailRiskStats struct {
	Skewness  float64     `json:"skewness"`
	Kurtosis  float64     `json:"kurtosis"`
	WorstDays []DayReturn `json:"worst_days"`
	BestDays  []DayReturn `json:"best_days"`
}

// BetaMetrics is the single-factor regression result vs a benchmark.
type BetaMetrics struct {
	Beta        float64 `json:"beta"`
	Alpha       float64 `json:"alpha"`
	RSquared    float64 `json:"r_squared"`
	Correlation float64 `json:"correlation"`
}

// VarBacktest compares a rolling VaR estimate against realized returns.
type VarBacktest struct {
	Dates           []string  `json:"dates"`
	PredictedVar    []float64 `json:"predicted_var"`
	RealizedReturns []float64 `json:"realized_returns"`
	Breaches        int       `json:"breaches"`
	BreachRate      float64   `json:"breach_rate"`
}

// FactorExposures holds multi-factor OLS betas and fit quality.
type FactorExposures struct {
	MarketBeta float64 `json:"market_beta"`
	SizeBeta   float64 `json:"size_beta"`
	ValueBeta  float64 `json:"value_beta"`
	RSquared   float64 `json:"r_squared"`
}

// MonteCarloFanChart holds per-day percentile bands across all
// simulated paths. Values are normalized portfolio levels (day 0 = 100).
type MonteCarloFanChart struct {
	Days []int     `json:"days"`
	P1   []float64 `json:"p1"`
	P5   []float64 `json:"p5"`
	P25  []float64 `json:"p25"`
	P50  []float64 `json:"p50"`
	P75  []float64 `json:"p75"`
	P95  []float64 `json:"p95"`
	P99  []float64 `json:"p99"`
}

// MonteCarloResult is the forward simulation summary. The path set
// itself is discarded; only bands, terminal statistics and a bounded
// sample of terminal values survive for presentation.
type MonteCarloResult struct {
	Simulations          int                `json:"simulations"`
	Horizon              int                `json:"horizon"`
	Var95                float64            `json:"var_95"`
	Var99                float64            `json:"var_99"`
	CVar95               float64            `json:"cvar_95"`
	CVar99               float64            `json:"cvar_99"`
	FanChart             MonteCarloFanChart `json:"fan_chart"`
	TerminalDistribution []float64          `json:"terminal_distribution"`
}

// SectorExposure is one sector's aggregate weight and members.
type SectorExposure struct {
	Sector  string   `json:"sector"`
	Weight  float64  `json:"weight"`
	Tickers []string `json:"tickers"`
}

// SectorConcentration reports sector weights sorted descending plus
// the Herfindahl-Hirschman index on the 0-10000 scale.
type SectorConcentration struct {
	Sectors []SectorExposure `json:"sectors"`
	HHI     float64          `json:"hhi"`
}

// VolumeStats summarizes recent trading activity for one instrument.
type VolumeStats struct {
	AvgVolume float64 `json:"avg_volume"`
	AvgPrice  float64 `json:"avg_price"`
}

// PositionLiquidity scores how quickly one position could be unwound.
type PositionLiquidity struct {
	Ticker           string  `json:"ticker"`
	AvgVolume        float64 `json:"avg_volume"`
	AvgDollarVolume  float64 `json:"avg_dollar_volume"`
	DaysToLiquidate  float64 `json:"days_to_liquidate"`
	Score            float64 `json:"score"`
}

// PortfolioLiquidity aggregates position liquidity, worst scores first.
type PortfolioLiquidity struct {
	Positions     []PositionLiquidity `json:"positions"`
	WeightedScore float64             `json:"weighted_score"`
}

// WhatIfResult is the risk delta between two weightings of the same book.
type WhatIfResult struct {
	Original RiskMetrics        `json:"original"`
	Modified RiskMetrics        `json:"modified"`
	Delta    map[string]float64 `json:"delta"`
}
