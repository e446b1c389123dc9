package model

// PeriodReturns holds cumulative returns to standard period boundaries,
// in percent. Nil fields mean the series does not cover the period.
type PeriodReturns struct {
	MTD            *float64 `json:"mtd"`
	QTD            *float64 `json:"qtd"`
	YTD            *float64 `json:"ytd"`
	OneYear        *float64 `json:"one_year"`
	SinceInception float64  `json:"since_inception"`
	Annualized     float64  `json:"annualized"`
}

// BenchmarkComparison relates portfolio performance to a benchmark.
type BenchmarkComparison struct {
	PortfolioReturn  float64  `json:"portfolio_return"`
	BenchmarkReturn  float64  `json:"benchmark_return"`
	ActiveReturn     float64  `json:"active_return"`
	TrackingError    float64  `json:"tracking_error"`
	InformationRatio *float64 `json:"information_ratio"`
}

// RiskAdjustedRatios holds the standard risk-adjusted return measures.
// Treynor is nil without a positive beta; Calmar is nil without a
// positive max drawdown.
type RiskAdjustedRatios struct {
	Sharpe  float64  `json:"sharpe"`
	Sortino float64  `json:"sortino"`
	Treynor *float64 `json:"treynor"`
	Calmar  *float64 `json:"calmar"`
}

// PositionContribution is one position's share of total return.
type PositionContribution struct {
	Ticker         string  `json:"ticker"`
	Weight         float64 `json:"weight"`
	PositionReturn float64 `json:"position_return"`
	Contribution   float64 `json:"contribution"`
	PctOfTotal     float64 `json:"pct_of_total"`
}

// PerformanceAttribution decomposes total return by position.
type PerformanceAttribution struct {
	TotalReturn   float64                `json:"total_return"`
	Contributions []PositionContribution `json:"contributions"`
}

// PerformanceMetrics is the full performance report.
type PerformanceMetrics struct {
	PeriodReturns PeriodReturns          `json:"period_returns"`
	Benchmark     BenchmarkComparison    `json:"benchmark"`
	RiskAdjusted  RiskAdjustedRatios     `json:"risk_adjusted"`
	Attribution   PerformanceAttribution `json:"attribution"`
}

// GIPSPeriodReturn is one monthly sub-period in the TWR linking chain.
type GIPSPeriodReturn struct {
	Period          string  `json:"period"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TwrGross        float64 `json:"twr_gross"`
	TwrNet          float64 `json:"twr_net"`
	BenchmarkReturn float64 `json:"benchmark_return"`
	ExcessReturn    float64 `json:"excess_return"`
}

// GIPSCalendarYearReturn is a full or partial calendar-year return.
type GIPSCalendarYearReturn struct {
	Year      int     `json:"year"`
	Gross     float64 `json:"gross"`
	Net       float64 `json:"net"`
	Benchmark float64 `json:"benchmark"`
	Excess    float64 `json:"excess"`
}

// GIPSRollingReturn is a trailing ~12-month return observation.
type GIPSRollingReturn struct {
	Date         string   `json:"date"`
	Rolling12M   float64  `json:"rolling_12m"`
	Benchmark12M *float64 `json:"benchmark_12m"`
}

// GIPSDrawdownPoint is one point of the drawdown curve, in percent
// (negative below peak).
type GIPSDrawdownPoint struct {
	Date     string  `json:"date"`
	Drawdown float64 `json:"drawdown"`
}

// GIPSCompositeStats summarizes dispersion across composite members.
// Simulated is always true in this build: peer returns are synthetic
// draws standing in for a real composite data source.
type GIPSCompositeStats struct {
	Simulated            bool      `json:"simulated"`
	NumPortfolios        int       `json:"num_portfolios"`
	TotalAum             float64   `json:"total_aum"`
	Dispersion           *float64  `json:"dispersion"`
	HighReturn           float64   `json:"high_return"`
	LowReturn            float64   `json:"low_return"`
	MedianReturn         float64   `json:"median_return"`
	LargestPortfolioPct  float64   `json:"largest_portfolio_pct"`
	Top5ConcentrationPct float64   `json:"top5_concentration_pct"`
	PortfolioReturns     []float64 `json:"portfolio_returns"`
}

// GIPSDisclosureItem is one entry of the disclosure readiness checklist.
type GIPSDisclosureItem struct {
	Item   string `json:"item"`
	Status string `json:"status"` // "pass", "warning" or "fail"
	Detail string `json:"detail"`
}

// GIPSMetrics is the complete GIPS-style report.
type GIPSMetrics struct {
	AnnualizedReturnGross float64                  `json:"annualized_return_gross"`
	AnnualizedReturnNet   float64                  `json:"annualized_return_net"`
	AnnualizedBenchmark   float64                  `json:"annualized_benchmark"`
	AnnualizedExcess      float64                  `json:"annualized_excess"`
	AnnualizedVolatility  float64                  `json:"annualized_volatility"`
	TrackingError         float64                  `json:"tracking_error"`
	InformationRatio      *float64                 `json:"information_ratio"`
	SharpeRatio           float64                  `json:"sharpe_ratio"`
	CumulativeGross       float64                  `json:"cumulative_gross"`
	CumulativeNet         float64                  `json:"cumulative_net"`
	CumulativeBenchmark   float64                  `json:"cumulative_benchmark"`
	InceptionDate         string                   `json:"inception_date"`
	ReportingCurrency     string                   `json:"reporting_currency"`
	FeeSchedule           string                   `json:"fee_schedule"`
	HistoryDays           int                      `json:"history_days"`
	MaxDrawdown           float64                  `json:"max_drawdown"`
	CurrentDrawdown       float64                  `json:"current_drawdown"`
	PeriodReturns         []GIPSPeriodReturn       `json:"period_returns"`
	CalendarYearReturns   []GIPSCalendarYearReturn `json:"calendar_year_returns"`
	RollingReturns        []GIPSRollingReturn      `json:"rolling_returns"`
	DrawdownSeries        []GIPSDrawdownPoint      `json:"drawdown_series"`
	CompositeStats        GIPSCompositeStats       `json:"composite_stats"`
	DisclosureChecklist   []GIPSDisclosureItem     `json:"disclosure_checklist"`
}
