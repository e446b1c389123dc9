package model

// PositionESG holds per-position ESG scores (0-100 scales).
type PositionESG struct {
	Ticker             string  `json:"ticker"`
	Name               string  `json:"name"`
	Weight             float64 `json:"weight"`
	ESGScore           float64 `json:"esg_score"`
	Environmental      float64 `json:"environmental"`
	Social             float64 `json:"social"`
	Governance         float64 `json:"governance"`
	CarbonIntensity    float64 `json:"carbon_intensity"`
	ControversyFlag    bool    `json:"controversy_flag"`
	ControversyDetails string  `json:"controversy_details,omitempty"`
}

// PortfolioESG aggregates position ESG data to portfolio level.
// Positions are sorted worst ESG score first.
type PortfolioESG struct {
	Positions          []PositionESG  `json:"positions"`
	ESGScore           float64        `json:"esg_score"`
	Rating             string         `json:"rating"`
	Environmental      float64        `json:"environmental"`
	Social             float64        `json:"social"`
	Governance         float64        `json:"governance"`
	CarbonIntensity    float64        `json:"carbon_intensity"`
	BenchmarkCarbon    float64        `json:"benchmark_carbon"`
	CarbonVsBenchmark  float64        `json:"carbon_vs_benchmark"`
	ControversyCount   int            `json:"controversy_count"`
	CoveragePct        float64        `json:"coverage_pct"`
	RatingDistribution map[string]int `json:"rating_distribution"`
}

// GuidelineStatus is the traffic-light outcome of a guideline check.
type GuidelineStatus string

const (
	GuidelineCompliant GuidelineStatus = "compliant"
	GuidelineWarning   GuidelineStatus = "warning"
	GuidelineBreach    GuidelineStatus = "breach"
)

// GuidelineResult is one evaluated investment-guideline rule.
type GuidelineResult struct {
	RuleID      string          `json:"rule_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Status      GuidelineStatus `json:"status"`
	Limit       float64         `json:"limit"`
	Observed    float64         `json:"observed"`
	Headroom    float64         `json:"headroom"`
	HeadroomPct float64         `json:"headroom_pct"`
	Offenders   []string        `json:"offenders,omitempty"`
}

// GuidelineReport is the full compliance check outcome.
type GuidelineReport struct {
	PortfolioID   int64             `json:"portfolio_id"`
	PortfolioName string            `json:"portfolio_name"`
	CheckedAt     string            `json:"checked_at"`
	OverallStatus GuidelineStatus   `json:"overall_status"`
	Results       []GuidelineResult `json:"results"`
	Compliant     int               `json:"compliant"`
	Warnings      int               `json:"warnings"`
	Breaches      int               `json:"breaches"`
}

// StressScenario is a named set of asset-class shocks in percent.
type StressScenario struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Shocks      map[string]float64 `json:"shocks"`
}

// StressPosition is one position's P&L under a scenario.
type StressPosition struct {
	Ticker     string  `json:"ticker"`
	Name       string  `json:"name"`
	Weight     float64 `json:"weight"`
	AssetClass string  `json:"asset_class"`
	Shock      float64 `json:"shock"`
	PnlPct     float64 `json:"pnl_pct"`
}

// StressResult is the portfolio-level outcome of a stress scenario.
type StressResult struct {
	ScenarioID    string           `json:"scenario_id"`
	ScenarioName  string           `json:"scenario_name"`
	PortfolioID   int64            `json:"portfolio_id"`
	PortfolioName string           `json:"portfolio_name"`
	Positions     []StressPosition `json:"positions"`
	TotalPnlPct   float64          `json:"total_pnl_pct"`
}
