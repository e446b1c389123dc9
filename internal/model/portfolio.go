package model

// CashTicker is the sentinel identifier for the cash position. Cash is
// always excluded from return-based computations.
const CashTicker = "CASH"

// PortfolioType classifies a portfolio by mandate.
type PortfolioType string

const (
	TypeEquity      PortfolioType = "equity"
	TypeFixedIncome PortfolioType = "fixed_income"
	TypeMultiAsset  PortfolioType = "multi_asset"
)

// Position is one holding within a portfolio.
type Position struct {
	Ticker     string  `json:"ticker"`
	Name       string  `json:"name"`
	Weight     float64 `json:"weight"`
	AssetClass string  `json:"asset_class"`
	Sector     string  `json:"sector"`
}

// Portfolio is a named set of weighted positions.
type Portfolio struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Type        PortfolioType `json:"type"`
	Description string        `json:"description"`
	Positions   []Position    `json:"positions"`
}

// WeightMap maps ticker to portfolio weight. Weights may be negative
// (short exposure) and need not sum to one; the engine renormalizes
// over eligible instruments before use.
type WeightMap map[string]float64

// Weights returns the portfolio's positions as a WeightMap.
func (p *Portfolio) Weights() WeightMap {
	w := make(WeightMap, len(p.Positions))
	for _, pos := range p.Positions {
		w[pos.Ticker] = pos.Weight
	}
	return w
}

// Tickers returns all position tickers, cash included.
func (p *Portfolio) Tickers() []string {
	out := make([]string, 0, len(p.Positions))
	for _, pos := range p.Positions {
		out = append(out, pos.Ticker)
	}
	return out
}

// SectorMap returns ticker -> sector for all non-cash positions.
func (p *Portfolio) SectorMap() map[string]string {
	m := make(map[string]string, len(p.Positions))
	for _, pos := range p.Positions {
		if pos.Ticker != CashTicker {
			m[pos.Ticker] = pos.Sector
		}
	}
	return m
}
