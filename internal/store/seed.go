package store

import "RiskSentinel/internal/model"

// SeedPortfolios are the portfolios installed into an empty store.
var SeedPortfolios = []model.Portfolio{
	{
		Name:        "Global Equity",
		Type:        model.TypeEquity,
		Description: "Diversified global equity portfolio with US, European, and tech exposure",
		Positions: []model.Position{
			{Ticker: "AAPL", Name: "Apple", Weight: 0.12, AssetClass: "equity", Sector: "Technology"},
			{Ticker: "MSFT", Name: "Microsoft", Weight: 0.12, AssetClass: "equity", Sector: "Technology"},
			{Ticker: "NVDA", Name: "Nvidia", Weight: 0.10, AssetClass: "equity", Sector: "Technology"},
			{Ticker: "AMZN", Name: "Amazon", Weight: 0.10, AssetClass: "equity", Sector: "Consumer Discretionary"},
			{Ticker: "JPM", Name: "JPMorgan", Weight: 0.08, AssetClass: "equity", Sector: "Financials"},
			{Ticker: "JNJ", Name: "Johnson & Johnson", Weight: 0.08, AssetClass: "equity", Sector: "Healthcare"},
			{Ticker: "NESN.SW", Name: "Nestlé", Weight: 0.08, AssetClass: "equity", Sector: "Consumer Staples"},
			{Ticker: "ASML", Name: "ASML", Weight: 0.08, AssetClass: "equity", Sector: "Technology"},
			{Ticker: "NOVO-B.CO", Name: "Novo Nordisk", Weight: 0.08, AssetClass: "equity", Sector: "Healthcare"},
			{Ticker: "MC.PA", Name: "LVMH", Weight: 0.08, AssetClass: "equity", Sector: "Consumer Discretionary"},
			{Ticker: "CASH", Name: "Cash", Weight: 0.08, AssetClass: "cash", Sector: "Cash"},
		},
	},
	{
		Name:        "Fixed Income",
		Type:        model.TypeFixedIncome,
		Description: "Bond portfolio spanning treasuries, investment grade, and high yield",
		Positions: []model.Position{
			{Ticker: "TLT", Name: "20+ Year Treasury", Weight: 0.25, AssetClass: "fixed_income", Sector: "Government"},
			{Ticker: "IEF", Name: "7-10 Year Treasury", Weight: 0.25, AssetClass: "fixed_income", Sector: "Government"},
			{Ticker: "LQD", Name: "Investment Grade Corp", Weight: 0.20, AssetClass: "fixed_income", Sector: "Corporate"},
			{Ticker: "HYG", Name: "High Yield Corp", Weight: 0.15, AssetClass: "fixed_income", Sector: "Corporate"},
			{Ticker: "AGG", Name: "US Aggregate Bond", Weight: 0.15, AssetClass: "fixed_income", Sector: "Aggregate"},
		},
	},
	{
		Name:        "Multi-Asset Balanced",
		Type:        model.TypeMultiAsset,
		Description: "Balanced allocation across equities, bonds, and gold",
		Positions: []model.Position{
			{Ticker: "SPY", Name: "S&P 500", Weight: 0.35, AssetClass: "equity", Sector: "Broad Equity"},
			{Ticker: "VGK", Name: "Europe Equity", Weight: 0.15, AssetClass: "equity", Sector: "Broad Equity"},
			{Ticker: "VWO", Name: "Emerging Markets", Weight: 0.10, AssetClass: "equity", Sector: "Broad Equity"},
			{Ticker: "TLT", Name: "20+ Year Treasury", Weight: 0.15, AssetClass: "fixed_income", Sector: "Government"},
			{Ticker: "LQD", Name: "Investment Grade Corp", Weight: 0.10, AssetClass: "fixed_income", Sector: "Corporate"},
			{Ticker: "GLD", Name: "Gold", Weight: 0.10, AssetClass: "commodity", Sector: "Commodities"},
			{Ticker: "CASH", Name: "Cash", Weight: 0.05, AssetClass: "cash", Sector: "Cash"},
		},
	},
}
