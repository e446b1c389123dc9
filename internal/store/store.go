package store

import (
	"context"
	"errors"
	"time"

	"RiskSentinel/internal/model"
)

// ErrNotFound is returned when a portfolio id does not exist.
var ErrNotFound = errors.New("portfolio not found")

// RiskSnapshot is a persisted nightly risk record for one portfolio.
type RiskSnapshot struct {
	ID          int64     `json:"id"`
	PortfolioID int64     `json:"portfolio_id"`
	Timestamp   time.Time `json:"timestamp"`
	Volatility  float64   `json:"volatility"`
	Var95       float64   `json:"var_95"`
	CVar95      float64   `json:"cvar_95"`
	Sharpe      float64   `json:"sharpe"`
	MaxDrawdown float64   `json:"max_drawdown"`
}

// Store persists portfolios and risk snapshots.
type Store interface {
	ListPortfolios(ctx context.Context) ([]model.Portfolio, error)
	GetPortfolio(ctx context.Context, id int64) (model.Portfolio, error)
	CreatePortfolio(ctx context.Context, p model.Portfolio) (model.Portfolio, error)
	DeletePortfolio(ctx context.Context, id int64) error
	SaveRiskSnapshot(ctx context.Context, snap RiskSnapshot) error
	RecentSnapshots(ctx context.Context, portfolioID int64, limit int) ([]RiskSnapshot, error)
	Close() error
}
