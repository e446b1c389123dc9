// Package scheduler runs the nightly data refresh and risk snapshot job.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"RiskSentinel/internal/analytics"
	"RiskSentinel/internal/marketdata"
	"RiskSentinel/internal/store"
)

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron     *cron.Cron
	store    store.Store
	market   *marketdata.Provider
	params   analytics.Params
	lookback int
	log      zerolog.Logger
	ctx      context.Context
}

// New creates a Scheduler bound to the given context.
func New(ctx context.Context, st store.Store, market *marketdata.Provider, params analytics.Params, lookbackDays int, log zerolog.Logger) *Scheduler {
	if lookbackDays <= 0 {
		lookbackDays = 504
	}
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		store:    st,
		market:   market,
		params:   params,
		lookback: lookbackDays,
		log:      log,
		ctx:      ctx,
	}
}

// Register adds the nightly refresh-and-snapshot job.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info().Msg("scheduler stopped")
}

// RunNow executes the refresh task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

// refreshTask refetches price histories for every portfolio and
// persists a risk snapshot per portfolio. Failures are logged per
// portfolio so one bad book cannot block the rest.
func (s *Scheduler) refreshTask() {
	s.log.Info().Msg("running nightly refresh")

	portfolios, err := s.store.ListPortfolios(s.ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("nightly refresh: list portfolios")
		return
	}

	seen := make(map[string]bool)
	var tickers []string
	for _, portfolio := range portfolios {
		for _, t := range portfolio.Tickers() {
			if !seen[t] {
				seen[t] = true
				tickers = append(tickers, t)
			}
		}
	}
	refreshed := s.market.Refresh(s.ctx, tickers, s.lookback)
	s.log.Info().Int("tickers", len(refreshed)).Msg("histories refreshed")

	for _, portfolio := range portfolios {
		histories := s.market.Histories(s.ctx, portfolio.Tickers(), s.lookback)
		returns, err := analytics.PortfolioReturns(histories, portfolio.Weights(), s.params)
		if err != nil {
			s.log.Warn().Int64("portfolio", portfolio.ID).Err(err).Msg("snapshot skipped")
			continue
		}
		metrics, err := analytics.CalculateRiskMetrics(returns, s.params)
		if err != nil {
			s.log.Warn().Int64("portfolio", portfolio.ID).Err(err).Msg("snapshot skipped")
			continue
		}

		if err := s.store.SaveRiskSnapshot(s.ctx, store.RiskSnapshot{
			PortfolioID: portfolio.ID,
			Volatility:  metrics.Volatility,
			Var95:       metrics.Var95,
			CVar95:      metrics.CVar95,
			Sharpe:      metrics.Sharpe,
			MaxDrawdown: metrics.MaxDrawdown,
		}); err != nil {
			s.log.Error().Int64("portfolio", portfolio.ID).Err(err).Msg("save snapshot")
			continue
		}
		s.log.Info().Int64("portfolio", portfolio.ID).
			Float64("var_95", metrics.Var95).
			Float64("volatility", metrics.Volatility).
			Msg("risk snapshot saved")
	}
}
