// Package server exposes the analytics engine over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"RiskSentinel/internal/analytics"
	"RiskSentinel/internal/marketdata"
	"RiskSentinel/internal/model"
	"RiskSentinel/internal/store"
	"RiskSentinel/internal/stress"
)

// Server holds the API dependencies and the gin router.
type Server struct {
	router    *gin.Engine
	store     store.Store
	market    *marketdata.Provider
	params    analytics.Params
	benchmark string
	feeBps    int
	lookback  int
	log       zerolog.Logger
	http      *http.Server
}

// Options configures a Server beyond its hard dependencies.
type Options struct {
	Benchmark    string
	FeeBps       int
	LookbackDays int
	Mode         string
}

// New builds the server and registers all routes.
func New(st store.Store, market *marketdata.Provider, params analytics.Params, opts Options, log zerolog.Logger) *Server {
	if opts.Benchmark == "" {
		opts.Benchmark = "SPY"
	}
	if opts.FeeBps == 0 {
		opts.FeeBps = 50
	}
	if opts.LookbackDays == 0 {
		opts.LookbackDays = 504
	}
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}

	s := &Server{
		router:    gin.New(),
		store:     st,
		market:    market,
		params:    params,
		benchmark: opts.Benchmark,
		feeBps:    opts.FeeBps,
		lookback:  opts.LookbackDays,
		log:       log,
	}
	s.router.Use(gin.Recovery(), s.requestID(), s.requestLog())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	{
		api.GET("/portfolios", s.listPortfolios)
		api.POST("/portfolios", s.createPortfolio)
		api.GET("/portfolios/:id", s.getPortfolio)
		api.DELETE("/portfolios/:id", s.deletePortfolio)
		api.GET("/portfolios/:id/positions", s.getPositions)
		api.GET("/portfolios/:id/value", s.getValue)
		api.GET("/portfolios/:id/data-info", s.getDataInfo)
		api.POST("/portfolios/:id/refresh-data", s.refreshData)
		api.GET("/portfolios/:id/snapshots", s.getSnapshots)
		api.GET("/market/:ticker", s.getQuote)

		api.GET("/portfolios/:id/risk", s.getRisk)
		api.GET("/portfolios/:id/risk/contributions", s.getRiskContributions)
		api.GET("/portfolios/:id/correlation", s.getCorrelation)
		api.GET("/portfolios/:id/risk/rolling", s.getRollingMetrics)
		api.GET("/portfolios/:id/risk/tail", s.getTailRisk)
		api.GET("/portfolios/:id/risk/beta", s.getBeta)
		api.GET("/portfolios/:id/risk/backtest", s.getVarBacktest)
		api.GET("/portfolios/:id/risk/montecarlo", s.getMonteCarlo)
		api.GET("/portfolios/:id/risk/factors", s.getFactorExposures)
		api.POST("/portfolios/:id/risk/whatif", s.runWhatIf)
		api.GET("/portfolios/:id/concentration/sector", s.getSectorConcentration)
		api.GET("/portfolios/:id/liquidity", s.getLiquidity)

		api.GET("/portfolios/:id/performance", s.getPerformance)
		api.GET("/portfolios/:id/gips", s.getGIPS)
		api.GET("/portfolios/:id/esg", s.getESG)
		api.GET("/portfolios/:id/guidelines", s.checkGuidelines)
		api.GET("/guidelines/definitions", s.getGuidelineDefinitions)

		api.GET("/stress/scenarios", s.listStressScenarios)
		api.GET("/portfolios/:id/stress/:scenario", s.runStressTest)
		api.GET("/stress/compare/:scenario", s.compareStress)
		api.POST("/portfolios/:id/stress/custom", s.runCustomStress)
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.http = &http.Server{Addr: addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("http server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info().
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

// respondError maps domain errors onto HTTP status codes.
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Portfolio not found"})
	case errors.Is(err, stress.ErrUnknownScenario):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Scenario not found"})
	case errors.Is(err, analytics.ErrInsufficientData):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Insufficient price history"})
	case errors.Is(err, analytics.ErrInvalidParameter),
		errors.Is(err, analytics.ErrRegressionUnavailable):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	default:
		s.log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
	}
}

// loadPortfolio parses the :id param and loads the portfolio, writing
// the error response itself on failure.
func (s *Server) loadPortfolio(c *gin.Context) (model.Portfolio, bool) {
	id, err := parseInt64(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid portfolio id"})
		return model.Portfolio{}, false
	}
	portfolio, err := s.store.GetPortfolio(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return model.Portfolio{}, false
	}
	return portfolio, true
}

// histories fetches price data for every non-cash position.
func (s *Server) histories(c *gin.Context, portfolio model.Portfolio) map[string]model.PriceHistory {
	return s.market.Histories(c.Request.Context(), portfolio.Tickers(), s.lookback)
}
