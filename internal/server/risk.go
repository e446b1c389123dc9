package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"RiskSentinel/internal/analytics"
)

func (s *Server) getRisk(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}
	histories := s.histories(c, portfolio)
	benchmark, _ := s.market.History(c.Request.Context(), s.benchmark, s.lookback)

	result, err := analytics.CalculateComparativeRisk(histories, portfolio.Weights(), benchmark, s.params)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getRiskContributions(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}
	result, err := analytics.CalculateRiskContributions(s.histories(c, portfolio), portfolio.Weights(), s.params)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getCorrelation(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}
	result, err := analytics.CalculateCorrelationMatrix(s.histories(c, portfolio), portfolio.Weights(), s.params)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getRollingMetrics(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}
	window, _ := strconv.Atoi(c.DefaultQuery("window", strconv.Itoa(analytics.DefaultRollingWindow)))

	result, err := analytics.CalculateRollingMetrics(s.histories(c, portfolio), portfolio.Weights(), window, s.params)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getTailRisk(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}
	n, _ := strconv.Atoi(c.DefaultQuery("n", "10"))

	result, err := analytics.CalculateTailRisk(s.histories(c, portfolio), portfolio.Weights(), n, s.params)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getBeta(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}
	benchmark := strings.ToUpper(c.DefaultQuery("benchmark", s.benchmark))

	benchHistory, err := s.market.History(c.Request.Context(), benchmark, s.lookback)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Cannot fetch " + benchmark + " data"})
		return
	}

	portfolioReturns, err := analytics.PortfolioReturns(s.histories(c, portfolio), portfolio.Weights(), s.params)
	if err != nil {
		s.respondError(c, err)
		return
	}
	benchReturns, err := analytics.LogReturns(benchHistory.Closes())
	if err != nil {
		s.respondError(c, err)
		return
	}

	// Right-align both series to the shorter one.
	if len(benchReturns) > len(portfolioReturns) {
		benchReturns = benchReturns[len(benchReturns)-len(portfolioReturns):]
	} else if len(portfolioReturns) > len(benchReturns) {
		portfolioReturns = portfolioReturns[len(portfolioReturns)-len(benchReturns):]
	}

	result, err := analytics.CalculateBeta(portfolioReturns, benchReturns, s.params)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getVarBacktest(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}
	window, _ := strconv.Atoi(c.DefaultQuery("window", strconv.Itoa(analytics.DefaultBacktestWindow)))
	confidence, _ := strconv.ParseFloat(c.DefaultQuery("confidence", "0.95"), 64)

	result, err := analytics.BacktestVar(s.histories(c, portfolio), portfolio.Weights(), window, confidence, s.params)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getMonteCarlo(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}
	simulations, _ := strconv.Atoi(c.DefaultQuery("simulations", strconv.Itoa(analytics.DefaultSimulations)))
	horizon, _ := strconv.Atoi(c.DefaultQuery("horizon", "252"))

	result, err := analytics.SimulateMonteCarlo(s.histories(c, portfolio), portfolio.Weights(), simulations, horizon, s.params)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getFactorExposures(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}

	portfolioReturns, err := analytics.PortfolioReturns(s.histories(c, portfolio), portfolio.Weights(), s.params)
	if err != nil {
		s.respondError(c, err)
		return
	}

	// Factor proxies: broad market, small-cap, value ETFs.
	proxies := map[string]string{"market": "SPY", "size": "IWM", "value": "IVE"}
	minLen := len(portfolioReturns)
	factorReturns := make(map[string][]float64, len(proxies))
	for factor, ticker := range proxies {
		history, err := s.market.History(c.Request.Context(), ticker, s.lookback)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Cannot fetch " + ticker + " data"})
			return
		}
		returns, err := analytics.LogReturns(history.Closes())
		if err != nil {
			s.respondError(c, err)
			return
		}
		if len(returns) < minLen {
			minLen = len(returns)
		}
		factorReturns[factor] = returns
	}

	portfolioReturns = portfolioReturns[len(portfolioReturns)-minLen:]
	for factor, returns := range factorReturns {
		factorReturns[factor] = returns[len(returns)-minLen:]
	}

	result, err := analytics.CalculateFactorExposures(portfolioReturns, factorReturns)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type whatIfRequest struct {
	Changes map[string]float64 `json:"changes" binding:"required"`
}

func (s *Server) runWhatIf(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}
	var req whatIfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	weights := portfolio.Weights()
	modified := make(map[string]float64, len(weights))
	for ticker, weight := range weights {
		modified[ticker] = weight
	}
	for ticker, newWeight := range req.Changes {
		if newWeight <= 0 {
			delete(modified, ticker)
		} else {
			modified[ticker] = newWeight
		}
	}

	histories := s.histories(c, portfolio)
	// Fetch histories for tickers introduced by the change set.
	var missing []string
	for ticker := range modified {
		if _, ok := histories[ticker]; !ok {
			missing = append(missing, ticker)
		}
	}
	if len(missing) > 0 {
		for ticker, history := range s.market.Histories(c.Request.Context(), missing, s.lookback) {
			histories[ticker] = history
		}
	}

	result, err := analytics.CalculateWhatIf(histories, weights, modified, s.params)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getSectorConcentration(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.CalculateSectorConcentration(portfolio.Weights(), portfolio.SectorMap()))
}

func (s *Server) getLiquidity(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}
	volumes := s.market.VolumeData(c.Request.Context(), portfolio.Tickers(), 30)
	c.JSON(http.StatusOK, analytics.CalculateLiquidity(portfolio.Weights(), volumes, 0))
}
