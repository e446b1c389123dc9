package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"RiskSentinel/internal/esg"
	"RiskSentinel/internal/guidelines"
	"RiskSentinel/internal/performance"
)

func (s *Server) getPerformance(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}
	benchmark := strings.ToUpper(c.DefaultQuery("benchmark", s.benchmark))
	benchHistory, _ := s.market.History(c.Request.Context(), benchmark, s.lookback)

	result, err := performance.CalculatePerformanceMetrics(
		s.histories(c, portfolio), portfolio.Weights(), benchHistory, s.params)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getGIPS(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}
	benchmark := strings.ToUpper(c.DefaultQuery("benchmark", s.benchmark))
	feeBps, err := strconv.Atoi(c.DefaultQuery("fee_bps", strconv.Itoa(s.feeBps)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid fee_bps"})
		return
	}
	benchHistory, _ := s.market.History(c.Request.Context(), benchmark, s.lookback)

	result, err := performance.CalculateGIPSMetrics(
		s.histories(c, portfolio), portfolio.Weights(), benchHistory, feeBps, s.params)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getESG(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, esg.CalculatePortfolioESG(portfolio))
}

func (s *Server) getGuidelineDefinitions(c *gin.Context) {
	c.JSON(http.StatusOK, guidelines.DefaultRules)
}

func (s *Server) checkGuidelines(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, guidelines.CheckGuidelines(portfolio, nil))
}
