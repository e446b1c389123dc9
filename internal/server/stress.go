package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"RiskSentinel/internal/model"
	"RiskSentinel/internal/stress"
)

func (s *Server) listStressScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, stress.Scenarios)
}

func (s *Server) runStressTest(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}
	result, err := stress.RunScenario(c.Param("scenario"), portfolio)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) compareStress(c *gin.Context) {
	scenario, ok := stress.Scenario(c.Param("scenario"))
	if !ok {
		s.respondError(c, stress.ErrUnknownScenario)
		return
	}
	portfolios, err := s.store.ListPortfolios(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	results := make([]model.StressResult, 0, len(portfolios))
	for _, portfolio := range portfolios {
		result, err := stress.RunScenario(scenario.ID, portfolio)
		if err != nil {
			continue
		}
		results = append(results, result)
	}
	c.JSON(http.StatusOK, gin.H{"scenario": scenario, "results": results})
}

type customStressRequest struct {
	Shocks map[string]float64 `json:"shocks" binding:"required"`
}

func (s *Server) runCustomStress(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}
	var req customStressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stress.RunCustom(req.Shocks, portfolio))
}
