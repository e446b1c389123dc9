package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"RiskSentinel/internal/model"
)

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func (s *Server) listPortfolios(c *gin.Context) {
	portfolios, err := s.store.ListPortfolios(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, portfolios)
}

func (s *Server) getPortfolio(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, portfolio)
}

func (s *Server) createPortfolio(c *gin.Context) {
	var portfolio model.Portfolio
	if err := c.ShouldBindJSON(&portfolio); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if portfolio.Name == "" || len(portfolio.Positions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "name and positions are required"})
		return
	}
	created, err := s.store.CreatePortfolio(c.Request.Context(), portfolio)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) deletePortfolio(c *gin.Context) {
	id, err := parseInt64(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid portfolio id"})
		return
	}
	if err := s.store.DeletePortfolio(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) getPositions(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, portfolio.Positions)
}

func (s *Server) getQuote(c *gin.Context) {
	ticker := strings.ToUpper(c.Param("ticker"))
	quote, err := s.market.Quote(c.Request.Context(), ticker)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Quote not found for " + ticker})
		return
	}
	c.JSON(http.StatusOK, quote)
}

type positionValue struct {
	Ticker    string   `json:"ticker"`
	Name      string   `json:"name"`
	Weight    float64  `json:"weight"`
	Price     *float64 `json:"price"`
	ChangePct *float64 `json:"change_pct"`
}

func (s *Server) getValue(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}
	quotes := s.market.Quotes(c.Request.Context(), portfolio.Tickers())

	positions := make([]positionValue, 0, len(portfolio.Positions))
	for _, pos := range portfolio.Positions {
		pv := positionValue{Ticker: pos.Ticker, Name: pos.Name, Weight: pos.Weight}
		if quote, ok := quotes[pos.Ticker]; ok {
			price, changePct := quote.Price, quote.ChangePct
			pv.Price = &price
			pv.ChangePct = &changePct
		}
		positions = append(positions, pv)
	}

	c.JSON(http.StatusOK, gin.H{
		"portfolio_id":   portfolio.ID,
		"portfolio_name": portfolio.Name,
		"positions":      positions,
	})
}

func (s *Server) getDataInfo(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}
	histories := s.histories(c, portfolio)
	if len(histories) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "No price history available"})
		return
	}

	// Shortest series defines the usable window.
	var shortest model.PriceHistory
	for _, h := range histories {
		if shortest == nil || len(h) < len(shortest) {
			shortest = h
		}
	}
	if len(shortest) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "No price history available"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"start_date":   shortest[0].Date.Format(model.DateFormat),
		"end_date":     shortest[len(shortest)-1].Date.Format(model.DateFormat),
		"trading_days": len(shortest),
		"tickers":      len(histories),
	})
}

func (s *Server) refreshData(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}
	tickers := append(portfolio.Tickers(), s.benchmark)
	refreshed := s.market.Refresh(c.Request.Context(), tickers, s.lookback)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "tickers_refreshed": refreshed})
}

func (s *Server) getSnapshots(c *gin.Context) {
	portfolio, ok := s.loadPortfolio(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	snapshots, err := s.store.RecentSnapshots(c.Request.Context(), portfolio.ID, limit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshots)
}
