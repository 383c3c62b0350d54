package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"StockPilot/internal/model"
)

type watchRequest struct {
	Ticker string `json:"ticker" binding:"required"`
}

func (s *Server) getWatchlist(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"watchlist": s.store.Watchlist()})
}

func (s *Server) postWatchlist(c *gin.Context) {
	var req watchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	s.store.Watch(req.Ticker)
	c.JSON(http.StatusOK, gin.H{"watchlist": s.store.Watchlist()})
}

func (s *Server) deleteWatchlist(c *gin.Context) {
	s.store.Unwatch(c.Param("ticker"))
	c.JSON(http.StatusOK, gin.H{"watchlist": s.store.Watchlist()})
}

type autoTradeRequest struct {
	Ticker string          `json:"ticker" binding:"required"`
	Side   model.TradeSide `json:"side" binding:"required"`
	Target float64         `json:"target" binding:"required"`
}

func (s *Server) getAutoTrades(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"autotrades": s.store.AutoTrades()})
}

func (s *Server) postAutoTrade(c *gin.Context) {
	var req autoTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.Side != model.TradeBuy && req.Side != model.TradeSell {
		c.JSON(http.StatusBadRequest, gin.H{"error": "side must be BUY or SELL"})
		return
	}
	if req.Target <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target must be positive"})
		return
	}
	s.store.ArmAutoTrade(model.AutoTradeRule{Ticker: req.Ticker, Side: req.Side, Target: req.Target})
	c.JSON(http.StatusOK, gin.H{"autotrades": s.store.AutoTrades()})
}

func (s *Server) deleteAutoTrade(c *gin.Context) {
	s.store.DisarmAutoTrade(c.Param("ticker"))
	c.JSON(http.StatusOK, gin.H{"autotrades": s.store.AutoTrades()})
}

type alertRequest struct {
	Ticker string  `json:"ticker" binding:"required"`
	Upper  float64 `json:"upper"`
	Lower  float64 `json:"lower"`
}

func (s *Server) getAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"alerts": s.store.PriceAlerts()})
}

func (s *Server) postAlert(c *gin.Context) {
	var req alertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.Upper <= 0 && req.Lower <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one of upper or lower must be positive"})
		return
	}
	s.store.SetAlert(model.PriceAlert{Ticker: req.Ticker, Upper: req.Upper, Lower: req.Lower})
	c.JSON(http.StatusOK, gin.H{"alerts": s.store.PriceAlerts()})
}
