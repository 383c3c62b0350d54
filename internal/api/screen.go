package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"StockPilot/internal/model"
	"StockPilot/internal/recorder"
	"StockPilot/internal/screener"
)

type screenRequest struct {
	Tickers []string `json:"tickers"`
}

func (s *Server) postScreen(c *gin.Context) {
	var req screenRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
	}
	tickers := req.Tickers
	if len(tickers) == 0 {
		tickers = s.universe
	}

	results := s.screener.Screen(tickers)
	buys := screener.BuyRated(results)

	var sells, holds int
	for _, r := range results {
		switch r.Call {
		case model.CallSell:
			sells++
		case model.CallHold:
			holds++
		}
	}
	if err := s.recorder.RecordScreen(&recorder.ScreenEvent{
		Requested: len(tickers),
		Analyzed:  len(results),
		Buys:      len(buys),
		Sells:     sells,
		Holds:     holds,
	}); err != nil {
		log.Printf("[ERROR] record screen: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"requested": len(tickers),
		"results":   results,
		"buys":      buys,
	})
}
