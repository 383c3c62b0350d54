package api

import (
	"errors"
	"log"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"StockPilot/internal/model"
	"StockPilot/internal/recorder"
	"StockPilot/internal/session"
)

type tradeRequest struct {
	Ticker   string          `json:"ticker" binding:"required"`
	Side     model.TradeSide `json:"side" binding:"required"`
	Quantity int             `json:"quantity" binding:"required"`
}

func (s *Server) postTrade(c *gin.Context) {
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
		return
	}

	price, err := s.provider.FetchQuote(req.Ticker)
	if err != nil {
		respondFetchError(c, req.Ticker, err)
		return
	}

	switch req.Side {
	case model.TradeBuy:
		err = s.store.Buy(req.Ticker, req.Quantity, price, false)
	case model.TradeSell:
		err = s.store.Sell(req.Ticker, req.Quantity, price, false)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "side must be BUY or SELL"})
		return
	}
	if errors.Is(err, session.ErrInsufficientFunds) || errors.Is(err, session.ErrInsufficientHoldings) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trades := s.store.TradeHistory()
	executed := trades[len(trades)-1]
	balance := s.store.Balance()
	if err := s.recorder.RecordTrade(&recorder.TradeEvent{Trade: executed, BalanceAfter: balance}); err != nil {
		log.Printf("[ERROR] record trade: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"trade": executed, "balance": balance})
}

// position is one valued holding in the portfolio response.
type position struct {
	Ticker   string  `json:"ticker"`
	Quantity int     `json:"quantity"`
	AvgPrice float64 `json:"avg_price"`
	Price    float64 `json:"price"`
	Value    float64 `json:"value"`
}

// getPortfolio values holdings at the requested day offset. day=0 uses
// live quotes; day>0 asks the simulator (the dashboard's time-travel
// slider).
func (s *Server) getPortfolio(c *gin.Context) {
	day, err := strconv.Atoi(c.DefaultQuery("day", "0"))
	if err != nil || day < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day must be a non-negative integer"})
		return
	}

	holdings := s.store.Portfolio()
	tickers := make([]string, 0, len(holdings))
	for t := range holdings {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	positions := make([]position, 0, len(holdings))
	var total float64
	for _, ticker := range tickers {
		h := holdings[ticker]
		price := s.positionPrice(ticker, day, h.AvgPrice)
		value := price * float64(h.Quantity)
		total += value
		positions = append(positions, position{
			Ticker:   ticker,
			Quantity: h.Quantity,
			AvgPrice: h.AvgPrice,
			Price:    price,
			Value:    value,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"day":       day,
		"positions": positions,
		"value":     total,
		"balance":   s.store.Balance(),
	})
}

func (s *Server) positionPrice(ticker string, day int, avgPrice float64) float64 {
	if day > 0 {
		return s.simulator.Simulate(ticker, day, avgPrice)
	}
	price, err := s.provider.FetchQuote(ticker)
	if err != nil {
		log.Printf("[WARN] portfolio: quote %s failed, valuing at average price: %v", ticker, err)
		return avgPrice
	}
	return price
}

func (s *Server) getWallet(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"balance": s.store.Balance(),
		"history": s.store.WalletHistory(),
		"trades":  s.store.TradeHistory(),
	})
}
