package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"StockPilot/internal/advisor"
	"StockPilot/internal/indicator"
	"StockPilot/internal/model"
	"StockPilot/internal/provider"
	"StockPilot/internal/recorder"
)

// analysisResponse is the full per-ticker payload behind the dashboard
// detail page.
type analysisResponse struct {
	Ticker         string               `json:"ticker"`
	Company        model.CompanyInfo    `json:"company"`
	History        []model.OHLCV        `json:"history"`
	Indicators     model.IndicatorFrame `json:"indicators"`
	Forecast       model.Forecast       `json:"forecast"`
	Recommendation model.Recommendation `json:"recommendation"`
}

func (s *Server) getAnalysis(c *gin.Context) {
	ticker := c.Param("ticker")

	series, err := s.provider.FetchHistory(ticker, "1y")
	if err != nil {
		respondFetchError(c, ticker, err)
		return
	}

	frame := indicator.Compute(series)
	fc := s.forecaster.Forecast(series, s.forecastDays)
	rec := advisor.Recommend(frame, fc)

	// Company info is decoration; the analysis stands without it.
	info, err := s.provider.FetchCompanyInfo(ticker)
	if err != nil {
		log.Printf("[WARN] analysis %s: company info unavailable: %v", ticker, err)
		info = model.CompanyInfo{Ticker: ticker, Name: ticker}
	}

	if err := s.recorder.RecordAnalysis(&recorder.AnalysisSnapshot{
		Ticker:       ticker,
		LastClose:    series.LastClose(),
		RSI:          frame.LatestRSI(),
		MACD:         frame.LatestMACD(),
		SMA10:        frame.LatestSMA10(),
		SMA50:        frame.LatestSMA50(),
		Call:         rec.Call,
		Risk:         rec.Risk,
		TargetPrice:  rec.TargetPrice,
		Volatility:   rec.Volatility,
		ForecastDays: s.forecastDays,
	}); err != nil {
		log.Printf("[ERROR] record analysis %s: %v", ticker, err)
	}

	c.JSON(http.StatusOK, analysisResponse{
		Ticker:         ticker,
		Company:        info,
		History:        series.Bars,
		Indicators:     frame,
		Forecast:       fc,
		Recommendation: rec,
	})
}

func (s *Server) getHistory(c *gin.Context) {
	ticker := c.Param("ticker")
	period := c.DefaultQuery("period", "1y")

	series, err := s.provider.FetchHistory(ticker, period)
	if err != nil {
		respondFetchError(c, ticker, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticker": ticker, "period": period, "bars": series.Bars})
}

func (s *Server) getQuote(c *gin.Context) {
	ticker := c.Param("ticker")

	price, err := s.provider.FetchQuote(ticker)
	if err != nil {
		respondFetchError(c, ticker, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticker": ticker, "price": price})
}

func (s *Server) getNews(c *gin.Context) {
	ticker := c.Param("ticker")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	news, err := s.provider.FetchNews(ticker, limit)
	if err != nil {
		respondFetchError(c, ticker, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticker": ticker, "news": news})
}

func (s *Server) getCorporateActions(c *gin.Context) {
	ticker := c.Param("ticker")

	actions, err := s.provider.FetchCorporateActions(ticker)
	if err != nil {
		respondFetchError(c, ticker, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticker": ticker, "actions": actions})
}

func respondFetchError(c *gin.Context, ticker string, err error) {
	if errors.Is(err, provider.ErrDataUnavailable) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no data available for " + ticker})
		return
	}
	log.Printf("[ERROR] fetch %s: %v", ticker, err)
	c.JSON(http.StatusBadGateway, gin.H{"error": "upstream data source failed"})
}
