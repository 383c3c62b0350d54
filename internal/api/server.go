// Package api is the HTTP surface consumed by the dashboard UI.
package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"StockPilot/internal/forecast"
	"StockPilot/internal/provider"
	"StockPilot/internal/recorder"
	"StockPilot/internal/screener"
	"StockPilot/internal/session"
	"StockPilot/internal/simulator"
)

// Server bundles the collaborators behind the HTTP handlers.
type Server struct {
	provider   provider.Provider
	forecaster *forecast.Forecaster
	simulator  *simulator.Simulator
	screener   *screener.Screener
	store      *session.Store
	recorder   recorder.Recorder

	forecastDays int
	universe     []string
}

// Options configures a Server.
type Options struct {
	Provider     provider.Provider
	Forecaster   *forecast.Forecaster
	Simulator    *simulator.Simulator
	Screener     *screener.Screener
	Store        *session.Store
	Recorder     recorder.Recorder
	ForecastDays int
	Universe     []string
}

// NewServer creates a Server.
func NewServer(opts Options) *Server {
	days := opts.ForecastDays
	if days <= 0 {
		days = forecast.DefaultDays
	}
	return &Server{
		provider:     opts.Provider,
		forecaster:   opts.Forecaster,
		simulator:    opts.Simulator,
		screener:     opts.Screener,
		store:        opts.Store,
		recorder:     opts.Recorder,
		forecastDays: days,
		universe:     opts.Universe,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router(corsOrigins []string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/stocks/:ticker/analysis", s.getAnalysis)
		api.GET("/stocks/:ticker/history", s.getHistory)
		api.GET("/stocks/:ticker/quote", s.getQuote)
		api.GET("/stocks/:ticker/news", s.getNews)
		api.GET("/stocks/:ticker/actions", s.getCorporateActions)

		api.POST("/screen", s.postScreen)

		api.POST("/trades", s.postTrade)
		api.GET("/portfolio", s.getPortfolio)
		api.GET("/wallet", s.getWallet)

		api.GET("/watchlist", s.getWatchlist)
		api.POST("/watchlist", s.postWatchlist)
		api.DELETE("/watchlist/:ticker", s.deleteWatchlist)

		api.GET("/autotrades", s.getAutoTrades)
		api.POST("/autotrades", s.postAutoTrade)
		api.DELETE("/autotrades/:ticker", s.deleteAutoTrade)

		api.GET("/alerts", s.getAlerts)
		api.POST("/alerts", s.postAlert)
	}
	return r
}
