package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"StockPilot/internal/api"
	"StockPilot/internal/cache"
	"StockPilot/internal/config"
	"StockPilot/internal/engine"
	"StockPilot/internal/forecast"
	"StockPilot/internal/notify"
	"StockPilot/internal/provider"
	"StockPilot/internal/recorder"
	"StockPilot/internal/screener"
	"StockPilot/internal/session"
	"StockPilot/internal/simulator"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockPilot starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cache: Redis when configured and reachable, memory otherwise
	var c cache.Cache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Printf("[WARN] redis unavailable, falling back to memory cache: %v", err)
			c = cache.NewMemory()
		} else {
			c = rc
		}
	} else {
		c = cache.NewMemory()
	}

	// Market-data provider
	var p provider.Provider = provider.NewYahooFetcher(cfg.Provider.Proxy)
	p = provider.NewCachedProvider(p, c, provider.TTLs{
		History: time.Duration(cfg.Provider.HistoryTTLSec) * time.Second,
		Quote:   time.Duration(cfg.Provider.QuoteTTLSec) * time.Second,
		Info:    time.Duration(cfg.Provider.InfoTTLSec) * time.Second,
	})
	log.Printf("[INFO] data source: %s", p.Name())

	// Analysis pipeline
	forecaster := forecast.New(forecast.Options{
		MinHistory:       cfg.Forecast.MinHistory,
		Seed:             cfg.Forecast.Seed,
		SearchIterations: cfg.Forecast.SearchIterations,
		CVFolds:          cfg.Forecast.CVFolds,
		Workers:          cfg.Forecast.Workers,
	})
	sim := simulator.New(p, forecaster)
	scr := screener.New(p, forecaster, cfg.Forecast.Days, cfg.Screener.Workers)

	// Session state
	store := session.NewStore(cfg.Wallet.InitialBalance)

	// Notifier
	var n notify.Notifier = notify.NewLogNotifier()
	if cfg.Telegram.BotToken != "" {
		tn := notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Provider.Proxy)
		n = tn
		go tn.StartPolling(ctx, commandHandler(store))
		log.Println("[INFO] Telegram notifier and polling enabled")
	}

	// Recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Background engine
	eng := engine.New(ctx, p, store, n, rec)
	if err := eng.Register(cfg.Engine.CheckCron); err != nil {
		log.Fatalf("[FATAL] register engine check: %v", err)
	}
	eng.Start()
	defer eng.Stop()

	// HTTP surface
	srv := api.NewServer(api.Options{
		Provider:     p,
		Forecaster:   forecaster,
		Simulator:    sim,
		Screener:     scr,
		Store:        store,
		Recorder:     rec,
		ForecastDays: cfg.Forecast.Days,
		Universe:     cfg.Screener.Universe,
	})
	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Router(cfg.Server.CORSOrigins),
	}

	go func() {
		log.Printf("[INFO] serving on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[FATAL] serve: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	log.Println("[INFO] StockPilot stopped")
}

// commandHandler answers Telegram chat commands from the session store.
func commandHandler(store *session.Store) notify.CommandHandler {
	return func(command string) string {
		switch command {
		case "/portfolio":
			return notify.FormatPortfolio(store.Portfolio(), store.Balance())
		case "/wallet":
			return notify.FormatWallet(store.WalletHistory(), store.Balance())
		default:
			return "Commands:\n/portfolio\n/wallet"
		}
	}
}
