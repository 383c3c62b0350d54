package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr        string   `yaml:"addr"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Provider struct {
		Proxy         string `yaml:"proxy"`
		HistoryTTLSec int    `yaml:"history_ttl_sec"`
		QuoteTTLSec   int    `yaml:"quote_ttl_sec"`
		InfoTTLSec    int    `yaml:"info_ttl_sec"`
	} `yaml:"provider"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Forecast struct {
		Days             int   `yaml:"days"`
		MinHistory       int   `yaml:"min_history"`
		Seed             int64 `yaml:"seed"`
		SearchIterations int   `yaml:"search_iterations"`
		CVFolds          int   `yaml:"cv_folds"`
		Workers          int   `yaml:"workers"`
	} `yaml:"forecast"`
	Screener struct {
		Universe []string `yaml:"universe"`
		Workers  int      `yaml:"workers"`
	} `yaml:"screener"`
	Engine struct {
		CheckCron string `yaml:"check_cron"`
	} `yaml:"engine"`
	Wallet struct {
		InitialBalance float64 `yaml:"initial_balance"`
	} `yaml:"wallet"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Provider.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("FORECAST_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Forecast.Seed = seed
		}
	}
	if v := os.Getenv("INITIAL_BALANCE"); v != "" {
		if bal, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Wallet.InitialBalance = bal
		}
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	if cfg.Provider.HistoryTTLSec == 0 {
		cfg.Provider.HistoryTTLSec = 300
	}
	if cfg.Provider.QuoteTTLSec == 0 {
		cfg.Provider.QuoteTTLSec = 15
	}
	if cfg.Provider.InfoTTLSec == 0 {
		cfg.Provider.InfoTTLSec = 3600
	}
	if cfg.Forecast.Days == 0 {
		cfg.Forecast.Days = 10
	}
	if cfg.Forecast.MinHistory == 0 {
		cfg.Forecast.MinHistory = 50
	}
	if cfg.Forecast.Seed == 0 {
		cfg.Forecast.Seed = 42
	}
	if cfg.Forecast.SearchIterations == 0 {
		cfg.Forecast.SearchIterations = 10
	}
	if cfg.Forecast.CVFolds == 0 {
		cfg.Forecast.CVFolds = 3
	}
	if cfg.Forecast.Workers == 0 {
		cfg.Forecast.Workers = 4
	}
	if len(cfg.Screener.Universe) == 0 {
		cfg.Screener.Universe = []string{
			"RELIANCE.NS", "TCS.NS", "HDFCBANK.NS", "INFY.NS", "ICICIBANK.NS",
			"HINDUNILVR.NS", "SBIN.NS", "BAJFINANCE.NS", "BHARTIARTL.NS", "KOTAKBANK.NS",
		}
	}
	if cfg.Screener.Workers == 0 {
		cfg.Screener.Workers = 4
	}
	if cfg.Engine.CheckCron == "" {
		cfg.Engine.CheckCron = "@every 30s"
	}
	if cfg.Wallet.InitialBalance == 0 {
		cfg.Wallet.InitialBalance = 100000
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Forecast.Days <= 0 {
		return fmt.Errorf("forecast.days must be positive")
	}
	if c.Forecast.MinHistory < c.Forecast.CVFolds {
		return fmt.Errorf("forecast.min_history must be at least forecast.cv_folds")
	}
	if c.Screener.Workers <= 0 {
		return fmt.Errorf("screener.workers must be positive")
	}
	if c.Wallet.InitialBalance < 0 {
		return fmt.Errorf("wallet.initial_balance must not be negative")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}
