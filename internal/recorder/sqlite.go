package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists audit events to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers don't block the engine's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			ticker        TEXT NOT NULL,
			last_close    REAL,
			rsi           REAL,
			macd          REAL,
			sma10         REAL,
			sma50         REAL,
			call          TEXT,
			risk          TEXT,
			target_price  REAL,
			volatility    REAL,
			forecast_days INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_ts ON analyses(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_ticker ON analyses(ticker)`,

		`CREATE TABLE IF NOT EXISTS screens (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			requested INTEGER,
			analyzed  INTEGER,
			buys      INTEGER,
			sells     INTEGER,
			holds     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_screens_ts ON screens(timestamp)`,

		`CREATE TABLE IF NOT EXISTS trades (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			ticker        TEXT NOT NULL,
			side          TEXT NOT NULL,
			auto          INTEGER NOT NULL,
			quantity      INTEGER,
			price         REAL,
			total         REAL,
			balance_after REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_ts ON trades(timestamp)`,

		`CREATE TABLE IF NOT EXISTS alerts (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			ticker    TEXT NOT NULL,
			price     REAL,
			bound     REAL,
			upper     INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_ts ON alerts(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAnalysis(snap *AnalysisSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO analyses
		(timestamp, ticker, last_close, rsi, macd, sma10, sma50,
		 call, risk, target_price, volatility, forecast_days)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), snap.Ticker, snap.LastClose,
		snap.RSI, snap.MACD, snap.SMA10, snap.SMA50,
		string(snap.Call), string(snap.Risk),
		snap.TargetPrice, snap.Volatility, snap.ForecastDays,
	)
	return err
}

func (r *SQLiteRecorder) RecordScreen(evt *ScreenEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO screens
		(timestamp, requested, analyzed, buys, sells, holds)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Requested, evt.Analyzed,
		evt.Buys, evt.Sells, evt.Holds,
	)
	return err
}

func (r *SQLiteRecorder) RecordTrade(evt *TradeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	auto := 0
	if evt.Trade.Auto {
		auto = 1
	}
	_, err := r.db.Exec(`INSERT INTO trades
		(timestamp, ticker, side, auto, quantity, price, total, balance_after)
		VALUES (?,?,?,?,?,?,?,?)`,
		evt.Trade.Time.Unix(), evt.Trade.Ticker, string(evt.Trade.Side), auto,
		evt.Trade.Quantity, evt.Trade.Price, evt.Trade.Total, evt.BalanceAfter,
	)
	return err
}

func (r *SQLiteRecorder) RecordAlert(evt *AlertEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	upper := 0
	if evt.Upper {
		upper = 1
	}
	_, err := r.db.Exec(`INSERT INTO alerts
		(timestamp, ticker, price, bound, upper)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), evt.Ticker, evt.Price, evt.Bound, upper,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
