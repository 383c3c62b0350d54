// Package recorder keeps an audit log of analyses, screening runs and
// engine actions. The log is an append-only history for later review;
// live session state never reads from it.
package recorder

import "StockPilot/internal/model"

// AnalysisSnapshot records one full per-ticker analysis.
type AnalysisSnapshot struct {
	Ticker       string
	LastClose    float64
	RSI          float64
	MACD         float64
	SMA10        float64
	SMA50        float64
	Call         model.Call
	Risk         model.Risk
	TargetPrice  float64
	Volatility   float64
	ForecastDays int
}

// ScreenEvent records one screening run.
type ScreenEvent struct {
	Requested int
	Analyzed  int
	Buys      int
	Sells     int
	Holds     int
}

// TradeEvent records one executed session trade.
type TradeEvent struct {
	Trade        model.TradeRecord
	BalanceAfter float64
}

// AlertEvent records a fired price alert.
type AlertEvent struct {
	Ticker string
	Price  float64
	Bound  float64
	Upper  bool
}

// Recorder persists audit events.
type Recorder interface {
	RecordAnalysis(snap *AnalysisSnapshot) error
	RecordScreen(evt *ScreenEvent) error
	RecordTrade(evt *TradeEvent) error
	RecordAlert(evt *AlertEvent) error
	Close() error
}
