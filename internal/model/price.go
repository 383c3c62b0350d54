package model

import (
	"errors"
	"fmt"
	"time"
)

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries holds one trading day per bar, ascending by date.
// Construct with NewPriceSeries so the ordering and positivity
// invariants hold for every series that reaches the analysis code.
type PriceSeries struct {
	Ticker string  `json:"ticker"`
	Bars   []OHLCV `json:"bars"`
}

// MinModelHistory is the shortest series the forecast model accepts.
// Shorter histories produce numerically unstable fits and are rejected.
const MinModelHistory = 50

var ErrEmptySeries = errors.New("price series is empty")

// NewPriceSeries validates and wraps raw bars into a PriceSeries.
// Bars must be non-empty, strictly ascending by date with no duplicate
// days, and every close must be positive.
func NewPriceSeries(ticker string, bars []OHLCV) (PriceSeries, error) {
	if len(bars) == 0 {
		return PriceSeries{}, ErrEmptySeries
	}
	for i, b := range bars {
		if b.Close <= 0 {
			return PriceSeries{}, fmt.Errorf("bar %d (%s): close must be positive, got %v",
				i, b.Date.Format("2006-01-02"), b.Close)
		}
		if i > 0 && !bars[i-1].Date.Before(b.Date) {
			return PriceSeries{}, fmt.Errorf("bar %d (%s): dates must be strictly ascending",
				i, b.Date.Format("2006-01-02"))
		}
	}
	return PriceSeries{Ticker: ticker, Bars: bars}, nil
}

// Len returns the number of trading days in the series.
func (s PriceSeries) Len() int { return len(s.Bars) }

// Closes returns the closing prices in date order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// LastDate returns the most recent observed date, or the zero time for
// an empty series.
func (s PriceSeries) LastDate() time.Time {
	if len(s.Bars) == 0 {
		return time.Time{}
	}
	return s.Bars[len(s.Bars)-1].Date
}

// LastClose returns the most recent closing price, or 0 for an empty series.
func (s PriceSeries) LastClose() float64 {
	if len(s.Bars) == 0 {
		return 0
	}
	return s.Bars[len(s.Bars)-1].Close
}
