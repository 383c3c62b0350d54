// Package simulator produces the price shown by the dashboard's
// time-travel slider. It is a demo convenience with a deliberate
// positive drift floor, not an unbiased forecast: simulated holdings
// always appear to move in a plausible, non-degenerate direction.
package simulator

import (
	"log"

	"StockPilot/internal/forecast"
	"StockPilot/internal/provider"
)

const (
	// floorDailyDrift guarantees a minimum 0.5%-per-day gain over the
	// purchase price.
	floorDailyDrift = 0.005
	// fallbackDailyDrift is the flat 1%-per-day estimate used when the
	// model path is unavailable.
	fallbackDailyDrift = 0.01
)

// Simulator blends model forecasts with a drift floor.
type Simulator struct {
	provider   provider.Provider
	forecaster *forecast.Forecaster
}

// New creates a Simulator over the given data provider and forecaster.
func New(p provider.Provider, f *forecast.Forecaster) *Simulator {
	return &Simulator{provider: p, forecaster: f}
}

// Simulate returns a plausible price for the holding dayOffset days
// from now. Day 0 is the caller's job (use the live quote). Any fetch
// or fit failure falls back to flat drift; this never errors.
func (s *Simulator) Simulate(ticker string, dayOffset int, purchasePrice float64) float64 {
	if dayOffset <= 0 {
		return purchasePrice
	}
	fallback := purchasePrice * (1 + float64(dayOffset)*fallbackDailyDrift)

	series, err := s.provider.FetchHistory(ticker, "1y")
	if err != nil {
		log.Printf("[WARN] simulate %s day %d: history fetch failed, using flat drift: %v",
			ticker, dayOffset, err)
		return fallback
	}

	fc := s.forecaster.Forecast(series, dayOffset)
	if fc.Empty() {
		return fallback
	}
	estimate := fc[len(fc)-1].PredictedClose

	floor := purchasePrice * (1 + float64(dayOffset)*floorDailyDrift)
	if estimate < floor {
		return floor
	}
	return estimate
}
