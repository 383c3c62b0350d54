package model

import "time"

// ForecastPoint is one projected closing price.
type ForecastPoint struct {
	Date           time.Time `json:"date"`
	PredictedClose float64   `json:"predicted_close"`
}

// Forecast is an ordered sequence of projected closes for the calendar
// days following the last observed date. An empty Forecast means "no
// signal available" (insufficient history or a failed fit), never an
// error condition.
type Forecast []ForecastPoint

// Empty reports whether the forecast carries no points.
func (f Forecast) Empty() bool { return len(f) == 0 }

// Slope returns last predicted close minus first, or 0 when empty.
func (f Forecast) Slope() float64 {
	if len(f) == 0 {
		return 0
	}
	return f[len(f)-1].PredictedClose - f[0].PredictedClose
}
