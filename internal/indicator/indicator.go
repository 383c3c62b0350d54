// Package indicator derives per-day technical indicators from a price
// series. Every output slice is aligned with the input bars; positions
// that lack enough lookback are filled with 0 rather than left absent,
// which biases early-series signals toward neutral.
package indicator

import "StockPilot/internal/model"

const (
	rsiPeriod    = 14
	emaFast      = 12
	emaSlow      = 26
	signalPeriod = 9
	smaShort     = 10
	smaLong      = 50
)

// Compute builds an IndicatorFrame from a price series. Pure transform,
// no error conditions.
func Compute(series model.PriceSeries) model.IndicatorFrame {
	closes := series.Closes()
	macd, signal, hist := macdSeries(closes)
	return model.IndicatorFrame{
		Series:        series,
		RSI:           rsiSeries(closes, rsiPeriod),
		MACD:          macd,
		SignalLine:    signal,
		MACDHistogram: hist,
		SMA10:         SMASeries(closes, smaShort),
		SMA50:         SMASeries(closes, smaLong),
	}
}

// SMASeries returns the trailing simple moving average per day. The
// first period-1 positions are 0.
func SMASeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// rsiSeries computes the RSI over a trailing window of simple average
// gains and losses. A window with zero losses is guarded explicitly and
// reads 100, the limiting value of 100 - 100/(1+RS) as RS grows; a
// window with no movement at all reads 0 by the leading-fill convention.
func rsiSeries(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	if len(closes) < period+1 {
		return out
	}
	for i := period; i < len(closes); i++ {
		var gains, losses float64
		for j := i - period + 1; j <= i; j++ {
			change := closes[j] - closes[j-1]
			if change > 0 {
				gains += change
			} else {
				losses -= change
			}
		}
		if losses == 0 {
			if gains > 0 {
				out[i] = 100
			}
			continue
		}
		rs := (gains / float64(period)) / (losses / float64(period))
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

// emaSeries computes an exponential moving average seeded with the SMA
// of the first period values at index period-1. Earlier positions are 0.
func emaSeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) < period {
		return out
	}
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	out[period-1] = sum / float64(period)

	k := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		out[i] = (values[i]-out[i-1])*k + out[i-1]
	}
	return out
}

// macdSeries returns MACD, signal line and histogram per day. MACD is 0
// until both EMAs are seeded (index emaSlow-1); the signal line needs a
// further signalPeriod MACD values.
func macdSeries(closes []float64) (macd, signal, hist []float64) {
	n := len(closes)
	macd = make([]float64, n)
	signal = make([]float64, n)
	hist = make([]float64, n)
	if n < emaSlow {
		return macd, signal, hist
	}

	fast := emaSeries(closes, emaFast)
	slow := emaSeries(closes, emaSlow)
	for i := emaSlow - 1; i < n; i++ {
		macd[i] = fast[i] - slow[i]
	}

	// The signal line is a 9-day EMA of the MACD values that exist from
	// index emaSlow-1 onward.
	valid := macd[emaSlow-1:]
	sigValid := emaSeries(valid, signalPeriod)
	for i, v := range sigValid {
		signal[emaSlow-1+i] = v
	}
	for i := emaSlow - 1 + signalPeriod - 1; i < n; i++ {
		hist[i] = macd[i] - signal[i]
	}
	return macd, signal, hist
}
