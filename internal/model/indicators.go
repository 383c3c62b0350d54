package model

// IndicatorFrame is a PriceSeries augmented with per-day derived fields.
// All slices are aligned with Series.Bars. Positions that lack enough
// lookback hold a literal 0, not a sentinel: callers must not read an
// early 0 as "no momentum" without checking series length first.
// Frames are never mutated after creation.
type IndicatorFrame struct {
	Series        PriceSeries `json:"series"`
	RSI           []float64   `json:"rsi"`
	MACD          []float64   `json:"macd"`
	SignalLine    []float64   `json:"signal_line"`
	MACDHistogram []float64   `json:"macd_histogram"`
	SMA10         []float64   `json:"sma10"`
	SMA50         []float64   `json:"sma50"`
}

// LatestSMA10 returns the most recent 10-day moving average (0 if the
// frame is empty or the lookback never accumulated).
func (f IndicatorFrame) LatestSMA10() float64 { return lastValue(f.SMA10) }

// LatestSMA50 returns the most recent 50-day moving average.
func (f IndicatorFrame) LatestSMA50() float64 { return lastValue(f.SMA50) }

// LatestRSI returns the most recent RSI reading.
func (f IndicatorFrame) LatestRSI() float64 { return lastValue(f.RSI) }

// LatestMACD returns the most recent MACD value.
func (f IndicatorFrame) LatestMACD() float64 { return lastValue(f.MACD) }

func lastValue(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return vals[len(vals)-1]
}
