package indicator

import (
	"math"
	"testing"
	"time"

	"StockPilot/internal/model"
)

func seriesFromCloses(t *testing.T, closes []float64) model.PriceSeries {
	t.Helper()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{Date: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}
	s, err := model.NewPriceSeries("TEST", bars)
	if err != nil {
		t.Fatalf("build series: %v", err)
	}
	return s
}

func TestSMASeries(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5, 6}
	sma := SMASeries(vals, 3)
	want := []float64{0, 0, 2, 3, 4, 5}
	for i := range want {
		if math.Abs(sma[i]-want[i]) > 1e-12 {
			t.Errorf("sma[%d]: want %v, got %v", i, want[i], sma[i])
		}
	}
}

func TestSMASeries_ShortInput(t *testing.T) {
	sma := SMASeries([]float64{1, 2}, 5)
	for i, v := range sma {
		if v != 0 {
			t.Errorf("sma[%d]: expected 0 for short input, got %v", i, v)
		}
	}
}

func TestCompute_LeadingZeros(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	frame := Compute(seriesFromCloses(t, closes))

	for i := 0; i < 14; i++ {
		if frame.RSI[i] != 0 {
			t.Errorf("RSI[%d]: expected leading 0, got %v", i, frame.RSI[i])
		}
	}
	for i := 0; i < 9; i++ {
		if frame.SMA10[i] != 0 {
			t.Errorf("SMA10[%d]: expected leading 0, got %v", i, frame.SMA10[i])
		}
	}
	for i := 0; i < 49; i++ {
		if frame.SMA50[i] != 0 {
			t.Errorf("SMA50[%d]: expected leading 0, got %v", i, frame.SMA50[i])
		}
	}
	for i := 0; i < 25; i++ {
		if frame.MACD[i] != 0 {
			t.Errorf("MACD[%d]: expected leading 0, got %v", i, frame.MACD[i])
		}
	}
}

func TestRSI_AllGainsReads100(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i) // strictly rising, zero losses
	}
	frame := Compute(seriesFromCloses(t, closes))
	got := frame.LatestRSI()
	if got != 100 {
		t.Errorf("expected RSI 100 on all-gain window, got %v", got)
	}
}

func TestRSI_FlatSeriesStaysNeutral(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100
	}
	frame := Compute(seriesFromCloses(t, closes))
	for i, v := range frame.RSI {
		if v != 0 {
			t.Errorf("RSI[%d]: expected 0 on flat series, got %v", i, v)
		}
	}
}

func TestRSI_Balanced(t *testing.T) {
	// Alternate +1/-1: average gain equals average loss, RS=1, RSI=50.
	closes := make([]float64, 40)
	closes[0] = 100
	for i := 1; i < len(closes); i++ {
		if i%2 == 1 {
			closes[i] = closes[i-1] + 1
		} else {
			closes[i] = closes[i-1] - 1
		}
	}
	frame := Compute(seriesFromCloses(t, closes))
	got := frame.RSI[len(closes)-1]
	if math.Abs(got-50) > 1e-9 {
		t.Errorf("expected RSI 50 on balanced series, got %v", got)
	}
}

func TestMACD_FlatSeriesIsZero(t *testing.T) {
	closes := make([]float64, 80)
	for i := range closes {
		closes[i] = 250
	}
	frame := Compute(seriesFromCloses(t, closes))
	for i := range closes {
		if frame.MACD[i] != 0 || frame.SignalLine[i] != 0 || frame.MACDHistogram[i] != 0 {
			t.Fatalf("index %d: expected zero MACD/signal/hist on flat series, got %v/%v/%v",
				i, frame.MACD[i], frame.SignalLine[i], frame.MACDHistogram[i])
		}
	}
}

func TestMACD_RisingSeriesPositive(t *testing.T) {
	closes := make([]float64, 80)
	for i := range closes {
		closes[i] = 100 + 2*float64(i)
	}
	frame := Compute(seriesFromCloses(t, closes))
	if frame.LatestMACD() <= 0 {
		t.Errorf("expected positive MACD on rising series, got %v", frame.LatestMACD())
	}
}

func TestCompute_AlignedLengths(t *testing.T) {
	frame := Compute(seriesFromCloses(t, []float64{100, 101, 102}))
	n := frame.Series.Len()
	for name, s := range map[string][]float64{
		"RSI": frame.RSI, "MACD": frame.MACD, "SignalLine": frame.SignalLine,
		"MACDHistogram": frame.MACDHistogram, "SMA10": frame.SMA10, "SMA50": frame.SMA50,
	} {
		if len(s) != n {
			t.Errorf("%s: length %d, want %d", name, len(s), n)
		}
	}
}
