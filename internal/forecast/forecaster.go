// Package forecast fits a kernel regression on calendar features
// extracted from a price history and projects closing prices for the
// following calendar days. The output is a heuristic demo signal, not a
// statement about future prices.
package forecast

import (
	"log"
	"math/rand"
	"time"

	"StockPilot/internal/model"
)

// DefaultDays is the projection horizon when the caller passes no
// explicit override.
const DefaultDays = 10

// DefaultSeed fixes the hyperparameter sampler so repeated calls on
// identical input produce identical forecasts.
const DefaultSeed = 42

// Options tune the forecaster. Zero values select the defaults.
type Options struct {
	MinHistory       int   // shortest accepted series, default model.MinModelHistory
	Seed             int64 // sampler seed, default DefaultSeed
	SearchIterations int   // sampled combinations, default 10
	CVFolds          int   // cross-validation folds, default 3
	Workers          int   // parallel candidate evaluations, default 4
}

// Forecaster projects closing prices. It carries only configuration and
// is safe for concurrent use; every call fits a fresh model.
type Forecaster struct {
	opts Options
}

// New creates a Forecaster, applying defaults for zero option fields.
func New(opts Options) *Forecaster {
	if opts.MinHistory == 0 {
		opts.MinHistory = model.MinModelHistory
	}
	if opts.Seed == 0 {
		opts.Seed = DefaultSeed
	}
	if opts.SearchIterations == 0 {
		opts.SearchIterations = 10
	}
	if opts.CVFolds == 0 {
		opts.CVFolds = 3
	}
	if opts.Workers == 0 {
		opts.Workers = 4
	}
	return &Forecaster{opts: opts}
}

// Forecast projects closing prices for the next days calendar days
// after the last observed date. It returns an empty forecast when the
// history is shorter than the configured minimum, when days is not
// positive, or when fitting fails for any reason; callers treat an
// empty forecast as "no signal available".
func (f *Forecaster) Forecast(series model.PriceSeries, days int) (fc model.Forecast) {
	if days <= 0 || series.Len() < f.opts.MinHistory {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WARN] forecast fit failed for %s: %v", series.Ticker, r)
			fc = nil
		}
	}()

	dates := make([]time.Time, series.Len())
	for i, b := range series.Bars {
		dates[i] = b.Date
	}
	raw := featuresFor(dates)
	sc := fitScaler(raw)
	x := sc.transform(raw)
	y := series.Closes()

	rng := rand.New(rand.NewSource(f.opts.Seed))
	candidates := sampleParams(rng, f.opts.SearchIterations)
	best := searchBest(x, y, candidates, f.opts.CVFolds, f.opts.Workers)

	m := newSVR(best.C, best.Gamma, best.Epsilon)
	m.fit(x, y)

	last := series.LastDate()
	fc = make(model.Forecast, 0, days)
	for i := 1; i <= days; i++ {
		date := last.AddDate(0, 0, i)
		scaled := sc.transform([][]float64{featureFor(date)})
		fc = append(fc, model.ForecastPoint{
			Date:           date,
			PredictedClose: m.predict(scaled[0]),
		})
	}
	return fc
}
