// Package screener runs the forecast and recommendation pipeline across
// a universe of tickers and collects per-ticker results. One bad ticker
// never fails a run: fetch and fit failures are logged and the ticker
// is omitted from the output.
package screener

import (
	"log"
	"sync"

	"StockPilot/internal/advisor"
	"StockPilot/internal/forecast"
	"StockPilot/internal/indicator"
	"StockPilot/internal/model"
	"StockPilot/internal/provider"
)

// Screener fans ticker analyses out over a bounded worker pool.
type Screener struct {
	provider   provider.Provider
	forecaster *forecast.Forecaster
	days       int
	workers    int
}

// New creates a Screener. days is the forecast horizon used for each
// ticker; workers bounds concurrent analyses (minimum 1).
func New(p provider.Provider, f *forecast.Forecaster, days, workers int) *Screener {
	if days <= 0 {
		days = forecast.DefaultDays
	}
	if workers < 1 {
		workers = 1
	}
	return &Screener{provider: p, forecaster: f, days: days, workers: workers}
}

// Screen analyzes every ticker and returns the successful results in
// input order. Results are buffered per input slot and compacted after
// all workers finish, so completion order never leaks into the output.
func (s *Screener) Screen(tickers []string) []model.ScreenResult {
	slots := make([]*model.ScreenResult, len(tickers))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if res, ok := s.analyze(tickers[i]); ok {
					slots[i] = &res
				}
			}
		}()
	}
	for i := range tickers {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	results := make([]model.ScreenResult, 0, len(tickers))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results
}

func (s *Screener) analyze(ticker string) (model.ScreenResult, bool) {
	series, err := s.provider.FetchHistory(ticker, "1y")
	if err != nil {
		log.Printf("[WARN] screen %s: history fetch failed, skipping: %v", ticker, err)
		return model.ScreenResult{}, false
	}

	frame := indicator.Compute(series)
	fc := s.forecaster.Forecast(series, s.days)
	rec := advisor.Recommend(frame, fc)

	name := ticker
	if info, err := s.provider.FetchCompanyInfo(ticker); err == nil && info.Name != "" {
		name = info.Name
	}

	return model.ScreenResult{
		Ticker:       ticker,
		CompanyName:  name,
		CurrentPrice: series.LastClose(),
		Call:         rec.Call,
		TargetPrice:  rec.TargetPrice,
		Risk:         rec.Risk,
	}, true
}

// BuyRated filters a screening run down to the Buy calls, preserving
// order.
func BuyRated(results []model.ScreenResult) []model.ScreenResult {
	buys := make([]model.ScreenResult, 0, len(results))
	for _, r := range results {
		if r.Call == model.CallBuy {
			buys = append(buys, r)
		}
	}
	return buys
}
