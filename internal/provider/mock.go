package provider

import (
	"fmt"
	"time"

	"StockPilot/internal/model"
)

// MockProvider returns controllable fixed data for development and
// testing. Tickers listed in Fail always return ErrDataUnavailable.
type MockProvider struct {
	Series map[string]model.PriceSeries
	Quotes map[string]float64
	Infos  map[string]model.CompanyInfo
	News   map[string][]model.NewsItem
	Fail   map[string]bool

	BasePrice float64 // used to synthesize data for unlisted tickers
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) failed(ticker string) bool {
	return m.Fail != nil && m.Fail[ticker]
}

func (m *MockProvider) FetchHistory(ticker, _ string) (model.PriceSeries, error) {
	if m.failed(ticker) {
		return model.PriceSeries{}, fmt.Errorf("mock: %s: %w", ticker, ErrDataUnavailable)
	}
	if s, ok := m.Series[ticker]; ok {
		return s, nil
	}
	if m.BasePrice > 0 {
		return GenerateSeries(ticker, m.BasePrice, 252, 0.001), nil
	}
	return model.PriceSeries{}, fmt.Errorf("mock: %s: %w", ticker, ErrDataUnavailable)
}

func (m *MockProvider) FetchQuote(ticker string) (float64, error) {
	if m.failed(ticker) {
		return 0, fmt.Errorf("mock: %s: %w", ticker, ErrDataUnavailable)
	}
	if q, ok := m.Quotes[ticker]; ok {
		return q, nil
	}
	if s, ok := m.Series[ticker]; ok {
		return s.LastClose(), nil
	}
	if m.BasePrice > 0 {
		return m.BasePrice, nil
	}
	return 0, fmt.Errorf("mock: %s: %w", ticker, ErrDataUnavailable)
}

func (m *MockProvider) FetchCompanyInfo(ticker string) (model.CompanyInfo, error) {
	if m.failed(ticker) {
		return model.CompanyInfo{}, fmt.Errorf("mock: %s: %w", ticker, ErrDataUnavailable)
	}
	if info, ok := m.Infos[ticker]; ok {
		return info, nil
	}
	return model.CompanyInfo{Ticker: ticker, Name: ticker + " Ltd", Currency: "INR"}, nil
}

func (m *MockProvider) FetchNews(ticker string, limit int) ([]model.NewsItem, error) {
	if m.failed(ticker) {
		return nil, fmt.Errorf("mock: %s: %w", ticker, ErrDataUnavailable)
	}
	items := m.News[ticker]
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (m *MockProvider) FetchCorporateActions(ticker string) (model.CorporateActions, error) {
	if m.failed(ticker) {
		return model.CorporateActions{}, fmt.Errorf("mock: %s: %w", ticker, ErrDataUnavailable)
	}
	return model.CorporateActions{}, nil
}

// GenerateSeries synthesizes a deterministic daily series of count bars
// ending yesterday, drifting by drift per bar around basePrice.
func GenerateSeries(ticker string, basePrice float64, count int, drift float64) model.PriceSeries {
	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -count)
	bars := make([]model.OHLCV, count)
	for i := range bars {
		p := basePrice * (1 + float64(i-count/2)*drift)
		bars[i] = model.OHLCV{
			Date:   start.AddDate(0, 0, i),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1_000_000,
		}
	}
	series, err := model.NewPriceSeries(ticker, bars)
	if err != nil {
		// count and drift combinations used in-repo keep closes positive
		panic(fmt.Sprintf("generate series: %v", err))
	}
	return series
}
