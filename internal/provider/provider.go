// Package provider fetches market data from an upstream source. All
// not-found and incomplete-record conditions surface as
// ErrDataUnavailable so callers can branch on the failure kind with
// errors.Is instead of string matching.
package provider

import (
	"errors"

	"StockPilot/internal/model"
)

// ErrDataUnavailable indicates the upstream has no usable data for the
// requested ticker.
var ErrDataUnavailable = errors.New("market data unavailable")

// Provider defines the market-data contract the analysis code consumes.
type Provider interface {
	// FetchHistory returns daily bars for a lookback period such as
	// "1mo", "6mo", "1y" or "2y", ascending by date.
	FetchHistory(ticker, period string) (model.PriceSeries, error)
	// FetchQuote returns the latest closing price.
	FetchQuote(ticker string) (float64, error)
	FetchCompanyInfo(ticker string) (model.CompanyInfo, error)
	FetchNews(ticker string, limit int) ([]model.NewsItem, error)
	FetchCorporateActions(ticker string) (model.CorporateActions, error)
	Name() string
}
