package model

import "time"

// CompanyInfo holds point-in-time company metadata from the data provider.
type CompanyInfo struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name"`
	Exchange      string  `json:"exchange"`
	Currency      string  `json:"currency"`
	MarketCap     float64 `json:"market_cap"`
	TrailingPE    float64 `json:"trailing_pe"`
	FiftyTwoWeekH float64 `json:"fifty_two_week_high"`
	FiftyTwoWeekL float64 `json:"fifty_two_week_low"`
	AvgVolume     float64 `json:"avg_volume"`
}

// NewsItem is one headline for a ticker.
type NewsItem struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Publisher string `json:"publisher"`
}

// Dividend is a single cash dividend event.
type Dividend struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// Split is a single stock split event.
type Split struct {
	Date  time.Time `json:"date"`
	Ratio string    `json:"ratio"` // e.g. "2:1"
}

// CorporateActions bundles dividends and splits for a ticker.
type CorporateActions struct {
	Dividends []Dividend `json:"dividends"`
	Splits    []Split    `json:"splits"`
}
