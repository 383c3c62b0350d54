package model

import "time"

// Holding is one position in the session portfolio.
type Holding struct {
	Quantity int     `json:"quantity"`
	AvgPrice float64 `json:"avg_price"`
}

// TradeSide distinguishes buys from sells.
type TradeSide string

const (
	TradeBuy  TradeSide = "BUY"
	TradeSell TradeSide = "SELL"
)

// TradeRecord is one executed (simulated) trade.
type TradeRecord struct {
	Time     time.Time `json:"time"`
	Ticker   string    `json:"ticker"`
	Side     TradeSide `json:"side"`
	Auto     bool      `json:"auto"` // executed by the background engine
	Quantity int       `json:"quantity"`
	Price    float64   `json:"price"`
	Total    float64   `json:"total"`
}

// WalletEvent is one wallet balance change.
type WalletEvent struct {
	Time        time.Time `json:"time"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"` // signed
	Balance     float64   `json:"balance"`
}

// AutoTradeRule arms a one-shot trade that the background engine fires
// when the live quote crosses the target.
type AutoTradeRule struct {
	Ticker string    `json:"ticker"`
	Side   TradeSide `json:"side"`
	Target float64   `json:"target"`
}

// PriceAlert fires a notification when the quote crosses a bound.
// A zero bound means that side is not armed.
type PriceAlert struct {
	Ticker string  `json:"ticker"`
	Upper  float64 `json:"upper"`
	Lower  float64 `json:"lower"`
}
