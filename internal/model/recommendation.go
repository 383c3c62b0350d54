package model

// Call is the trading action derived from trend and forecast momentum.
type Call string

const (
	CallBuy  Call = "Buy"
	CallSell Call = "Sell"
	CallHold Call = "Hold"
)

// Risk is the volatility tier of a recommendation.
type Risk string

const (
	RiskLow    Risk = "Low"
	RiskMedium Risk = "Medium"
	RiskHigh   Risk = "High"
)

// Recommendation is the immutable output of the recommendation engine.
type Recommendation struct {
	Call        Call    `json:"call"`
	Risk        Risk    `json:"risk"`
	TargetPrice float64 `json:"target_price"`
	Volatility  float64 `json:"volatility"` // stddev of daily % returns
}

// ScreenResult is one ticker's outcome from a screening run.
type ScreenResult struct {
	Ticker       string  `json:"ticker"`
	CompanyName  string  `json:"company_name"`
	CurrentPrice float64 `json:"current_price"`
	Call         Call    `json:"call"`
	TargetPrice  float64 `json:"target_price"`
	Risk         Risk    `json:"risk"`
}
