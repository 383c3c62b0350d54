package notify

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"StockPilot/internal/model"
)

// FormatAutoTrade formats an executed auto-trade for delivery.
func FormatAutoTrade(trade model.TradeRecord, balance float64) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🤖 <b>Auto-trade executed</b> | %s\n\n", trade.Time.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("%s %d × %s @ %.2f\n", trade.Side, trade.Quantity, trade.Ticker, trade.Price))
	b.WriteString(fmt.Sprintf("Total: %.2f\n", trade.Total))
	b.WriteString(fmt.Sprintf("Wallet balance: %.2f", balance))
	return b.String()
}

// FormatPriceAlert formats a fired price alert.
func FormatPriceAlert(ticker string, price, bound float64, upper bool) string {
	direction := "above"
	if !upper {
		direction = "below"
	}
	return fmt.Sprintf("🔔 <b>Price alert</b>\n\n%s is at %.2f, %s your %.2f bound", ticker, price, direction, bound)
}

// FormatScreenSummary formats a screening run into a short report.
func FormatScreenSummary(results []model.ScreenResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Screen</b> | %s\n\n", time.Now().Format("2006-01-02")))
	if len(results) == 0 {
		b.WriteString("No tickers analyzed.")
		return b.String()
	}
	for _, r := range results {
		b.WriteString(fmt.Sprintf("%s: %s (target %.2f, %s risk)\n", r.Ticker, r.Call, r.TargetPrice, r.Risk))
	}
	return b.String()
}

// FormatWallet formats the recent wallet activity for a command reply.
func FormatWallet(events []model.WalletEvent, balance float64) string {
	var b strings.Builder
	b.WriteString("💰 <b>Wallet</b>\n\n")
	// Show at most the last five events.
	start := 0
	if len(events) > 5 {
		start = len(events) - 5
	}
	for _, e := range events[start:] {
		b.WriteString(fmt.Sprintf("%s  %s  %+.2f\n", e.Time.Format("01-02 15:04"), e.Description, e.Amount))
	}
	b.WriteString(fmt.Sprintf("\nBalance: %.2f", balance))
	return b.String()
}

// FormatPortfolio formats session holdings and balance for a command
// reply.
func FormatPortfolio(holdings map[string]model.Holding, balance float64) string {
	var b strings.Builder
	b.WriteString("💼 <b>Portfolio</b>\n\n")
	if len(holdings) == 0 {
		b.WriteString("No open positions.\n")
	}
	tickers := make([]string, 0, len(holdings))
	for t := range holdings {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	for _, ticker := range tickers {
		h := holdings[ticker]
		b.WriteString(fmt.Sprintf("%s: %d @ avg %.2f\n", ticker, h.Quantity, h.AvgPrice))
	}
	b.WriteString(fmt.Sprintf("\nWallet balance: %.2f", balance))
	return b.String()
}
