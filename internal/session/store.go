// Package session holds the virtual-trading state for one dashboard
// session: wallet, portfolio, histories, watchlist, armed auto-trades
// and price alerts. The analysis packages never touch this store; the
// API layer and the background engine are its only callers. State is
// memory-only and does not survive a restart.
package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"StockPilot/internal/model"
)

var (
	ErrInsufficientFunds    = errors.New("insufficient wallet balance")
	ErrInsufficientHoldings = errors.New("insufficient holdings")
)

// Store is the explicit session state container, safe for concurrent
// use. All getters return copies.
type Store struct {
	mu sync.Mutex

	balance       float64
	portfolio     map[string]model.Holding
	tradeHistory  []model.TradeRecord
	walletHistory []model.WalletEvent
	watchlist     []string
	autoTrades    map[string]model.AutoTradeRule
	priceAlerts   map[string]model.PriceAlert
}

// NewStore creates a session store with the given opening balance.
func NewStore(initialBalance float64) *Store {
	s := &Store{
		balance:     initialBalance,
		portfolio:   make(map[string]model.Holding),
		autoTrades:  make(map[string]model.AutoTradeRule),
		priceAlerts: make(map[string]model.PriceAlert),
	}
	s.walletHistory = append(s.walletHistory, model.WalletEvent{
		Time:        time.Now(),
		Description: "Opening balance",
		Amount:      initialBalance,
		Balance:     initialBalance,
	})
	return s
}

// Balance returns the current wallet balance.
func (s *Store) Balance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

// Buy purchases quantity shares at price, updating the average cost of
// any existing position.
func (s *Store) Buy(ticker string, quantity int, price float64, auto bool) error {
	if quantity <= 0 || price <= 0 {
		return fmt.Errorf("buy %s: quantity and price must be positive", ticker)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	total := float64(quantity) * price
	if total > s.balance {
		return fmt.Errorf("buy %s: need %.2f, have %.2f: %w", ticker, total, s.balance, ErrInsufficientFunds)
	}
	s.balance -= total

	h := s.portfolio[ticker]
	newQty := h.Quantity + quantity
	h.AvgPrice = (h.AvgPrice*float64(h.Quantity) + total) / float64(newQty)
	h.Quantity = newQty
	s.portfolio[ticker] = h

	s.appendTrade(ticker, model.TradeBuy, auto, quantity, price, total)
	s.appendWalletEvent(tradeDescription(model.TradeBuy, auto, ticker), -total)
	return nil
}

// Sell disposes quantity shares at price.
func (s *Store) Sell(ticker string, quantity int, price float64, auto bool) error {
	if quantity <= 0 || price <= 0 {
		return fmt.Errorf("sell %s: quantity and price must be positive", ticker)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.portfolio[ticker]
	if !ok || h.Quantity < quantity {
		return fmt.Errorf("sell %s: have %d, want %d: %w", ticker, h.Quantity, quantity, ErrInsufficientHoldings)
	}

	total := float64(quantity) * price
	s.balance += total
	h.Quantity -= quantity
	if h.Quantity == 0 {
		delete(s.portfolio, ticker)
	} else {
		s.portfolio[ticker] = h
	}

	s.appendTrade(ticker, model.TradeSell, auto, quantity, price, total)
	s.appendWalletEvent(tradeDescription(model.TradeSell, auto, ticker), total)
	return nil
}

// Portfolio returns a copy of current holdings keyed by ticker.
func (s *Store) Portfolio() map[string]model.Holding {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]model.Holding, len(s.portfolio))
	for k, v := range s.portfolio {
		out[k] = v
	}
	return out
}

// Holding returns one position and whether it exists.
func (s *Store) Holding(ticker string) (model.Holding, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.portfolio[ticker]
	return h, ok
}

// TradeHistory returns executed trades, oldest first.
func (s *Store) TradeHistory() []model.TradeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.TradeRecord(nil), s.tradeHistory...)
}

// WalletHistory returns wallet events, oldest first.
func (s *Store) WalletHistory() []model.WalletEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.WalletEvent(nil), s.walletHistory...)
}

// Watch adds a ticker to the watchlist; duplicates are ignored.
func (s *Store) Watch(ticker string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.watchlist {
		if t == ticker {
			return
		}
	}
	s.watchlist = append(s.watchlist, ticker)
}

// Unwatch removes a ticker from the watchlist.
func (s *Store) Unwatch(ticker string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.watchlist {
		if t == ticker {
			s.watchlist = append(s.watchlist[:i], s.watchlist[i+1:]...)
			return
		}
	}
}

// Watchlist returns the watched tickers in insertion order.
func (s *Store) Watchlist() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.watchlist...)
}

// ArmAutoTrade arms (or replaces) the one-shot trade rule for a ticker.
func (s *Store) ArmAutoTrade(rule model.AutoTradeRule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoTrades[rule.Ticker] = rule
}

// DisarmAutoTrade removes the rule for a ticker.
func (s *Store) DisarmAutoTrade(ticker string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.autoTrades, ticker)
}

// AutoTrades returns armed rules sorted by ticker for deterministic
// sweep order.
func (s *Store) AutoTrades() []model.AutoTradeRule {
	s.mu.Lock()
	defer s.mu.Unlock()
	rules := make([]model.AutoTradeRule, 0, len(s.autoTrades))
	for _, r := range s.autoTrades {
		rules = append(rules, r)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Ticker < rules[j].Ticker })
	return rules
}

// SetAlert arms (or replaces) the price alert for a ticker.
func (s *Store) SetAlert(alert model.PriceAlert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.priceAlerts[alert.Ticker] = alert
}

// ClearAlertBound clears one side of a ticker's alert; the alert is
// removed entirely once both bounds are gone.
func (s *Store) ClearAlertBound(ticker string, upper bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.priceAlerts[ticker]
	if !ok {
		return
	}
	if upper {
		a.Upper = 0
	} else {
		a.Lower = 0
	}
	if a.Upper == 0 && a.Lower == 0 {
		delete(s.priceAlerts, ticker)
		return
	}
	s.priceAlerts[ticker] = a
}

// PriceAlerts returns armed alerts sorted by ticker.
func (s *Store) PriceAlerts() []model.PriceAlert {
	s.mu.Lock()
	defer s.mu.Unlock()
	alerts := make([]model.PriceAlert, 0, len(s.priceAlerts))
	for _, a := range s.priceAlerts {
		alerts = append(alerts, a)
	}
	sort.Slice(alerts, func(i, j int) bool { return alerts[i].Ticker < alerts[j].Ticker })
	return alerts
}

func (s *Store) appendTrade(ticker string, side model.TradeSide, auto bool, qty int, price, total float64) {
	s.tradeHistory = append(s.tradeHistory, model.TradeRecord{
		Time:     time.Now(),
		Ticker:   ticker,
		Side:     side,
		Auto:     auto,
		Quantity: qty,
		Price:    price,
		Total:    total,
	})
}

func (s *Store) appendWalletEvent(description string, amount float64) {
	s.walletHistory = append(s.walletHistory, model.WalletEvent{
		Time:        time.Now(),
		Description: description,
		Amount:      amount,
		Balance:     s.balance,
	})
}

func tradeDescription(side model.TradeSide, auto bool, ticker string) string {
	prefix := string(side)
	if auto {
		prefix = "AUTO-" + prefix
	}
	return prefix + " " + ticker
}
