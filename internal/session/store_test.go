package session

import (
	"errors"
	"math"
	"testing"

	"StockPilot/internal/model"
)

func TestBuy_DebitsWalletAndAveragesCost(t *testing.T) {
	s := NewStore(10000)

	if err := s.Buy("TCS.NS", 10, 100, false); err != nil {
		t.Fatalf("first buy: %v", err)
	}
	if err := s.Buy("TCS.NS", 10, 200, false); err != nil {
		t.Fatalf("second buy: %v", err)
	}

	if got := s.Balance(); math.Abs(got-7000) > 1e-9 {
		t.Errorf("balance after buys: want 7000, got %v", got)
	}
	h, ok := s.Holding("TCS.NS")
	if !ok {
		t.Fatal("expected holding after buys")
	}
	if h.Quantity != 20 {
		t.Errorf("quantity: want 20, got %d", h.Quantity)
	}
	if math.Abs(h.AvgPrice-150) > 1e-9 {
		t.Errorf("average price: want 150, got %v", h.AvgPrice)
	}
}

func TestBuy_InsufficientFunds(t *testing.T) {
	s := NewStore(100)
	err := s.Buy("INFY.NS", 10, 50, false)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if got := s.Balance(); got != 100 {
		t.Errorf("failed buy must not touch the wallet, balance %v", got)
	}
	if len(s.TradeHistory()) != 0 {
		t.Error("failed buy must not be recorded")
	}
}

func TestSell_CreditsWalletAndClosesPosition(t *testing.T) {
	s := NewStore(10000)
	if err := s.Buy("WIPRO.NS", 5, 400, false); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if err := s.Sell("WIPRO.NS", 5, 500, false); err != nil {
		t.Fatalf("sell: %v", err)
	}

	if got := s.Balance(); math.Abs(got-10500) > 1e-9 {
		t.Errorf("balance after round trip: want 10500, got %v", got)
	}
	if _, ok := s.Holding("WIPRO.NS"); ok {
		t.Error("fully sold position must be removed")
	}
}

func TestSell_InsufficientHoldings(t *testing.T) {
	s := NewStore(10000)
	if err := s.Buy("SBIN.NS", 2, 100, false); err != nil {
		t.Fatalf("buy: %v", err)
	}
	err := s.Sell("SBIN.NS", 5, 100, false)
	if !errors.Is(err, ErrInsufficientHoldings) {
		t.Fatalf("expected ErrInsufficientHoldings, got %v", err)
	}
	if err := s.Sell("UNKNOWN.NS", 1, 100, false); !errors.Is(err, ErrInsufficientHoldings) {
		t.Fatalf("selling an unheld ticker: expected ErrInsufficientHoldings, got %v", err)
	}
}

func TestHistories_RecordTradesAndWalletEvents(t *testing.T) {
	s := NewStore(10000)
	if err := s.Buy("ITC.NS", 1, 100, false); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if err := s.Sell("ITC.NS", 1, 110, true); err != nil {
		t.Fatalf("sell: %v", err)
	}

	trades := s.TradeHistory()
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}
	if trades[0].Side != model.TradeBuy || trades[0].Auto {
		t.Errorf("first trade: want manual BUY, got %+v", trades[0])
	}
	if trades[1].Side != model.TradeSell || !trades[1].Auto {
		t.Errorf("second trade: want auto SELL, got %+v", trades[1])
	}

	events := s.WalletHistory()
	if len(events) != 3 { // opening balance + two trades
		t.Fatalf("expected 3 wallet events, got %d", len(events))
	}
	if events[0].Description != "Opening balance" {
		t.Errorf("first event: %+v", events[0])
	}
	if events[1].Amount >= 0 {
		t.Errorf("buy event must have negative amount, got %v", events[1].Amount)
	}
	if last := events[2]; math.Abs(last.Balance-s.Balance()) > 1e-9 {
		t.Errorf("last event balance %v != wallet balance %v", last.Balance, s.Balance())
	}
}

func TestWatchlist_DedupAndRemove(t *testing.T) {
	s := NewStore(0)
	s.Watch("RELIANCE.NS")
	s.Watch("TCS.NS")
	s.Watch("RELIANCE.NS")

	if got := s.Watchlist(); len(got) != 2 || got[0] != "RELIANCE.NS" || got[1] != "TCS.NS" {
		t.Errorf("unexpected watchlist: %v", got)
	}
	s.Unwatch("RELIANCE.NS")
	if got := s.Watchlist(); len(got) != 1 || got[0] != "TCS.NS" {
		t.Errorf("unexpected watchlist after remove: %v", got)
	}
}

func TestAutoTrades_ArmReplaceDisarm(t *testing.T) {
	s := NewStore(0)
	s.ArmAutoTrade(model.AutoTradeRule{Ticker: "TCS.NS", Side: model.TradeBuy, Target: 100})
	s.ArmAutoTrade(model.AutoTradeRule{Ticker: "TCS.NS", Side: model.TradeSell, Target: 200})
	s.ArmAutoTrade(model.AutoTradeRule{Ticker: "INFY.NS", Side: model.TradeBuy, Target: 50})

	rules := s.AutoTrades()
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules (one per ticker), got %d", len(rules))
	}
	if rules[0].Ticker != "INFY.NS" || rules[1].Ticker != "TCS.NS" {
		t.Errorf("rules must be sorted by ticker: %+v", rules)
	}
	if rules[1].Side != model.TradeSell || rules[1].Target != 200 {
		t.Errorf("re-arming must replace the rule: %+v", rules[1])
	}

	s.DisarmAutoTrade("TCS.NS")
	if rules := s.AutoTrades(); len(rules) != 1 || rules[0].Ticker != "INFY.NS" {
		t.Errorf("unexpected rules after disarm: %+v", rules)
	}
}

func TestPriceAlerts_ClearBounds(t *testing.T) {
	s := NewStore(0)
	s.SetAlert(model.PriceAlert{Ticker: "SBIN.NS", Upper: 700, Lower: 500})

	s.ClearAlertBound("SBIN.NS", true)
	alerts := s.PriceAlerts()
	if len(alerts) != 1 || alerts[0].Upper != 0 || alerts[0].Lower != 500 {
		t.Fatalf("unexpected alerts after clearing upper: %+v", alerts)
	}

	s.ClearAlertBound("SBIN.NS", false)
	if alerts := s.PriceAlerts(); len(alerts) != 0 {
		t.Errorf("alert with no bounds must be removed, got %+v", alerts)
	}
}
