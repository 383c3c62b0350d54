package engine

import (
	"context"
	"testing"

	"StockPilot/internal/model"
	"StockPilot/internal/notify"
	"StockPilot/internal/provider"
	"StockPilot/internal/recorder"
	"StockPilot/internal/session"
)

func newTestEngine(p provider.Provider, store *session.Store) *Engine {
	return New(context.Background(), p, store, notify.NewLogNotifier(), recorder.NewNoopRecorder())
}

func TestCheck_AutoBuyFiresAtOrBelowTarget(t *testing.T) {
	p := &provider.MockProvider{Quotes: map[string]float64{"TCS.NS": 95}}
	store := session.NewStore(10000)
	store.ArmAutoTrade(model.AutoTradeRule{Ticker: "TCS.NS", Side: model.TradeBuy, Target: 100})

	newTestEngine(p, store).Check()

	h, ok := store.Holding("TCS.NS")
	if !ok || h.Quantity != 10 {
		t.Fatalf("expected 10 shares bought, got %+v (ok=%v)", h, ok)
	}
	if got := store.Balance(); got != 10000-10*95 {
		t.Errorf("balance: want %v, got %v", 10000-10*95, got)
	}
	if rules := store.AutoTrades(); len(rules) != 0 {
		t.Errorf("fired rule must be disarmed, got %+v", rules)
	}
	trades := store.TradeHistory()
	if len(trades) != 1 || !trades[0].Auto {
		t.Errorf("expected one auto trade, got %+v", trades)
	}
}

func TestCheck_AutoBuyHoldsAboveTarget(t *testing.T) {
	p := &provider.MockProvider{Quotes: map[string]float64{"TCS.NS": 105}}
	store := session.NewStore(10000)
	store.ArmAutoTrade(model.AutoTradeRule{Ticker: "TCS.NS", Side: model.TradeBuy, Target: 100})

	newTestEngine(p, store).Check()

	if _, ok := store.Holding("TCS.NS"); ok {
		t.Error("no trade expected while quote is above target")
	}
	if rules := store.AutoTrades(); len(rules) != 1 {
		t.Errorf("unfired rule must stay armed, got %+v", rules)
	}
}

func TestCheck_AutoBuyInsufficientFundsKeepsRuleArmed(t *testing.T) {
	p := &provider.MockProvider{Quotes: map[string]float64{"TCS.NS": 95}}
	store := session.NewStore(100) // cannot afford 10 shares
	store.ArmAutoTrade(model.AutoTradeRule{Ticker: "TCS.NS", Side: model.TradeBuy, Target: 100})

	newTestEngine(p, store).Check()

	if rules := store.AutoTrades(); len(rules) != 1 {
		t.Errorf("unaffordable rule must stay armed, got %+v", rules)
	}
	if len(store.TradeHistory()) != 0 {
		t.Error("no trade expected")
	}
}

func TestCheck_AutoSellLiquidatesWholePosition(t *testing.T) {
	p := &provider.MockProvider{Quotes: map[string]float64{"INFY.NS": 210}}
	store := session.NewStore(10000)
	if err := store.Buy("INFY.NS", 7, 150, false); err != nil {
		t.Fatalf("seed buy: %v", err)
	}
	store.ArmAutoTrade(model.AutoTradeRule{Ticker: "INFY.NS", Side: model.TradeSell, Target: 200})

	newTestEngine(p, store).Check()

	if _, ok := store.Holding("INFY.NS"); ok {
		t.Error("auto-sell must liquidate the whole position")
	}
	want := 10000 - 7*150.0 + 7*210.0
	if got := store.Balance(); got != want {
		t.Errorf("balance: want %v, got %v", want, got)
	}
	if rules := store.AutoTrades(); len(rules) != 0 {
		t.Errorf("fired rule must be disarmed, got %+v", rules)
	}
}

func TestCheck_AutoSellWithoutPositionDisarms(t *testing.T) {
	p := &provider.MockProvider{Quotes: map[string]float64{"INFY.NS": 210}}
	store := session.NewStore(10000)
	store.ArmAutoTrade(model.AutoTradeRule{Ticker: "INFY.NS", Side: model.TradeSell, Target: 200})

	newTestEngine(p, store).Check()

	if rules := store.AutoTrades(); len(rules) != 0 {
		t.Errorf("positionless sell rule must be disarmed, got %+v", rules)
	}
}

func TestCheck_QuoteFailureSkipsTickerOnly(t *testing.T) {
	p := &provider.MockProvider{
		Quotes: map[string]float64{"BBB.NS": 40},
		Fail:   map[string]bool{"AAA.NS": true},
	}
	store := session.NewStore(10000)
	store.ArmAutoTrade(model.AutoTradeRule{Ticker: "AAA.NS", Side: model.TradeBuy, Target: 100})
	store.ArmAutoTrade(model.AutoTradeRule{Ticker: "BBB.NS", Side: model.TradeBuy, Target: 50})

	newTestEngine(p, store).Check()

	if _, ok := store.Holding("BBB.NS"); !ok {
		t.Error("healthy ticker must still trade when another ticker's quote fails")
	}
	rules := store.AutoTrades()
	if len(rules) != 1 || rules[0].Ticker != "AAA.NS" {
		t.Errorf("failed ticker's rule must stay armed, got %+v", rules)
	}
}

func TestCheck_PriceAlertFiresAndClearsBound(t *testing.T) {
	p := &provider.MockProvider{Quotes: map[string]float64{"SBIN.NS": 710}}
	store := session.NewStore(0)
	store.SetAlert(model.PriceAlert{Ticker: "SBIN.NS", Upper: 700, Lower: 500})

	newTestEngine(p, store).Check()

	alerts := store.PriceAlerts()
	if len(alerts) != 1 {
		t.Fatalf("expected lower bound to remain armed, got %+v", alerts)
	}
	if alerts[0].Upper != 0 || alerts[0].Lower != 500 {
		t.Errorf("fired upper bound must be cleared: %+v", alerts[0])
	}
}

func TestCheck_PriceAlertBothBoundsFireInOneSweep(t *testing.T) {
	// A degenerate alert where the quote satisfies both bounds at once;
	// the whole alert should be gone afterwards.
	p := &provider.MockProvider{Quotes: map[string]float64{"SBIN.NS": 600}}
	store := session.NewStore(0)
	store.SetAlert(model.PriceAlert{Ticker: "SBIN.NS", Upper: 550, Lower: 650})

	newTestEngine(p, store).Check()

	if alerts := store.PriceAlerts(); len(alerts) != 0 {
		t.Errorf("expected alert fully cleared, got %+v", alerts)
	}
}

func TestRegister_RejectsBadSpec(t *testing.T) {
	e := newTestEngine(&provider.MockProvider{}, session.NewStore(0))
	if err := e.Register("not a cron spec"); err == nil {
		t.Error("expected error for invalid cron spec")
	}
	if err := e.Register("@every 30s"); err != nil {
		t.Errorf("descriptor spec should register: %v", err)
	}
}
