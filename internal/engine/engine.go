// Package engine polls live quotes on a cron schedule and fires the
// session's armed auto-trade rules and price alerts. Rules and alert
// bounds are one-shot: once fired they are disarmed so a hovering
// price does not retrigger.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"StockPilot/internal/model"
	"StockPilot/internal/notify"
	"StockPilot/internal/provider"
	"StockPilot/internal/recorder"
	"StockPilot/internal/session"
)

// autoTradeQuantity is the fixed lot bought when a BUY rule fires.
const autoTradeQuantity = 10

// Engine drives the background quote checks.
type Engine struct {
	cron     *cron.Cron
	provider provider.Provider
	store    *session.Store
	notifier notify.Notifier
	recorder recorder.Recorder
	ctx      context.Context
}

// New creates an Engine over the given collaborators.
func New(ctx context.Context, p provider.Provider, store *session.Store, n notify.Notifier, rec recorder.Recorder) *Engine {
	return &Engine{
		cron:     cron.New(),
		provider: p,
		store:    store,
		notifier: n,
		recorder: rec,
		ctx:      ctx,
	}
}

// Register schedules the periodic check. spec uses the cron package's
// syntax, including descriptors like "@every 30s".
func (e *Engine) Register(spec string) error {
	if _, err := e.cron.AddFunc(spec, e.Check); err != nil {
		return fmt.Errorf("register quote check: %w", err)
	}
	return nil
}

// Start starts the cron loop.
func (e *Engine) Start() {
	e.cron.Start()
	log.Println("[INFO] engine started")
}

// Stop stops the cron loop gracefully.
func (e *Engine) Stop() {
	e.cron.Stop()
	log.Println("[INFO] engine stopped")
}

// Check runs one sweep over all armed rules and alerts. A quote
// failure for one ticker is logged and never blocks the rest of the
// sweep.
func (e *Engine) Check() {
	for _, rule := range e.store.AutoTrades() {
		quote, err := e.provider.FetchQuote(rule.Ticker)
		if err != nil {
			log.Printf("[WARN] engine: quote %s failed, skipping rule: %v", rule.Ticker, err)
			continue
		}
		e.checkRule(rule, quote)
	}

	for _, alert := range e.store.PriceAlerts() {
		quote, err := e.provider.FetchQuote(alert.Ticker)
		if err != nil {
			log.Printf("[WARN] engine: quote %s failed, skipping alert: %v", alert.Ticker, err)
			continue
		}
		e.checkAlert(alert, quote)
	}
}

func (e *Engine) checkRule(rule model.AutoTradeRule, quote float64) {
	switch rule.Side {
	case model.TradeBuy:
		if quote > rule.Target {
			return
		}
		err := e.store.Buy(rule.Ticker, autoTradeQuantity, quote, true)
		if errors.Is(err, session.ErrInsufficientFunds) {
			// Keep the rule armed; the wallet may refill via a sale.
			log.Printf("[WARN] engine: auto-buy %s skipped: %v", rule.Ticker, err)
			return
		}
		if err != nil {
			log.Printf("[ERROR] engine: auto-buy %s: %v", rule.Ticker, err)
			e.store.DisarmAutoTrade(rule.Ticker)
			return
		}
	case model.TradeSell:
		if quote < rule.Target {
			return
		}
		holding, ok := e.store.Holding(rule.Ticker)
		if !ok {
			log.Printf("[WARN] engine: auto-sell %s has no position, disarming", rule.Ticker)
			e.store.DisarmAutoTrade(rule.Ticker)
			return
		}
		if err := e.store.Sell(rule.Ticker, holding.Quantity, quote, true); err != nil {
			log.Printf("[ERROR] engine: auto-sell %s: %v", rule.Ticker, err)
			e.store.DisarmAutoTrade(rule.Ticker)
			return
		}
	default:
		log.Printf("[WARN] engine: unknown rule side %q for %s, disarming", rule.Side, rule.Ticker)
		e.store.DisarmAutoTrade(rule.Ticker)
		return
	}

	e.store.DisarmAutoTrade(rule.Ticker)

	trades := e.store.TradeHistory()
	executed := trades[len(trades)-1]
	balance := e.store.Balance()
	e.trySend(notify.FormatAutoTrade(executed, balance))
	if err := e.recorder.RecordTrade(&recorder.TradeEvent{Trade: executed, BalanceAfter: balance}); err != nil {
		log.Printf("[ERROR] engine: record trade: %v", err)
	}
}

func (e *Engine) checkAlert(alert model.PriceAlert, quote float64) {
	if alert.Upper > 0 && quote >= alert.Upper {
		e.fireAlert(alert.Ticker, quote, alert.Upper, true)
	}
	if alert.Lower > 0 && quote <= alert.Lower {
		e.fireAlert(alert.Ticker, quote, alert.Lower, false)
	}
}

func (e *Engine) fireAlert(ticker string, price, bound float64, upper bool) {
	e.store.ClearAlertBound(ticker, upper)
	e.trySend(notify.FormatPriceAlert(ticker, price, bound, upper))
	if err := e.recorder.RecordAlert(&recorder.AlertEvent{
		Ticker: ticker, Price: price, Bound: bound, Upper: upper,
	}); err != nil {
		log.Printf("[ERROR] engine: record alert: %v", err)
	}
}

func (e *Engine) trySend(text string) {
	if err := e.notifier.Notify(e.ctx, text); err != nil {
		log.Printf("[ERROR] engine: send notification: %v", err)
	}
}
