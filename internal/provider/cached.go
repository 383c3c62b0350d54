package provider

import (
	"context"
	"fmt"
	"log"
	"time"

	"StockPilot/internal/cache"
	"StockPilot/internal/model"
)

// TTLs configures per-kind cache lifetimes for CachedProvider.
type TTLs struct {
	History time.Duration
	Quote   time.Duration
	Info    time.Duration
}

// CachedProvider wraps another Provider with cache-aside reads. Cache
// failures are logged and treated as misses; the upstream remains the
// source of truth.
type CachedProvider struct {
	next  Provider
	cache cache.Cache
	ttls  TTLs
}

// NewCachedProvider decorates next with the given cache.
func NewCachedProvider(next Provider, c cache.Cache, ttls TTLs) *CachedProvider {
	return &CachedProvider{next: next, cache: c, ttls: ttls}
}

func (p *CachedProvider) Name() string { return p.next.Name() + "+cache" }

func (p *CachedProvider) FetchHistory(ticker, period string) (model.PriceSeries, error) {
	key := fmt.Sprintf("history:%s:%s", ticker, period)
	var series model.PriceSeries
	if err := p.cache.Get(context.Background(), key, &series); err == nil && series.Len() > 0 {
		return series, nil
	}
	series, err := p.next.FetchHistory(ticker, period)
	if err != nil {
		return model.PriceSeries{}, err
	}
	p.store(key, series, p.ttls.History)
	return series, nil
}

func (p *CachedProvider) FetchQuote(ticker string) (float64, error) {
	key := "quote:" + ticker
	var price float64
	if err := p.cache.Get(context.Background(), key, &price); err == nil && price > 0 {
		return price, nil
	}
	price, err := p.next.FetchQuote(ticker)
	if err != nil {
		return 0, err
	}
	p.store(key, price, p.ttls.Quote)
	return price, nil
}

func (p *CachedProvider) FetchCompanyInfo(ticker string) (model.CompanyInfo, error) {
	key := "info:" + ticker
	var info model.CompanyInfo
	if err := p.cache.Get(context.Background(), key, &info); err == nil && info.Name != "" {
		return info, nil
	}
	info, err := p.next.FetchCompanyInfo(ticker)
	if err != nil {
		return model.CompanyInfo{}, err
	}
	p.store(key, info, p.ttls.Info)
	return info, nil
}

func (p *CachedProvider) FetchNews(ticker string, limit int) ([]model.NewsItem, error) {
	key := fmt.Sprintf("news:%s:%d", ticker, limit)
	var items []model.NewsItem
	if err := p.cache.Get(context.Background(), key, &items); err == nil && len(items) > 0 {
		return items, nil
	}
	items, err := p.next.FetchNews(ticker, limit)
	if err != nil {
		return nil, err
	}
	p.store(key, items, p.ttls.Info)
	return items, nil
}

func (p *CachedProvider) FetchCorporateActions(ticker string) (model.CorporateActions, error) {
	key := "actions:" + ticker
	var actions model.CorporateActions
	if err := p.cache.Get(context.Background(), key, &actions); err == nil &&
		(len(actions.Dividends) > 0 || len(actions.Splits) > 0) {
		return actions, nil
	}
	actions, err := p.next.FetchCorporateActions(ticker)
	if err != nil {
		return model.CorporateActions{}, err
	}
	p.store(key, actions, p.ttls.Info)
	return actions, nil
}

func (p *CachedProvider) store(key string, value any, ttl time.Duration) {
	if err := p.cache.Set(context.Background(), key, value, ttl); err != nil {
		log.Printf("[WARN] cache store %s: %v", key, err)
	}
}
