package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"StockPilot/internal/forecast"
	"StockPilot/internal/model"
	"StockPilot/internal/provider"
	"StockPilot/internal/recorder"
	"StockPilot/internal/screener"
	"StockPilot/internal/session"
	"StockPilot/internal/simulator"
)

func newTestRouter(p provider.Provider, store *session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	f := forecast.New(forecast.Options{})
	srv := NewServer(Options{
		Provider:   p,
		Forecaster: f,
		Simulator:  simulator.New(p, f),
		Screener:   screener.New(p, f, 10, 2),
		Store:      store,
		Recorder:   recorder.NewNoopRecorder(),
		Universe:   []string{"AAA", "BBB"},
	})
	return srv.Router([]string{"http://localhost:5173"})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var payload map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode %s %s response: %v\nbody: %s", method, path, err, w.Body.String())
		}
	}
	return w, payload
}

func TestGetAnalysis_UnknownTickerIs404(t *testing.T) {
	p := &provider.MockProvider{Fail: map[string]bool{"NOPE": true}}
	r := newTestRouter(p, session.NewStore(10000))

	w, payload := doJSON(t, r, http.MethodGet, "/api/stocks/NOPE/analysis", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d: %s", w.Code, w.Body.String())
	}
	if payload["error"] == "" {
		t.Error("expected a user-facing error message")
	}
}

func TestGetAnalysis_ReturnsFullPayload(t *testing.T) {
	p := &provider.MockProvider{
		Series: map[string]model.PriceSeries{
			"AAA": provider.GenerateSeries("AAA", 100, 252, 0.001),
		},
	}
	r := newTestRouter(p, session.NewStore(10000))

	w, payload := doJSON(t, r, http.MethodGet, "/api/stocks/AAA/analysis", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}
	for _, key := range []string{"ticker", "company", "history", "indicators", "forecast", "recommendation"} {
		if _, ok := payload[key]; !ok {
			t.Errorf("analysis payload missing %q", key)
		}
	}
}

func TestGetQuote(t *testing.T) {
	p := &provider.MockProvider{Quotes: map[string]float64{"AAA": 123.45}}
	r := newTestRouter(p, session.NewStore(0))

	w, payload := doJSON(t, r, http.MethodGet, "/api/stocks/AAA/quote", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if payload["price"].(float64) != 123.45 {
		t.Errorf("unexpected price: %v", payload["price"])
	}
}

func TestPostTrade_BuyAndWallet(t *testing.T) {
	p := &provider.MockProvider{Quotes: map[string]float64{"AAA": 50}}
	store := session.NewStore(10000)
	r := newTestRouter(p, store)

	w, payload := doJSON(t, r, http.MethodPost, "/api/trades",
		`{"ticker":"AAA","side":"BUY","quantity":20}`)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}
	if payload["balance"].(float64) != 9000 {
		t.Errorf("balance: want 9000, got %v", payload["balance"])
	}
	if h, ok := store.Holding("AAA"); !ok || h.Quantity != 20 {
		t.Errorf("holding after trade: %+v ok=%v", h, ok)
	}

	w, payload = doJSON(t, r, http.MethodGet, "/api/wallet", "")
	if w.Code != http.StatusOK {
		t.Fatalf("wallet: want 200, got %d", w.Code)
	}
	if payload["balance"].(float64) != 9000 {
		t.Errorf("wallet balance: want 9000, got %v", payload["balance"])
	}
}

func TestPostTrade_InsufficientFundsIs422(t *testing.T) {
	p := &provider.MockProvider{Quotes: map[string]float64{"AAA": 50}}
	r := newTestRouter(p, session.NewStore(10))

	w, _ := doJSON(t, r, http.MethodPost, "/api/trades",
		`{"ticker":"AAA","side":"BUY","quantity":20}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("want 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetPortfolio_RejectsNegativeDay(t *testing.T) {
	r := newTestRouter(&provider.MockProvider{BasePrice: 100}, session.NewStore(1000))
	w, _ := doJSON(t, r, http.MethodGet, "/api/portfolio?day=-1", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
}

func TestGetPortfolio_ValuesAtLiveQuote(t *testing.T) {
	p := &provider.MockProvider{Quotes: map[string]float64{"AAA": 60}}
	store := session.NewStore(10000)
	if err := store.Buy("AAA", 10, 50, false); err != nil {
		t.Fatalf("seed buy: %v", err)
	}
	r := newTestRouter(p, store)

	w, payload := doJSON(t, r, http.MethodGet, "/api/portfolio", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}
	if payload["value"].(float64) != 600 {
		t.Errorf("portfolio value: want 600, got %v", payload["value"])
	}
}

func TestWatchlist_RoundTrip(t *testing.T) {
	r := newTestRouter(&provider.MockProvider{}, session.NewStore(0))

	w, _ := doJSON(t, r, http.MethodPost, "/api/watchlist", `{"ticker":"AAA"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("add: want 200, got %d", w.Code)
	}
	w, payload := doJSON(t, r, http.MethodGet, "/api/watchlist", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list: want 200, got %d", w.Code)
	}
	list := payload["watchlist"].([]any)
	if len(list) != 1 || list[0].(string) != "AAA" {
		t.Errorf("unexpected watchlist: %v", list)
	}

	w, payload = doJSON(t, r, http.MethodDelete, "/api/watchlist/AAA", "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: want 200, got %d", w.Code)
	}
	if list := payload["watchlist"].([]any); len(list) != 0 {
		t.Errorf("watchlist after delete: %v", list)
	}
}

func TestPostAutoTrade_Validation(t *testing.T) {
	r := newTestRouter(&provider.MockProvider{}, session.NewStore(0))

	w, _ := doJSON(t, r, http.MethodPost, "/api/autotrades",
		`{"ticker":"AAA","side":"SHORT","target":100}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad side: want 400, got %d", w.Code)
	}
	w, _ = doJSON(t, r, http.MethodPost, "/api/autotrades",
		`{"ticker":"AAA","side":"BUY","target":100}`)
	if w.Code != http.StatusOK {
		t.Errorf("valid rule: want 200, got %d", w.Code)
	}
}

func TestPostAlert_RequiresABound(t *testing.T) {
	r := newTestRouter(&provider.MockProvider{}, session.NewStore(0))

	w, _ := doJSON(t, r, http.MethodPost, "/api/alerts", `{"ticker":"AAA"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("boundless alert: want 400, got %d", w.Code)
	}
	w, _ = doJSON(t, r, http.MethodPost, "/api/alerts", `{"ticker":"AAA","upper":700}`)
	if w.Code != http.StatusOK {
		t.Errorf("valid alert: want 200, got %d", w.Code)
	}
}

func TestPostScreen_DefaultsToUniverse(t *testing.T) {
	p := &provider.MockProvider{BasePrice: 100}
	r := newTestRouter(p, session.NewStore(0))

	w, payload := doJSON(t, r, http.MethodPost, "/api/screen", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}
	if payload["requested"].(float64) != 2 {
		t.Errorf("expected configured universe of 2 tickers, got %v", payload["requested"])
	}
	results := payload["results"].([]any)
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}
