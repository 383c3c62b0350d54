package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"StockPilot/internal/model"
)

// YahooFetcher implements Provider using Yahoo Finance public endpoints.
type YahooFetcher struct {
	Client *http.Client
}

// NewYahooFetcher creates a Yahoo Finance fetcher with optional proxy
// support.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []any `json:"open"`
					High   []any `json:"high"`
					Low    []any `json:"low"`
					Close  []any `json:"close"`
					Volume []any `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
			Events struct {
				Dividends map[string]struct {
					Amount float64 `json:"amount"`
					Date   int64   `json:"date"`
				} `json:"dividends"`
				Splits map[string]struct {
					Date        int64  `json:"date"`
					SplitRatio  string `json:"splitRatio"`
					Numerator   int    `json:"numerator"`
					Denominator int    `json:"denominator"`
				} `json:"splits"`
			} `json:"events"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v any) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (f *YahooFetcher) getJSON(endpoint string, dest any) error {
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("yahoo: %w", ErrDataUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("yahoo decode: %w", err)
	}
	return nil
}

func (f *YahooFetcher) fetchChart(ticker, rng string, withEvents bool) (*yahooChart, error) {
	endpoint := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=%s",
		url.PathEscape(ticker), rng)
	if withEvents {
		endpoint += "&events=div%2Csplit"
	}
	var chart yahooChart
	if err := f.getJSON(endpoint, &chart); err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error %s (%s): %w",
			chart.Chart.Error.Code, chart.Chart.Error.Description, ErrDataUnavailable)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: empty result for %s: %w", ticker, ErrDataUnavailable)
	}
	return &chart, nil
}

func chartBars(chart *yahooChart) []model.OHLCV {
	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if c == 0 {
			continue // null bars on holidays
		}
		bars = append(bars, model.OHLCV{
			Date:   time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars
}

// FetchHistory returns daily bars for the given lookback period.
func (f *YahooFetcher) FetchHistory(ticker, period string) (model.PriceSeries, error) {
	chart, err := f.fetchChart(ticker, period, false)
	if err != nil {
		return model.PriceSeries{}, err
	}
	bars := chartBars(chart)
	if len(bars) == 0 {
		return model.PriceSeries{}, fmt.Errorf("yahoo: no bars for %s: %w", ticker, ErrDataUnavailable)
	}
	series, err := model.NewPriceSeries(ticker, bars)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo: malformed bars for %s: %w: %w", ticker, err, ErrDataUnavailable)
	}
	return series, nil
}

// FetchQuote returns the latest close from a 1-day chart.
func (f *YahooFetcher) FetchQuote(ticker string) (float64, error) {
	chart, err := f.fetchChart(ticker, "1d", false)
	if err != nil {
		return 0, err
	}
	bars := chartBars(chart)
	if len(bars) == 0 {
		return 0, fmt.Errorf("yahoo: no quote for %s: %w", ticker, ErrDataUnavailable)
	}
	return bars[len(bars)-1].Close, nil
}

// yahooRaw is Yahoo's {raw, fmt} value wrapper.
type yahooRaw struct {
	Raw float64 `json:"raw"`
}

type yahooQuoteSummary struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				LongName     string   `json:"longName"`
				ShortName    string   `json:"shortName"`
				Currency     string   `json:"currency"`
				ExchangeName string   `json:"exchangeName"`
				MarketCap    yahooRaw `json:"marketCap"`
			} `json:"price"`
			SummaryDetail struct {
				TrailingPE       yahooRaw `json:"trailingPE"`
				FiftyTwoWeekHigh yahooRaw `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow  yahooRaw `json:"fiftyTwoWeekLow"`
				AverageVolume    yahooRaw `json:"averageVolume"`
			} `json:"summaryDetail"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// FetchCompanyInfo returns company metadata from the quoteSummary API.
func (f *YahooFetcher) FetchCompanyInfo(ticker string) (model.CompanyInfo, error) {
	endpoint := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s?modules=price%%2CsummaryDetail",
		url.PathEscape(ticker))
	var summary yahooQuoteSummary
	if err := f.getJSON(endpoint, &summary); err != nil {
		return model.CompanyInfo{}, err
	}
	if summary.QuoteSummary.Error != nil || len(summary.QuoteSummary.Result) == 0 {
		return model.CompanyInfo{}, fmt.Errorf("yahoo: no company info for %s: %w", ticker, ErrDataUnavailable)
	}
	r := summary.QuoteSummary.Result[0]
	name := r.Price.LongName
	if name == "" {
		name = r.Price.ShortName
	}
	if name == "" {
		return model.CompanyInfo{}, fmt.Errorf("yahoo: incomplete company info for %s: %w", ticker, ErrDataUnavailable)
	}
	return model.CompanyInfo{
		Ticker:        ticker,
		Name:          name,
		Exchange:      r.Price.ExchangeName,
		Currency:      r.Price.Currency,
		MarketCap:     r.Price.MarketCap.Raw,
		TrailingPE:    r.SummaryDetail.TrailingPE.Raw,
		FiftyTwoWeekH: r.SummaryDetail.FiftyTwoWeekHigh.Raw,
		FiftyTwoWeekL: r.SummaryDetail.FiftyTwoWeekLow.Raw,
		AvgVolume:     r.SummaryDetail.AverageVolume.Raw,
	}, nil
}

type yahooSearch struct {
	News []struct {
		Title     string `json:"title"`
		Link      string `json:"link"`
		Publisher string `json:"publisher"`
	} `json:"news"`
}

// FetchNews returns up to limit headlines from the search API.
func (f *YahooFetcher) FetchNews(ticker string, limit int) ([]model.NewsItem, error) {
	endpoint := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v1/finance/search?q=%s&newsCount=%d&quotesCount=0",
		url.QueryEscape(ticker), limit)
	var search yahooSearch
	if err := f.getJSON(endpoint, &search); err != nil {
		return nil, err
	}
	items := make([]model.NewsItem, 0, limit)
	for _, n := range search.News {
		if len(items) == limit {
			break
		}
		items = append(items, model.NewsItem{Title: n.Title, Link: n.Link, Publisher: n.Publisher})
	}
	return items, nil
}

// FetchCorporateActions returns dividends and splits over the past year.
func (f *YahooFetcher) FetchCorporateActions(ticker string) (model.CorporateActions, error) {
	chart, err := f.fetchChart(ticker, "1y", true)
	if err != nil {
		return model.CorporateActions{}, err
	}
	events := chart.Chart.Result[0].Events

	var actions model.CorporateActions
	for _, d := range events.Dividends {
		actions.Dividends = append(actions.Dividends, model.Dividend{
			Date:   time.Unix(d.Date, 0).UTC(),
			Amount: d.Amount,
		})
	}
	for _, s := range events.Splits {
		ratio := s.SplitRatio
		if ratio == "" && s.Denominator != 0 {
			ratio = fmt.Sprintf("%d:%d", s.Numerator, s.Denominator)
		}
		actions.Splits = append(actions.Splits, model.Split{
			Date:  time.Unix(s.Date, 0).UTC(),
			Ratio: ratio,
		})
	}
	sort.Slice(actions.Dividends, func(i, j int) bool {
		return actions.Dividends[i].Date.Before(actions.Dividends[j].Date)
	})
	sort.Slice(actions.Splits, func(i, j int) bool {
		return actions.Splits[i].Date.Before(actions.Splits[j].Date)
	})
	return actions, nil
}
