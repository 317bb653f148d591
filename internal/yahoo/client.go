// Package yahoo is the upstream access layer for Yahoo Finance's public
// JSON APIs: the v8 chart endpoint for OHLCV history, the v10
// quoteSummary endpoint for company fundamentals, and the v1 search
// endpoint for ticker lookup. No API key is required.
//
// Callers pass fully-qualified Yahoo symbols (e.g. "7203.T",
// "USDJPY=X"); symbol resolution happens one layer up.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/seenimoa/tsemcp/internal/infra"
)

// DefaultBaseURL is Yahoo's public query host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

const summaryModules = "assetProfile,summaryDetail,defaultKeyStatistics"

// Candle is one OHLCV observation from the chart endpoint.
type Candle struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Info holds the fundamentals subset of a quoteSummary response.
// Numeric fields are nil when the source lacks them.
type Info struct {
	TrailingPE    *float64
	ForwardPE     *float64
	PriceToBook   *float64
	MarketCap     *float64
	Sector        string
	TrailingEPS   *float64
	DividendYield *float64 // raw upstream value, percent-vs-fraction unresolved
}

// SearchQuote is one raw match from the search endpoint.
type SearchQuote struct {
	Symbol    string
	ShortName string
	LongName  string
	Exchange  string
	QuoteType string
}

// HistoryQuery selects the window and granularity of a chart request.
// When Start or End is set, an explicit period1/period2 range is
// requested (a missing bound is open-ended); otherwise Period (a Yahoo
// range token such as "1y" or "5d") is used. Interval is passed through
// to the API uninterpreted.
type HistoryQuery struct {
	Start    *time.Time
	End      *time.Time
	Period   string
	Interval string
}

// Client talks to Yahoo Finance. The zero value is not usable; call
// NewClient.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *infra.RateLimiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API host, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRateLimit sets the request budget per window.
func WithRateLimit(requests int, window time.Duration) Option {
	return func(c *Client) { c.limiter = infra.NewRateLimiter(requests, window) }
}

// NewClient creates a Yahoo Finance client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    infra.DefaultHTTPClient(30 * time.Second),
		limiter: infra.NewRateLimiter(5, time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// History fetches OHLCV candles for a symbol. Returns ErrNoData when
// the endpoint answers with an empty table.
func (c *Client) History(ctx context.Context, symbol string, q HistoryQuery) ([]Candle, error) {
	interval := q.Interval
	if interval == "" {
		interval = "1d"
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(interval), rangeParams(q))

	var resp chartResponse
	if err := c.fetchJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	if resp.Chart.Error != nil {
		return nil, &APIError{Code: resp.Chart.Error.Code, Description: resp.Chart.Error.Description}
	}
	if len(resp.Chart.Result) == 0 {
		return nil, ErrNoData
	}

	candles := parseCandles(resp.Chart.Result[0])
	if len(candles) == 0 {
		return nil, ErrNoData
	}
	return candles, nil
}

// QuoteSummary fetches the fundamentals modules for a symbol.
func (c *Client) QuoteSummary(ctx context.Context, symbol string) (*Info, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		c.baseURL, url.PathEscape(symbol), summaryModules)

	var resp quoteSummaryResponse
	if err := c.fetchJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	if resp.QuoteSummary.Error != nil {
		return nil, &APIError{Code: resp.QuoteSummary.Error.Code, Description: resp.QuoteSummary.Error.Description}
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, ErrNoData
	}
	return buildInfo(resp.QuoteSummary.Result[0]), nil
}

// Search looks up tickers matching a free-text query, capped at limit.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]SearchQuote, error) {
	u := fmt.Sprintf("%s/v1/finance/search?q=%s&quotesCount=%d&newsCount=0",
		c.baseURL, url.QueryEscape(query), limit)

	var resp searchResponse
	if err := c.fetchJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	quotes := make([]SearchQuote, 0, len(resp.Quotes))
	for _, q := range resp.Quotes {
		quotes = append(quotes, SearchQuote{
			Symbol:    q.Symbol,
			ShortName: q.ShortName,
			LongName:  q.LongName,
			Exchange:  q.Exchange,
			QuoteType: q.QuoteType,
		})
	}
	return quotes, nil
}

// Ping verifies connectivity with a minimal chart request.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.History(ctx, "USDJPY=X", HistoryQuery{Period: "1d"})
	return err
}

// fetchJSON performs a rate-limited GET and decodes the body into dest.
func (c *Client) fetchJSON(ctx context.Context, u string, dest any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &RequestError{URL: u, Err: err}
	}

	body, _, err := infra.DoGet(ctx, c.http, u, map[string]string{"Accept": "application/json"})
	if err != nil {
		return &RequestError{URL: u, Err: err}
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return &RequestError{URL: u, Err: err}
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return &DecodeError{URL: u, Err: err}
	}
	return nil
}

// rangeParams renders either an explicit period1/period2 window or a
// relative range token.
func rangeParams(q HistoryQuery) string {
	if q.Start != nil || q.End != nil {
		start := int64(0)
		if q.Start != nil {
			start = q.Start.Unix()
		}
		end := time.Now().Unix()
		if q.End != nil {
			end = q.End.Unix()
		}
		return fmt.Sprintf("period1=%d&period2=%d", start, end)
	}
	period := q.Period
	if period == "" {
		period = "1y"
	}
	return "range=" + url.QueryEscape(period)
}

// parseCandles converts columnar chart data to candles. Null cells are
// coerced to zero; rows keep the provider's chronological order.
func parseCandles(r chartResult) []Candle {
	if len(r.Indicators.Quote) == 0 {
		return nil
	}
	cols := r.Indicators.Quote[0]

	candles := make([]Candle, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		c := Candle{Date: time.Unix(ts, 0).UTC()}
		if i < len(cols.Open) && cols.Open[i] != nil {
			c.Open = *cols.Open[i]
		}
		if i < len(cols.High) && cols.High[i] != nil {
			c.High = *cols.High[i]
		}
		if i < len(cols.Low) && cols.Low[i] != nil {
			c.Low = *cols.Low[i]
		}
		if i < len(cols.Close) && cols.Close[i] != nil {
			c.Close = *cols.Close[i]
		}
		if i < len(cols.Volume) && cols.Volume[i] != nil {
			c.Volume = *cols.Volume[i]
		}
		candles = append(candles, c)
	}
	return candles
}

func buildInfo(r quoteSummaryResult) *Info {
	info := &Info{}
	if ap := r.AssetProfile; ap != nil {
		info.Sector = ap.Sector
	}
	if sd := r.SummaryDetail; sd != nil {
		info.TrailingPE = sd.TrailingPE.Raw
		info.ForwardPE = sd.ForwardPE.Raw
		info.MarketCap = sd.MarketCap.Raw
		info.DividendYield = sd.DividendYield.Raw
	}
	if ks := r.DefaultKeyStatistics; ks != nil {
		info.PriceToBook = ks.PriceToBook.Raw
		info.TrailingEPS = ks.TrailingEps.Raw
		if info.ForwardPE == nil {
			info.ForwardPE = ks.ForwardPE.Raw
		}
	}
	return info
}
