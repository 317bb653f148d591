package mcpserver

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenimoa/tsemcp/internal/market"
	"github.com/seenimoa/tsemcp/internal/yahoo"
)

type fakeSource struct {
	historyFn func(symbol string, q yahoo.HistoryQuery) ([]yahoo.Candle, error)
	infoFn    func(symbol string) (*yahoo.Info, error)
	searchFn  func(query string, limit int) ([]yahoo.SearchQuote, error)
}

func (f *fakeSource) History(_ context.Context, symbol string, q yahoo.HistoryQuery) ([]yahoo.Candle, error) {
	if f.historyFn == nil {
		return nil, yahoo.ErrNoData
	}
	return f.historyFn(symbol, q)
}

func (f *fakeSource) QuoteSummary(_ context.Context, symbol string) (*yahoo.Info, error) {
	if f.infoFn == nil {
		return nil, yahoo.ErrNoData
	}
	return f.infoFn(symbol)
}

func (f *fakeSource) Search(_ context.Context, query string, limit int) ([]yahoo.SearchQuote, error) {
	if f.searchFn == nil {
		return nil, nil
	}
	return f.searchFn(query, limit)
}

func newTestServer(src *fakeSource) *Server {
	return New(market.New(src, nil), nil)
}

func callReq(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

// resultJSON decodes the single text content of a tool result.
func resultJSON(t *testing.T, res *mcp.CallToolResult, dest any) {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is not text")
	require.NoError(t, json.Unmarshal([]byte(text.Text), dest))
}

func someCandles(n int) []yahoo.Candle {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]yahoo.Candle, n)
	for i := range candles {
		candles[i] = yahoo.Candle{
			Date:   base.AddDate(0, 0, i),
			Open:   2000, High: 2100, Low: 1900, Close: 2050 + float64(i),
			Volume: 1_000_000,
		}
	}
	return candles
}

func TestStockPriceTool(t *testing.T) {
	src := &fakeSource{
		historyFn: func(symbol string, _ yahoo.HistoryQuery) ([]yahoo.Candle, error) {
			assert.Equal(t, "7203.T", symbol)
			return someCandles(3), nil
		},
	}
	res, err := newTestServer(src).handleStockPrice(context.Background(),
		callReq(map[string]any{"code": "7203"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var payload map[string]any
	resultJSON(t, res, &payload)
	assert.Equal(t, "yfinance", payload["source"])
	assert.Equal(t, "7203", payload["code"])
	assert.Equal(t, "7203.T", payload["ticker"])
	assert.Equal(t, 2052.0, payload["close"])
}

func TestStockPriceToolMissingCode(t *testing.T) {
	res, err := newTestServer(&fakeSource{}).handleStockPrice(context.Background(),
		callReq(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestStockPriceToolNoData(t *testing.T) {
	res, err := newTestServer(&fakeSource{}).handleStockPrice(context.Background(),
		callReq(map[string]any{"code": "9999"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var payload map[string]string
	resultJSON(t, res, &payload)
	assert.Equal(t, "No data found for code=9999 (ticker 9999.T)", payload["error"])
}

func TestStockHistoryTool(t *testing.T) {
	var gotQuery yahoo.HistoryQuery
	src := &fakeSource{
		historyFn: func(_ string, q yahoo.HistoryQuery) ([]yahoo.Candle, error) {
			gotQuery = q
			return someCandles(5), nil
		},
	}
	res, err := newTestServer(src).handleStockHistory(context.Background(),
		callReq(map[string]any{"code": "7203", "start_date": "2025-01-01", "interval": "1wk"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	require.NotNil(t, gotQuery.Start)
	assert.Equal(t, "2025-01-01", gotQuery.Start.Format("2006-01-02"))
	assert.Nil(t, gotQuery.End)
	assert.Equal(t, "1wk", gotQuery.Interval)

	var payload map[string]any
	resultJSON(t, res, &payload)
	assert.Equal(t, "yfinance", payload["source"])
	assert.Equal(t, "7203.T", payload["ticker"])
	assert.Equal(t, 5.0, payload["count"])
	assert.Len(t, payload["data"], 5)
}

func TestStockHistoryToolInvalidStart(t *testing.T) {
	res, err := newTestServer(&fakeSource{}).handleStockHistory(context.Background(),
		callReq(map[string]any{"code": "7203", "start_date": "01/01/2025"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestStockHistoryToolNoData(t *testing.T) {
	res, err := newTestServer(&fakeSource{}).handleStockHistory(context.Background(),
		callReq(map[string]any{"code": "9999", "start_date": "2025-01-01"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var payload map[string]string
	resultJSON(t, res, &payload)
	assert.Equal(t, "No history found for code=9999", payload["error"])
}

func TestFxRatesTool(t *testing.T) {
	var symbols []string
	src := &fakeSource{
		historyFn: func(symbol string, _ yahoo.HistoryQuery) ([]yahoo.Candle, error) {
			symbols = append(symbols, symbol)
			return someCandles(1), nil
		},
	}
	res, err := newTestServer(src).handleFxRates(context.Background(),
		callReq(map[string]any{"pairs": []any{"USDJPY"}}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	assert.Equal(t, []string{"USDJPY=X"}, symbols)

	var payload struct {
		Source string             `json:"source"`
		Rates  map[string]float64 `json:"rates"`
	}
	resultJSON(t, res, &payload)
	assert.Equal(t, "yfinance_fx", payload.Source)
	assert.Equal(t, map[string]float64{"USDJPY": 2050.0}, payload.Rates)
}

func TestFxRatesToolDefaultsToAllPairs(t *testing.T) {
	var symbols []string
	src := &fakeSource{
		historyFn: func(symbol string, _ yahoo.HistoryQuery) ([]yahoo.Candle, error) {
			symbols = append(symbols, symbol)
			return someCandles(1), nil
		},
	}
	res, err := newTestServer(src).handleFxRates(context.Background(),
		callReq(map[string]any{}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Len(t, symbols, len(market.FxPairNames()))
}

func TestFxRatesToolAllFail(t *testing.T) {
	src := &fakeSource{
		historyFn: func(string, yahoo.HistoryQuery) ([]yahoo.Candle, error) {
			return nil, yahoo.ErrNoData
		},
	}
	res, err := newTestServer(src).handleFxRates(context.Background(),
		callReq(map[string]any{}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var payload map[string]string
	resultJSON(t, res, &payload)
	assert.Equal(t, "Failed to fetch FX rates", payload["error"])
}

func TestSearchTickerTool(t *testing.T) {
	src := &fakeSource{
		searchFn: func(query string, limit int) ([]yahoo.SearchQuote, error) {
			assert.Equal(t, "Toyota", query)
			assert.Equal(t, 10, limit)
			return []yahoo.SearchQuote{
				{Symbol: "7203.T", ShortName: "Toyota Motor", Exchange: "JPX", QuoteType: "EQUITY"},
			}, nil
		},
	}
	res, err := newTestServer(src).handleSearchTicker(context.Background(),
		callReq(map[string]any{"query": "Toyota"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var payload []map[string]any
	resultJSON(t, res, &payload)
	require.Len(t, payload, 1)
	assert.Equal(t, "7203.T", payload[0]["symbol"])
	assert.Equal(t, "Toyota Motor", payload[0]["short_name"])
}

func TestSearchTickerToolNoMatches(t *testing.T) {
	res, err := newTestServer(&fakeSource{}).handleSearchTicker(context.Background(),
		callReq(map[string]any{"query": "zzzz"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var payload []map[string]string
	resultJSON(t, res, &payload)
	require.Len(t, payload, 1)
	assert.Equal(t, "No tickers found for query: zzzz", payload[0]["message"])
}
