package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/seenimoa/tsemcp/internal/market"
)

const dateLayout = "2006-01-02"

func (s *Server) handleStockPrice(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := req.RequireString("code")
	if err != nil {
		return errorResult("code parameter is required"), nil
	}

	bounds := market.DateRange{
		Start: parseDate(req.GetString("start_date", "")),
		End:   parseDate(req.GetString("end_date", "")),
	}

	result := s.client.StockPrice(ctx, code, bounds)
	if result == nil {
		return jsonResult(errPayload(fmt.Sprintf(
			"No data found for code=%s (ticker %s)", code, market.ResolveSymbol(code))))
	}
	return jsonResult(result)
}

func (s *Server) handleStockHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := req.RequireString("code")
	if err != nil {
		return errorResult("code parameter is required"), nil
	}
	startRaw, err := req.RequireString("start_date")
	if err != nil {
		return errorResult("start_date parameter is required"), nil
	}
	start, err := time.Parse(dateLayout, startRaw)
	if err != nil {
		return errorResult(fmt.Sprintf("invalid start_date %q, want YYYY-MM-DD", startRaw)), nil
	}

	end := parseDate(req.GetString("end_date", ""))
	interval := req.GetString("interval", "1d")

	result := s.client.History(ctx, code, start, end, interval)
	if result == nil {
		return jsonResult(errPayload(fmt.Sprintf("No history found for code=%s", code)))
	}
	return jsonResult(map[string]any{
		"source": result.Source,
		"ticker": result.Ticker,
		"start":  result.Start,
		"end":    result.End,
		"count":  len(result.Rows),
		"data":   result.Rows,
	})
}

func (s *Server) handleFxRates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pairs := req.GetStringSlice("pairs", nil)

	result := s.client.FxRates(ctx, pairs)
	if result == nil {
		return jsonResult(errPayload("Failed to fetch FX rates"))
	}
	return jsonResult(map[string]any{
		"source": result.Source,
		"rates":  result.Rates,
	})
}

func (s *Server) handleSearchTicker(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return errorResult("query parameter is required"), nil
	}

	results := s.client.Search(ctx, query)
	if len(results) == 0 {
		return jsonResult([]map[string]string{
			{"message": fmt.Sprintf("No tickers found for query: %s", query)},
		})
	}
	return jsonResult(results)
}

// parseDate returns nil for empty or unparseable input; an invalid
// optional bound simply leaves the window open-ended.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func errPayload(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// jsonResult marshals v into a text content result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResult("internal error encoding result"), nil
	}
	return textResult(string(data)), nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(text)},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(message)},
		IsError: true,
	}
}
