// Package mcpserver exposes the market data client as four MCP tools:
// get_stock_price, get_stock_history, get_fx_rates, and search_ticker.
//
// Tool results are JSON text payloads. A client-side absence becomes a
// payload with a single "error" key (an empty ticker search a
// single-element list with a "message" key) rather than a protocol
// error, so conversational callers always receive structured output.
package mcpserver

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/seenimoa/tsemcp/internal/market"
)

// Version is the server version reported during MCP initialization.
const Version = "1.0.0"

// Server wires the market client into an MCP tool server.
type Server struct {
	mcp    *server.MCPServer
	client *market.Client
	log    *zap.Logger
}

// New creates the MCP server and registers all tools.
func New(client *market.Client, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		mcp:    server.NewMCPServer("tsemcp", Version, server.WithToolCapabilities(false)),
		client: client,
		log:    log,
	}
	s.registerTools()
	return s
}

// ServeStdio runs the server over stdin/stdout until the stream closes.
func (s *Server) ServeStdio() error {
	s.log.Info("serving MCP over stdio")
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("get_stock_price",
		mcp.WithDescription("Get the latest stock price and fundamentals for a TSE-listed stock."),
		mcp.WithString("code", mcp.Required(),
			mcp.Description("Tokyo Stock Exchange code, e.g. \"7203\" for Toyota.")),
		mcp.WithString("start_date",
			mcp.Description("Optional window start, YYYY-MM-DD.")),
		mcp.WithString("end_date",
			mcp.Description("Optional window end, YYYY-MM-DD.")),
	), s.handleStockPrice)

	s.mcp.AddTool(mcp.NewTool("get_stock_history",
		mcp.WithDescription("Get OHLCV price history for a TSE-listed stock."),
		mcp.WithString("code", mcp.Required(),
			mcp.Description("Tokyo Stock Exchange code, e.g. \"7203\".")),
		mcp.WithString("start_date", mcp.Required(),
			mcp.Description("Start date, YYYY-MM-DD.")),
		mcp.WithString("end_date",
			mcp.Description("End date, YYYY-MM-DD. Defaults to today.")),
		mcp.WithString("interval",
			mcp.Description("Data interval: \"1d\" (daily), \"1wk\" (weekly), \"1mo\" (monthly).")),
	), s.handleStockHistory)

	s.mcp.AddTool(mcp.NewTool("get_fx_rates",
		mcp.WithDescription(fmt.Sprintf(
			"Get JPY foreign exchange rates. Available pairs: %s. Defaults to all.",
			strings.Join(market.FxPairNames(), ", "))),
		mcp.WithArray("pairs",
			mcp.Description("Currency pair names to fetch."),
			mcp.Items(map[string]any{"type": "string"})),
	), s.handleFxRates)

	s.mcp.AddTool(mcp.NewTool("search_ticker",
		mcp.WithDescription("Search Yahoo Finance for a stock ticker by company name or keyword."),
		mcp.WithString("query", mcp.Required(),
			mcp.Description("Company name or keyword, e.g. \"Toyota\" or \"Nikkei ETF\".")),
	), s.handleSearchTicker)
}
