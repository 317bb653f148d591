// Package market implements the data client behind the MCP tools and
// the CLI: it resolves short Tokyo Stock Exchange codes to Yahoo
// symbols, shapes the returned tabular data into stable records, and
// contains every upstream failure.
//
// All four operations degrade to absence (a nil result, or an empty
// slice for search) instead of propagating errors: transport failures,
// malformed responses, and empty tables are logged at warn level and
// reported to callers as "no result".
package market

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/seenimoa/tsemcp/internal/yahoo"
)

// Source names for result records.
const (
	sourceTag   = "yfinance"
	sourceTagFx = "yfinance_fx"
)

// tseSuffix is Yahoo's suffix for Tokyo Stock Exchange listings.
const tseSuffix = ".T"

// searchLimit caps ticker search results.
const searchLimit = 10

// Source is the upstream surface the client consumes. *yahoo.Client
// satisfies it; tests substitute fakes.
type Source interface {
	History(ctx context.Context, symbol string, q yahoo.HistoryQuery) ([]yahoo.Candle, error)
	QuoteSummary(ctx context.Context, symbol string) (*yahoo.Info, error)
	Search(ctx context.Context, query string, limit int) ([]yahoo.SearchQuote, error)
}

// Client is the market data client. It holds no mutable state beyond
// the injected source and logger, so concurrent calls do not interfere.
type Client struct {
	src Source
	log *zap.Logger
}

// New creates a market data client over the given source.
func New(src Source, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{src: src, log: log}
}

// ResolveSymbol converts a short exchange code to Yahoo's TSE symbol by
// unconditional concatenation. Callers must pass bare codes: a code
// that already carries the suffix is double-suffixed and will fail
// upstream. No trimming, case folding, or numeric parsing happens, so
// leading zeros survive. This is a documented contract, not an
// oversight.
func ResolveSymbol(code string) string {
	return code + tseSuffix
}

// DateRange bounds an optional fetch window. A nil bound is open-ended.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

func (r DateRange) isZero() bool {
	return r.Start == nil && r.End == nil
}
