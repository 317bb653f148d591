package market

import (
	"context"

	"go.uber.org/zap"

	"github.com/seenimoa/tsemcp/pkg/models"
)

// Search looks up tickers by company name or keyword, capped at 10
// matches. Missing source fields default to the empty string. On any
// upstream failure an empty slice is returned — indistinguishable from
// zero genuine matches, which callers must be aware of.
func (c *Client) Search(ctx context.Context, query string) []models.SearchResult {
	quotes, err := c.src.Search(ctx, query, searchLimit)
	if err != nil {
		c.log.Warn("ticker search failed", zap.String("query", query), zap.Error(err))
		return []models.SearchResult{}
	}

	results := make([]models.SearchResult, 0, len(quotes))
	for _, q := range quotes {
		results = append(results, models.SearchResult{
			Symbol:    q.Symbol,
			ShortName: q.ShortName,
			LongName:  q.LongName,
			Exchange:  q.Exchange,
			Type:      q.QuoteType,
		})
	}
	return results
}
