package market

import (
	"context"
	"time"

	"github.com/seenimoa/tsemcp/internal/yahoo"
	"github.com/seenimoa/tsemcp/pkg/models"
)

// History fetches OHLCV rows for a TSE-listed stock over the given
// window. The interval is forwarded to the provider uninterpreted;
// invalid values fail upstream and surface as absence. Start and End of
// the result are the first and last row dates actually returned, which
// may differ from the requested bounds if the provider clips the
// window. Returns nil on empty data or any upstream failure.
func (c *Client) History(ctx context.Context, code string, start time.Time, end *time.Time, interval string) *models.PriceHistory {
	ticker := ResolveSymbol(code)

	hist, err := c.src.History(ctx, ticker, yahoo.HistoryQuery{
		Start:    &start,
		End:      end,
		Interval: interval,
	})
	if err != nil || len(hist) == 0 {
		c.warnFetch("history", ticker, err)
		return nil
	}

	rows := make([]models.OHLCVRow, 0, len(hist))
	for _, cd := range hist {
		rows = append(rows, models.OHLCVRow{
			Date:   cd.Date.Format(dateLayout),
			Open:   cd.Open,
			High:   cd.High,
			Low:    cd.Low,
			Close:  cd.Close,
			Volume: cd.Volume,
		})
	}

	return &models.PriceHistory{
		Source: sourceTag,
		Ticker: ticker,
		Start:  rows[0].Date,
		End:    rows[len(rows)-1].Date,
		Rows:   rows,
	}
}
