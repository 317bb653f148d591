package market

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/seenimoa/tsemcp/internal/yahoo"
	"github.com/seenimoa/tsemcp/pkg/models"
)

const dateLayout = "2006-01-02"

// StockPrice fetches the latest price snapshot and fundamentals for a
// TSE-listed stock. When bounds are given, history covers that window;
// otherwise a trailing 1-year window is used. Returns nil when the
// upstream has no data or fails.
func (c *Client) StockPrice(ctx context.Context, code string, bounds DateRange) *models.StockPrice {
	ticker := ResolveSymbol(code)

	q := yahoo.HistoryQuery{Period: "1y"}
	if !bounds.isZero() {
		q = yahoo.HistoryQuery{Start: bounds.Start, End: bounds.End}
	}

	hist, err := c.src.History(ctx, ticker, q)
	if err != nil || len(hist) == 0 {
		c.warnFetch("price", ticker, err)
		return nil
	}

	latest := hist[len(hist)-1]
	snapshot := &models.StockPrice{
		Source:       sourceTag,
		Code:         code,
		Ticker:       ticker,
		Date:         latest.Date.Format(dateLayout),
		Close:        latest.Close,
		Open:         latest.Open,
		High:         latest.High,
		Low:          latest.Low,
		Volume:       latest.Volume,
		Week52High:   maxHigh(hist),
		Week52Low:    minLow(hist),
		AvgVolume30d: avgVolume(hist, 30),
		AvgVolume90d: avgVolume(hist, 90),
	}

	// Fundamentals are independently fault-tolerant: a failed or
	// malformed info lookup never prevents returning the snapshot.
	info, err := c.src.QuoteSummary(ctx, ticker)
	if err != nil {
		c.log.Warn("fundamentals lookup failed", zap.String("ticker", ticker), zap.Error(err))
		info = nil
	}
	applyFundamentals(snapshot, info)

	return snapshot
}

// applyFundamentals copies fundamentals that are present and non-null.
// Each field's presence is decided independently.
func applyFundamentals(s *models.StockPrice, info *yahoo.Info) {
	if info == nil {
		return
	}
	s.TrailingPE = info.TrailingPE
	s.ForwardPE = info.ForwardPE
	s.PriceToBook = info.PriceToBook
	s.MarketCap = info.MarketCap
	s.TrailingEPS = info.TrailingEPS
	if info.Sector != "" {
		sector := info.Sector
		s.Sector = &sector
	}
	s.DividendYield = normalizeDividendYield(info.DividendYield)
}

// normalizeDividendYield reconciles the upstream's inconsistent
// percent-vs-fraction convention: values >= 1.0 are treated as a
// percentage and divided by 100, values below 1.0 are kept as-is.
// Zero, negative, or missing values yield absence.
func normalizeDividendYield(raw *float64) *float64 {
	if raw == nil || *raw <= 0 {
		return nil
	}
	v := *raw
	if v >= 1.0 {
		v /= 100.0
	}
	return &v
}

// avgVolume is the mean volume of the trailing n rows, present only
// when the table has at least n rows. A mean of exactly zero is
// reported as absent, not as 0.
func avgVolume(hist []yahoo.Candle, n int) *int64 {
	if len(hist) < n {
		return nil
	}
	var sum int64
	for _, c := range hist[len(hist)-n:] {
		sum += c.Volume
	}
	mean := float64(sum) / float64(n)
	if mean == 0 {
		return nil
	}
	v := int64(mean)
	return &v
}

func maxHigh(hist []yahoo.Candle) float64 {
	m := hist[0].High
	for _, c := range hist[1:] {
		if c.High > m {
			m = c.High
		}
	}
	return m
}

func minLow(hist []yahoo.Candle) float64 {
	m := hist[0].Low
	for _, c := range hist[1:] {
		if c.Low < m {
			m = c.Low
		}
	}
	return m
}

// warnFetch logs a contained provider failure. Empty tables are the
// normal no-data outcome and logged without an error; everything else
// is a provider fault.
func (c *Client) warnFetch(op, ticker string, err error) {
	if err == nil || errors.Is(err, yahoo.ErrNoData) {
		c.log.Warn("empty upstream data", zap.String("op", op), zap.String("ticker", ticker))
		return
	}
	c.log.Warn("upstream fetch failed", zap.String("op", op), zap.String("ticker", ticker), zap.Error(err))
}
