// Package models defines the result records produced by the market data
// client. Every record is an immutable value built fresh per call;
// optional fields are pointers and absent (nil) when the upstream source
// lacks them, never zero.
package models

// StockPrice is the latest price snapshot plus fundamentals for one stock.
type StockPrice struct {
	Source string `json:"source"` // provider tag, e.g. "yfinance"
	Code   string `json:"code"`   // caller-supplied exchange code, e.g. "7203"
	Ticker string `json:"ticker"` // resolved provider symbol, e.g. "7203.T"
	Date   string `json:"date"`   // observation date, YYYY-MM-DD

	Close  float64 `json:"close"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Volume int64   `json:"volume"`

	// Extremes over the fetched window (the window is whatever was
	// fetched, not strictly 52 weeks, when explicit dates are given).
	Week52High float64 `json:"week52_high"`
	Week52Low  float64 `json:"week52_low"`

	AvgVolume30d *int64 `json:"avg_volume_30d,omitempty"`
	AvgVolume90d *int64 `json:"avg_volume_90d,omitempty"`

	// Fundamentals. All absent when the info lookup fails.
	TrailingPE    *float64 `json:"trailing_pe,omitempty"`
	ForwardPE     *float64 `json:"forward_pe,omitempty"`
	PriceToBook   *float64 `json:"price_to_book,omitempty"`
	MarketCap     *float64 `json:"market_cap,omitempty"`
	Sector        *string  `json:"sector,omitempty"`
	TrailingEPS   *float64 `json:"trailing_eps,omitempty"`
	DividendYield *float64 `json:"dividend_yield,omitempty"` // decimal fraction, 0.025 = 2.5%
}

// OHLCVRow is one trading-period observation in a price history.
type OHLCVRow struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// PriceHistory is an ordered OHLCV series. Row order is the provider's
// chronological order; Start and End are the first/last row dates as
// actually returned, which may differ from the requested bounds.
type PriceHistory struct {
	Source string     `json:"source"`
	Ticker string     `json:"ticker"`
	Start  string     `json:"start"`
	End    string     `json:"end"`
	Rows   []OHLCVRow `json:"rows"`
}

// FxRates maps pair names to their latest rate. Only pairs that were
// successfully resolved are present; a failed pair is omitted.
type FxRates struct {
	Source string             `json:"source"`
	Rates  map[string]float64 `json:"rates"`
}

// SearchResult is one ticker search match. Fields missing upstream
// default to the empty string, never omitted.
type SearchResult struct {
	Symbol    string `json:"symbol"`
	ShortName string `json:"short_name"`
	LongName  string `json:"long_name"`
	Exchange  string `json:"exchange"`
	Type      string `json:"type"`
}
