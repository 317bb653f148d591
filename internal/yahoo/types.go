package yahoo

import "encoding/json"

// --- Yahoo Finance API response envelopes ---

// chartResponse wraps the v8 chart API response.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta       chartMeta  `json:"meta"`
	Timestamp  []int64    `json:"timestamp"`
	Indicators indicators `json:"indicators"`
}

type chartMeta struct {
	Symbol         string `json:"symbol"`
	Currency       string `json:"currency"`
	InstrumentType string `json:"instrumentType"`
	ExchangeName   string `json:"exchangeName"`
}

type indicators struct {
	Quote []quoteColumns `json:"quote"`
}

// quoteColumns holds the columnar OHLCV arrays. Entries are nullable;
// Yahoo pads partial trading days with nulls.
type quoteColumns struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

// quoteSummaryResponse wraps the v10 quoteSummary API response.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *apiError            `json:"error"`
	} `json:"quoteSummary"`
}

type quoteSummaryResult struct {
	AssetProfile         *assetProfile  `json:"assetProfile"`
	SummaryDetail        *summaryDetail `json:"summaryDetail"`
	DefaultKeyStatistics *keyStatistics `json:"defaultKeyStatistics"`
}

type assetProfile struct {
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
}

type summaryDetail struct {
	TrailingPE    numVal `json:"trailingPE"`
	ForwardPE     numVal `json:"forwardPE"`
	MarketCap     numVal `json:"marketCap"`
	DividendYield numVal `json:"dividendYield"`
}

type keyStatistics struct {
	ForwardPE   numVal `json:"forwardPE"`
	PriceToBook numVal `json:"priceToBook"`
	TrailingEps numVal `json:"trailingEps"`
}

// numVal decodes Yahoo's {"raw": n, "fmt": "..."} envelopes as well as
// bare numbers. Missing, null, or non-numeric values leave Raw nil
// instead of failing the whole decode, so each field's presence is
// decided independently.
type numVal struct {
	Raw *float64
}

func (n *numVal) UnmarshalJSON(b []byte) error {
	var env struct {
		Raw *float64 `json:"raw"`
	}
	if err := json.Unmarshal(b, &env); err == nil && env.Raw != nil {
		n.Raw = env.Raw
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		n.Raw = &f
	}
	return nil
}

// searchResponse wraps the v1 search API response.
type searchResponse struct {
	Quotes []searchQuote `json:"quotes"`
}

type searchQuote struct {
	Symbol    string `json:"symbol"`
	ShortName string `json:"shortname"`
	LongName  string `json:"longname"`
	Exchange  string `json:"exchange"`
	QuoteType string `json:"quoteType"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
