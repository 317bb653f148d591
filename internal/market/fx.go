package market

import (
	"context"

	"go.uber.org/zap"

	"github.com/seenimoa/tsemcp/internal/yahoo"
	"github.com/seenimoa/tsemcp/pkg/models"
)

// fxPair binds a pair name to its Yahoo symbol.
type fxPair struct {
	Name   string
	Symbol string
}

// fxCatalog is the fixed set of supported JPY pairs, fetched in this
// order. Unknown pair names requested by callers are dropped silently.
var fxCatalog = []fxPair{
	{"USDJPY", "USDJPY=X"},
	{"EURJPY", "EURJPY=X"},
	{"GBPJPY", "GBPJPY=X"},
	{"CNYJPY", "CNYJPY=X"},
}

// FxPairNames lists the supported pair names in catalog order.
func FxPairNames() []string {
	names := make([]string, 0, len(fxCatalog))
	for _, p := range fxCatalog {
		names = append(names, p.Name)
	}
	return names
}

// FxRates fetches the latest close for the selected JPY pairs. A nil
// pairs slice selects the whole catalog; an explicit empty slice
// selects nothing and returns nil without contacting the provider.
// Each pair is fetched independently and sequentially: one pair's
// failure or empty result only omits that pair. Nil is returned when
// no pair resolves.
func (c *Client) FxRates(ctx context.Context, pairs []string) *models.FxRates {
	selected := selectPairs(pairs)

	rates := make(map[string]float64, len(selected))
	for _, p := range selected {
		hist, err := c.src.History(ctx, p.Symbol, yahoo.HistoryQuery{Period: "5d"})
		if err != nil || len(hist) == 0 {
			c.log.Warn("fx pair skipped", zap.String("pair", p.Name), zap.Error(err))
			continue
		}
		rates[p.Name] = hist[len(hist)-1].Close
	}

	if len(rates) == 0 {
		return nil
	}
	return &models.FxRates{Source: sourceTagFx, Rates: rates}
}

// selectPairs filters the catalog by the requested names, keeping
// catalog order. nil means all pairs.
func selectPairs(pairs []string) []fxPair {
	if pairs == nil {
		return fxCatalog
	}
	requested := make(map[string]bool, len(pairs))
	for _, name := range pairs {
		requested[name] = true
	}
	selected := make([]fxPair, 0, len(pairs))
	for _, p := range fxCatalog {
		if requested[p.Name] {
			selected = append(selected, p)
		}
	}
	return selected
}
