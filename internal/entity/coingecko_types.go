package entity

// CoingeckoToken is one entry of the provider's full coin catalog as returned
// by /coins/list. Names here are matched against on-chain token names; the
// two identifier spaces are maintained independently.
type CoingeckoToken struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// CoingeckoPrices is the /simple/price response shape: provider id -> map of
// vs-currency to unit price.
type CoingeckoPrices map[string]map[string]float64

// UsdPrice extracts the USD unit price for a provider id, if present.
func (p CoingeckoPrices) UsdPrice(id string) (float64, bool) {
	quote, ok := p[id]
	if !ok {
		return 0, false
	}
	usd, ok := quote["usd"]
	return usd, ok
}
