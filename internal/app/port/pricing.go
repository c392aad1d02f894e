package port

import (
	"context"

	"wallet_balances/internal/entity"
)

// PriceSource defines the external price-provider capability.
type PriceSource interface {
	// ListAllTokens returns the provider's full coin catalog.
	ListAllTokens(ctx context.Context) ([]entity.CoingeckoToken, error)

	// GetUsdPrices fetches current USD unit prices for the given provider
	// ids in one batched request. The result maps provider id to price.
	GetUsdPrices(ctx context.Context, ids []string) (map[string]float64, error)
}

// PriceResolver resolves token display names to USD unit prices via the
// provider's catalog.
type PriceResolver interface {
	// ResolvePrices returns a name -> USD unit price mapping for the names
	// that match a provider catalog entry. Names with no match are absent
	// from the result, not errors.
	ResolvePrices(ctx context.Context, names []string) (map[string]float64, error)
}
