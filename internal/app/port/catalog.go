package port

import (
	"context"

	"wallet_balances/internal/domain/entity"
)

// TokenListSource fetches the full token list for a network from its
// configured location.
type TokenListSource interface {
	FetchTokenList(ctx context.Context, url string) ([]entity.Token, error)
}

// CatalogProvider resolves the token catalog and the tracked-address set for
// a configured network.
type CatalogProvider interface {
	// ResolveCatalog returns the full list of known tokens for the network.
	// Fails with entity.ErrUnknownNetwork for an unconfigured network and
	// entity.ErrCatalogUnavailable when the catalog source cannot be reached.
	ResolveCatalog(ctx context.Context, network string) ([]entity.Token, error)

	// TrackedAddresses returns the set of token addresses in scope for
	// balance reporting on the network, keyed by lowercased address.
	TrackedAddresses(network string) (map[string]struct{}, bool)
}
