package entity

import "errors"

// Pipeline errors. The first two are client-input errors and map to a 4xx
// response; the rest are upstream-dependency errors and map to a 5xx
// response with a generic body.
var (
	// ErrUnknownNetwork indicates the requested network is not configured.
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrInvalidAddress indicates the wallet address failed the network's
	// address-format validation.
	ErrInvalidAddress = errors.New("invalid wallet address")

	// ErrCatalogUnavailable indicates the network's token catalog source
	// could not be retrieved.
	ErrCatalogUnavailable = errors.New("token catalog unavailable")

	// ErrBalanceFetchFailed indicates at least one on-chain balance read
	// failed. The whole fetch fails; no partial results are returned.
	ErrBalanceFetchFailed = errors.New("balance fetch failed")

	// ErrPriceProviderUnavailable indicates the price provider's catalog or
	// price endpoint could not be reached.
	ErrPriceProviderUnavailable = errors.New("price provider unavailable")
)

// IsClientError reports whether err was caused by bad client input rather
// than an upstream failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrUnknownNetwork) || errors.Is(err, ErrInvalidAddress)
}
