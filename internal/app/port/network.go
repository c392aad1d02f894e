package port

import (
	"context"
	"math/big"
)

// ChainReader defines read-only access to a single blockchain network.
// Implementations must support concurrent invocation.
type ChainReader interface {
	// IsValidAddress reports whether the address passes the network's
	// address-format validation.
	IsValidAddress(address string) bool

	// ReadBalance fetches the raw integer balance of a token contract for a
	// wallet (a balanceOf-style read-only call).
	ReadBalance(ctx context.Context, tokenAddress string, walletAddress string) (*big.Int, error)

	// Network returns the configured network key this reader serves.
	Network() string
}

// ChainReaderProvider exposes the long-lived per-network readers. The mapping
// is built once at process start and never mutated afterwards.
type ChainReaderProvider interface {
	// GetReader returns the reader for a network key, or false if the network
	// is not configured.
	GetReader(network string) (ChainReader, bool)

	// Networks returns the configured network keys.
	Networks() []string
}
