package port

import (
	"context"

	"wallet_balances/internal/domain/entity"
)

// BalanceService is the top-level balance aggregation pipeline.
type BalanceService interface {
	// GetBalances returns the tracked-token balances of a wallet on a
	// network, each annotated with amount and USD value.
	GetBalances(ctx context.Context, network string, walletAddress string) ([]entity.Balance, error)
}
