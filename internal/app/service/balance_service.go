package service

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"wallet_balances/internal/app/port"
	"wallet_balances/internal/domain/entity"
	"wallet_balances/internal/pkg/metrics"
	"wallet_balances/internal/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// BalanceServiceImpl implements port.BalanceService: the linear pipeline
// ValidateAddress -> ResolveCatalog -> FetchOnChainBalances -> ResolvePrices
// -> JoinValuation. Any step failure aborts the request; no retries happen
// at this level.
type BalanceServiceImpl struct {
	readers  port.ChainReaderProvider
	catalog  port.CatalogProvider
	prices   port.PriceResolver
	logger   port.Logger
	maxCalls int
}

// NewBalanceService creates the aggregation orchestrator. maxConcurrentCalls
// bounds the per-request balance fan-out; zero means unlimited.
func NewBalanceService(
	readers port.ChainReaderProvider,
	catalog port.CatalogProvider,
	prices port.PriceResolver,
	logger port.Logger,
	maxConcurrentCalls int,
) *BalanceServiceImpl {
	return &BalanceServiceImpl{
		readers:  readers,
		catalog:  catalog,
		prices:   prices,
		logger:   logger,
		maxCalls: maxConcurrentCalls,
	}
}

// GetBalances implements port.BalanceService.
func (s *BalanceServiceImpl) GetBalances(ctx context.Context, network string, walletAddress string) ([]entity.Balance, error) {
	reader, ok := s.readers.GetReader(network)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnknownNetwork, network)
	}

	if !reader.IsValidAddress(walletAddress) {
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidAddress, walletAddress)
	}

	catalog, err := s.catalog.ResolveCatalog(ctx, network)
	if err != nil {
		return nil, err
	}

	trackedSet, ok := s.catalog.TrackedAddresses(network)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnknownNetwork, network)
	}
	tracked := filterTracked(catalog, trackedSet)
	s.logger.Debug("Resolved tracked tokens",
		"network", network, "catalog_size", len(catalog), "tracked", len(tracked))

	balances, err := s.fetchBalances(ctx, reader, walletAddress, tracked)
	if err != nil {
		s.logger.Error("Balance fetch failed", "network", network, "wallet", walletAddress, "error", err)
		return nil, err
	}

	names := make([]string, len(balances))
	for i, balance := range balances {
		names[i] = balance.Name
	}
	priceByName, err := s.prices.ResolvePrices(ctx, names)
	if err != nil {
		return nil, err
	}

	return JoinValuation(balances, priceByName), nil
}

// filterTracked keeps the catalog entries whose address is in the tracked
// set. Address comparison is case-insensitive exact match.
func filterTracked(catalog []entity.Token, tracked map[string]struct{}) []entity.Token {
	filtered := make([]entity.Token, 0, len(tracked))
	for _, token := range catalog {
		if _, ok := tracked[strings.ToLower(token.Address)]; ok {
			filtered = append(filtered, token)
		}
	}
	return filtered
}

// balanceCall is one issued on-chain read: the token it was issued for and
// the raw result once collected.
type balanceCall struct {
	token entity.Token
	raw   *big.Int
}

// fetchBalances runs the two-phase fan-out: issue one read per tracked token
// concurrently, then collect the full batch. All-or-nothing: the first
// failed read cancels the remaining ones and fails the whole fetch.
func (s *BalanceServiceImpl) fetchBalances(ctx context.Context, reader port.ChainReader, walletAddress string, tokens []entity.Token) ([]entity.Balance, error) {
	calls := make([]balanceCall, len(tokens))

	eg, egCtx := errgroup.WithContext(ctx)
	if s.maxCalls > 0 {
		eg.SetLimit(s.maxCalls)
	}
	for i, token := range tokens {
		eg.Go(func() error {
			metrics.BalanceCallsInFlight.Inc()
			defer metrics.BalanceCallsInFlight.Dec()

			raw, err := reader.ReadBalance(egCtx, token.Address, walletAddress)
			if err != nil {
				return fmt.Errorf("token %s (%s): %w", token.Symbol, token.Address, err)
			}
			calls[i] = balanceCall{token: token, raw: raw}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrBalanceFetchFailed, err)
	}

	balances := make([]entity.Balance, len(calls))
	for i, call := range calls {
		balances[i] = entity.Balance{
			Address:  call.token.Address,
			Name:     call.token.Name,
			Symbol:   call.token.Symbol,
			Decimals: call.token.Decimals,
			Amount:   utils.RawToDecimal(call.raw, call.token.Decimals),
		}
	}
	return balances, nil
}

// JoinValuation annotates each balance with usdValue = round2(unitPrice *
// amount), treating an unresolved price as zero. Pure function, total over
// its inputs.
func JoinValuation(balances []entity.Balance, priceByName map[string]float64) []entity.Balance {
	joined := make([]entity.Balance, len(balances))
	for i, balance := range balances {
		unitPrice := priceByName[balance.Name]
		balance.UsdValue = utils.Round2(unitPrice * balance.Amount)
		joined[i] = balance
	}
	return joined
}

var _ port.BalanceService = (*BalanceServiceImpl)(nil)
