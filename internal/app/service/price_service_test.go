package service

import (
	"context"
	"errors"
	"testing"

	domain "wallet_balances/internal/domain/entity"
	cg "wallet_balances/internal/entity"
	"wallet_balances/internal/infrastructure/configloader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePriceSource struct {
	catalog    []cg.CoingeckoToken
	quotes     map[string]float64
	catalogErr error
	quotesErr  error

	listCalls  int
	quoteCalls int
	lastIDs    []string
}

func (s *fakePriceSource) ListAllTokens(context.Context) ([]cg.CoingeckoToken, error) {
	s.listCalls++
	if s.catalogErr != nil {
		return nil, s.catalogErr
	}
	return s.catalog, nil
}

func (s *fakePriceSource) GetUsdPrices(_ context.Context, ids []string) (map[string]float64, error) {
	s.quoteCalls++
	s.lastIDs = ids
	if s.quotesErr != nil {
		return nil, s.quotesErr
	}
	out := make(map[string]float64, len(ids))
	for _, id := range ids {
		if usd, ok := s.quotes[id]; ok {
			out[id] = usd
		}
	}
	return out, nil
}

func priceTestConfig() *configloader.Config {
	cfg := &configloader.Config{}
	cfg.CoinGecko.CatalogCacheTTLMins = 10
	cfg.CoinGecko.PriceCacheTTLSeconds = 60
	return cfg
}

func TestResolvePricesExactMatch(t *testing.T) {
	source := &fakePriceSource{
		catalog: []cg.CoingeckoToken{
			{ID: "tether", Symbol: "usdt", Name: "Tether"},
			{ID: "weth", Symbol: "weth", Name: "WETH"},
			{ID: "uniswap", Symbol: "uni", Name: "Uniswap"},
		},
		quotes: map[string]float64{"tether": 1, "weth": 3000},
	}
	resolver := NewPriceService(source, priceTestConfig(), noopLogger{})

	prices, err := resolver.ResolvePrices(context.Background(), []string{"Tether", "WETH"})
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"Tether": 1, "WETH": 3000}, prices)
	assert.Equal(t, []string{"tether", "weth"}, source.lastIDs)
}

func TestResolvePricesJoinIsCaseSensitive(t *testing.T) {
	source := &fakePriceSource{
		catalog: []cg.CoingeckoToken{{ID: "tether", Symbol: "usdt", Name: "Tether"}},
		quotes:  map[string]float64{"tether": 1},
	}
	resolver := NewPriceService(source, priceTestConfig(), noopLogger{})

	prices, err := resolver.ResolvePrices(context.Background(), []string{"tether", "TETHER"})
	require.NoError(t, err)
	assert.Empty(t, prices)
	// no matches means no quote request at all
	assert.Zero(t, source.quoteCalls)
}

func TestResolvePricesDuplicateNameLastSeenWins(t *testing.T) {
	source := &fakePriceSource{
		catalog: []cg.CoingeckoToken{
			{ID: "tether-clone", Symbol: "usdx", Name: "Tether"},
			{ID: "tether", Symbol: "usdt", Name: "Tether"},
		},
		quotes: map[string]float64{"tether-clone": 0.5, "tether": 1},
	}
	resolver := NewPriceService(source, priceTestConfig(), noopLogger{})

	prices, err := resolver.ResolvePrices(context.Background(), []string{"Tether"})
	require.NoError(t, err)
	require.InDelta(t, 1, prices["Tether"], 1e-9)
}

func TestResolvePricesUnmatchedDropped(t *testing.T) {
	source := &fakePriceSource{
		catalog: []cg.CoingeckoToken{{ID: "weth", Symbol: "weth", Name: "WETH"}},
		quotes:  map[string]float64{"weth": 3000},
	}
	resolver := NewPriceService(source, priceTestConfig(), noopLogger{})

	prices, err := resolver.ResolvePrices(context.Background(), []string{"WETH", "Obscure Token"})
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.NotContains(t, prices, "Obscure Token")
}

func TestResolvePricesQuoteMissingFromResponse(t *testing.T) {
	source := &fakePriceSource{
		catalog: []cg.CoingeckoToken{{ID: "weth", Symbol: "weth", Name: "WETH"}},
		quotes:  map[string]float64{}, // provider matched the id but returned no usd quote
	}
	resolver := NewPriceService(source, priceTestConfig(), noopLogger{})

	prices, err := resolver.ResolvePrices(context.Background(), []string{"WETH"})
	require.NoError(t, err)
	assert.Empty(t, prices)
}

func TestResolvePricesEmptyNames(t *testing.T) {
	source := &fakePriceSource{}
	resolver := NewPriceService(source, priceTestConfig(), noopLogger{})

	prices, err := resolver.ResolvePrices(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, prices)
	assert.Zero(t, source.listCalls)
}

func TestResolvePricesCatalogError(t *testing.T) {
	source := &fakePriceSource{catalogErr: errors.New("503 from upstream")}
	resolver := NewPriceService(source, priceTestConfig(), noopLogger{})

	_, err := resolver.ResolvePrices(context.Background(), []string{"Tether"})
	require.ErrorIs(t, err, domain.ErrPriceProviderUnavailable)
}

func TestResolvePricesQuoteError(t *testing.T) {
	source := &fakePriceSource{
		catalog:   []cg.CoingeckoToken{{ID: "tether", Symbol: "usdt", Name: "Tether"}},
		quotesErr: errors.New("rate limited"),
	}
	resolver := NewPriceService(source, priceTestConfig(), noopLogger{})

	_, err := resolver.ResolvePrices(context.Background(), []string{"Tether"})
	require.ErrorIs(t, err, domain.ErrPriceProviderUnavailable)
}

func TestResolvePricesCaching(t *testing.T) {
	source := &fakePriceSource{
		catalog: []cg.CoingeckoToken{{ID: "tether", Symbol: "usdt", Name: "Tether"}},
		quotes:  map[string]float64{"tether": 1},
	}
	resolver := NewPriceService(source, priceTestConfig(), noopLogger{})

	first, err := resolver.ResolvePrices(context.Background(), []string{"Tether"})
	require.NoError(t, err)
	second, err := resolver.ResolvePrices(context.Background(), []string{"Tether"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// both the catalog and the joined-ids quote batch are served from cache
	assert.Equal(t, 1, source.listCalls)
	assert.Equal(t, 1, source.quoteCalls)
}
