package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wallet_balances/internal/app/port"
	domain "wallet_balances/internal/domain/entity"
	"wallet_balances/internal/infrastructure/configloader"

	"github.com/patrickmn/go-cache"
)

const providerCatalogCacheKey = "coingecko:coins"

// priceServiceImpl implements port.PriceResolver. It joins on-chain token
// display names against the provider's independently-maintained catalog and
// fetches USD unit prices for the resolved ids.
type priceServiceImpl struct {
	source       port.PriceSource
	logger       port.Logger
	catalogCache *cache.Cache
	quoteCache   *cache.Cache
}

// NewPriceService creates a price resolver with TTL caches for the provider
// catalog and for batched price quotes.
func NewPriceService(source port.PriceSource, cfg *configloader.Config, logger port.Logger) port.PriceResolver {
	catalogTTL := time.Duration(cfg.CoinGecko.CatalogCacheTTLMins) * time.Minute
	quoteTTL := time.Duration(cfg.CoinGecko.PriceCacheTTLSeconds) * time.Second
	return &priceServiceImpl{
		source:       source,
		logger:       logger,
		catalogCache: cache.New(catalogTTL, 2*catalogTTL),
		quoteCache:   cache.New(quoteTTL, 2*quoteTTL),
	}
}

// ResolvePrices implements port.PriceResolver.
//
// The join is by case-sensitive exact name match between the on-chain token
// names and the provider catalog; names with no catalog entry are silently
// dropped, and when one name maps to several provider ids the last one seen
// wins. Both behaviors are deliberate compatibility choices with the known
// fragility of a name-based join across two catalogs.
func (s *priceServiceImpl) ResolvePrices(ctx context.Context, names []string) (map[string]float64, error) {
	if len(names) == 0 {
		return map[string]float64{}, nil
	}

	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}

	catalog, err := s.providerCatalog(ctx)
	if err != nil {
		return nil, err
	}

	// Build name -> provider id, collecting the matched ids in catalog order
	// for the batched price request.
	idByName := make(map[string]string)
	matchedIDs := make([]string, 0, len(wanted))
	for _, token := range catalog {
		if _, ok := wanted[token.Name]; !ok {
			continue
		}
		idByName[token.Name] = token.ID
		matchedIDs = append(matchedIDs, token.ID)
	}

	if len(matchedIDs) == 0 {
		s.logger.Debug("No provider catalog matches for requested names", "requested", len(names))
		return map[string]float64{}, nil
	}

	quotes, err := s.usdQuotes(ctx, matchedIDs)
	if err != nil {
		return nil, err
	}

	prices := make(map[string]float64, len(idByName))
	for name, id := range idByName {
		if usd, ok := quotes[id]; ok {
			prices[name] = usd
		}
	}

	s.logger.Debug("Resolved prices",
		"requested_names", len(names), "matched_ids", len(matchedIDs), "priced_names", len(prices))
	return prices, nil
}

func (s *priceServiceImpl) providerCatalog(ctx context.Context) ([]cgToken, error) {
	if cached, found := s.catalogCache.Get(providerCatalogCacheKey); found {
		if catalog, ok := cached.([]cgToken); ok {
			return catalog, nil
		}
	}

	tokens, err := s.source.ListAllTokens(ctx)
	if err != nil {
		s.logger.Error("Failed to retrieve provider token catalog", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrPriceProviderUnavailable, err)
	}

	catalog := make([]cgToken, len(tokens))
	for i, token := range tokens {
		catalog[i] = cgToken{ID: token.ID, Name: token.Name}
	}
	s.catalogCache.Set(providerCatalogCacheKey, catalog, cache.DefaultExpiration)
	return catalog, nil
}

// usdQuotes fetches USD prices for the ids as one batched request, cached for
// a short TTL under the joined-ids key.
func (s *priceServiceImpl) usdQuotes(ctx context.Context, ids []string) (map[string]float64, error) {
	cacheKey := strings.Join(ids, ",")
	if cached, found := s.quoteCache.Get(cacheKey); found {
		if quotes, ok := cached.(map[string]float64); ok {
			return quotes, nil
		}
	}

	quotes, err := s.source.GetUsdPrices(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to retrieve prices from provider", "ids", len(ids), "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrPriceProviderUnavailable, err)
	}

	s.quoteCache.Set(cacheKey, quotes, cache.DefaultExpiration)
	return quotes, nil
}

// cgToken is the catalog projection kept in cache: only the fields the join
// needs.
type cgToken struct {
	ID   string
	Name string
}
