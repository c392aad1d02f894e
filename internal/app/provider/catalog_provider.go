package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wallet_balances/internal/app/port"
	"wallet_balances/internal/domain/entity"
	"wallet_balances/internal/infrastructure/configloader"

	"github.com/patrickmn/go-cache"
)

const tokenListCacheKeyPrefix = "tokenlist:"

// catalogProviderImpl implements port.CatalogProvider. Per-network catalogs
// come from the configured token-list sources and are cached with a TTL;
// tracked-address sets are static, built once from config.
type catalogProviderImpl struct {
	source   port.TokenListSource
	networks map[string]configloader.NetworkNode
	tracked  map[string]map[string]struct{}
	catalogs *cache.Cache
	logger   port.Logger
}

// NewCatalogProvider creates a catalog provider over the configured networks.
func NewCatalogProvider(source port.TokenListSource, cfg *configloader.Config, logger port.Logger) port.CatalogProvider {
	networks := make(map[string]configloader.NetworkNode, len(cfg.Networks))
	tracked := make(map[string]map[string]struct{}, len(cfg.Networks))
	for _, netCfg := range cfg.Networks {
		networks[netCfg.Name] = netCfg

		set := make(map[string]struct{}, len(netCfg.TrackedTokens))
		for _, address := range netCfg.TrackedTokens {
			set[strings.ToLower(address)] = struct{}{}
		}
		tracked[netCfg.Name] = set
	}

	ttl := time.Duration(cfg.Catalog.CacheTTLMinutes) * time.Minute
	return &catalogProviderImpl{
		source:   source,
		networks: networks,
		tracked:  tracked,
		catalogs: cache.New(ttl, 2*ttl),
		logger:   logger,
	}
}

// ResolveCatalog returns the full token list for a network, from cache when
// fresh. The cache is a latency optimization only: a miss always triggers a
// real fetch.
func (p *catalogProviderImpl) ResolveCatalog(ctx context.Context, network string) ([]entity.Token, error) {
	netCfg, ok := p.networks[network]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnknownNetwork, network)
	}

	cacheKey := tokenListCacheKeyPrefix + network
	if cached, found := p.catalogs.Get(cacheKey); found {
		if tokens, ok := cached.([]entity.Token); ok {
			p.logger.Debug("Token catalog served from cache", "network", network, "count", len(tokens))
			return tokens, nil
		}
	}

	tokens, err := p.source.FetchTokenList(ctx, netCfg.TokenListURL)
	if err != nil {
		p.logger.Error("Failed to fetch token catalog", "network", network, "url", netCfg.TokenListURL, "error", err)
		return nil, fmt.Errorf("%w for %s: %w", entity.ErrCatalogUnavailable, network, err)
	}

	p.catalogs.Set(cacheKey, tokens, cache.DefaultExpiration)
	p.logger.Info("Token catalog fetched and cached", "network", network, "count", len(tokens))
	return tokens, nil
}

// TrackedAddresses returns the lowercased tracked-address set for a network.
func (p *catalogProviderImpl) TrackedAddresses(network string) (map[string]struct{}, bool) {
	set, ok := p.tracked[network]
	return set, ok
}
