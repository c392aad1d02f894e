package client

import (
	"fmt"
	"sort"
	"time"

	"wallet_balances/internal/app/port"
	"wallet_balances/internal/infrastructure/configloader"

	"go.uber.org/zap"
)

// evmClientProvider implements port.ChainReaderProvider. All readers are
// dialed once during construction; the map is read-only afterwards so no
// locking is needed for concurrent requests.
type evmClientProvider struct {
	readers map[string]port.ChainReader
}

// NewEVMClientProvider dials every configured network and returns a provider
// over the resulting reader set. Fails if any network cannot be reached.
func NewEVMClientProvider(cfg *configloader.Config, logger *zap.Logger) (port.ChainReaderProvider, error) {
	connectionTimeout := time.Duration(cfg.Performance.ConnectionTimeoutSeconds) * time.Second
	rpcCallTimeout := time.Duration(cfg.Performance.RPCCallTimeoutSeconds) * time.Second

	readers := make(map[string]port.ChainReader, len(cfg.Networks))
	for _, netCfg := range cfg.Networks {
		logger.Info("Creating EVM client", zap.String("network", netCfg.Name), zap.String("rpc", netCfg.RPCURL))
		reader, err := NewEVMClient(netCfg, connectionTimeout, rpcCallTimeout, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create EVM client for %s: %w", netCfg.Name, err)
		}
		readers[netCfg.Name] = reader
	}
	return &evmClientProvider{readers: readers}, nil
}

// GetReader returns the reader for a network key.
func (p *evmClientProvider) GetReader(network string) (port.ChainReader, bool) {
	reader, ok := p.readers[network]
	return reader, ok
}

// Networks returns the configured network keys, sorted for stable output.
func (p *evmClientProvider) Networks() []string {
	names := make([]string, 0, len(p.readers))
	for name := range p.readers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
