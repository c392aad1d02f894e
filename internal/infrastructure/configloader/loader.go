package configloader

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// CoinGeckoConfig holds CoinGecko API specific configurations.
type CoinGeckoConfig struct {
	BaseURL               string  `yaml:"baseURL"`
	APIKey                string  `yaml:"apiKey"`
	RequestTimeoutMillis  int64   `yaml:"requestTimeoutMillis"`
	CatalogCacheTTLMins   int     `yaml:"catalogCacheTTLMinutes"`
	PriceCacheTTLSeconds  int     `yaml:"priceCacheTTLSeconds"`
	RequestsPerSecond     float64 `yaml:"requestsPerSecond"`
	RequestBurst          int     `yaml:"requestBurst"`
}

// CatalogConfig holds configuration for token catalog resolution.
type CatalogConfig struct {
	RequestTimeoutMillis int64 `yaml:"requestTimeoutMillis"`
	CacheTTLMinutes      int   `yaml:"cacheTTLMinutes"`
}

// PerformanceConfig holds performance-related configurations.
type PerformanceConfig struct {
	MaxConcurrentBalanceCalls int `yaml:"maxConcurrentBalanceCalls"`
	RPCCallTimeoutSeconds     int `yaml:"rpcCallTimeoutSeconds"`
	ConnectionTimeoutSeconds  int `yaml:"connectionTimeoutSeconds"`
}

// NetworkNode holds the configuration for a single blockchain network.
type NetworkNode struct {
	Name          string   `yaml:"name"`          // network key, e.g. "eth"
	ChainID       int64    `yaml:"chainID"`       // e.g. 1 for Ethereum mainnet
	RPCURL        string   `yaml:"rpcURL"`        // JSON-RPC endpoint
	TokenListURL  string   `yaml:"tokenListURL"`  // full token catalog source
	TrackedTokens []string `yaml:"trackedTokens"` // addresses in scope for reporting
}

// Config is the top-level configuration structure.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	CoinGecko   CoinGeckoConfig   `yaml:"coinGecko"`
	Catalog     CatalogConfig     `yaml:"catalog"`
	Performance PerformanceConfig `yaml:"performance"`
	Networks    []NetworkNode     `yaml:"networks"`
}

// Load reads the YAML configuration file from the given path, unmarshals it
// and applies defaults.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	logrus.Infof("Configuration loaded successfully, %d network(s) configured", len(cfg.Networks))
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 30
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}

	if cfg.CoinGecko.BaseURL == "" {
		cfg.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
		logrus.Infof("CoinGecko.BaseURL not set, defaulting to %s", cfg.CoinGecko.BaseURL)
	}
	if cfg.CoinGecko.RequestTimeoutMillis <= 0 {
		cfg.CoinGecko.RequestTimeoutMillis = 10000
	}
	if cfg.CoinGecko.CatalogCacheTTLMins <= 0 {
		cfg.CoinGecko.CatalogCacheTTLMins = 10
	}
	if cfg.CoinGecko.PriceCacheTTLSeconds <= 0 {
		cfg.CoinGecko.PriceCacheTTLSeconds = 60
	}
	if cfg.CoinGecko.RequestsPerSecond <= 0 {
		// the public API tolerates roughly 30 calls/min
		cfg.CoinGecko.RequestsPerSecond = 0.5
	}
	if cfg.CoinGecko.RequestBurst <= 0 {
		cfg.CoinGecko.RequestBurst = 2
	}

	if cfg.Catalog.RequestTimeoutMillis <= 0 {
		cfg.Catalog.RequestTimeoutMillis = 10000
	}
	if cfg.Catalog.CacheTTLMinutes <= 0 {
		cfg.Catalog.CacheTTLMinutes = 5
	}

	if cfg.Performance.MaxConcurrentBalanceCalls < 0 {
		cfg.Performance.MaxConcurrentBalanceCalls = 0 // 0 means unlimited
	}
	if cfg.Performance.RPCCallTimeoutSeconds <= 0 {
		cfg.Performance.RPCCallTimeoutSeconds = 10
	}
	if cfg.Performance.ConnectionTimeoutSeconds <= 0 {
		cfg.Performance.ConnectionTimeoutSeconds = 10
	}
}

func validate(cfg *Config) error {
	if len(cfg.Networks) == 0 {
		return fmt.Errorf("no networks configured")
	}
	seen := make(map[string]struct{}, len(cfg.Networks))
	for _, network := range cfg.Networks {
		if network.Name == "" {
			return fmt.Errorf("network with empty name in config")
		}
		if network.RPCURL == "" {
			return fmt.Errorf("network %s: rpcURL is required", network.Name)
		}
		if network.TokenListURL == "" {
			return fmt.Errorf("network %s: tokenListURL is required", network.Name)
		}
		if _, dup := seen[network.Name]; dup {
			return fmt.Errorf("network %s configured twice", network.Name)
		}
		seen[network.Name] = struct{}{}
		if len(network.TrackedTokens) == 0 {
			logrus.Warnf("Network %s has no tracked tokens configured, balance responses will be empty", network.Name)
		}
	}
	return nil
}
