// Command checker runs the balance aggregation pipeline once for a single
// network/wallet pair and prints the result as JSON. Useful for smoke checks
// without the HTTP surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"wallet_balances/internal/app/provider"
	"wallet_balances/internal/app/service"
	"wallet_balances/internal/infrastructure/configloader"
	"wallet_balances/internal/infrastructure/httpclient"
	"wallet_balances/internal/infrastructure/network/client"
	"wallet_balances/internal/infrastructure/tokenlist"
	"wallet_balances/internal/pkg/logger"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	cfgPath := flag.String("config", "config/config.yaml", "path to the YAML configuration file")
	network := flag.String("network", "eth", "network key to query")
	address := flag.String("address", "", "wallet address to query")
	timeout := flag.Duration("timeout", 60*time.Second, "overall run timeout")
	flag.Parse()

	if *address == "" {
		fmt.Fprintln(os.Stderr, "usage: checker -network <key> -address <wallet> [-config path]")
		os.Exit(2)
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})
	cfg, err := configloader.Load(*cfgPath)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.Init(cfg.Logging.Level)
	if err != nil {
		logrus.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	appLogger := logger.NewSlogAdapter()

	readerProvider, err := client.NewEVMClientProvider(cfg, zapLogger)
	if err != nil {
		logger.Fatal("Failed to initialize chain readers", "error", err)
	}

	tokenListClient := tokenlist.NewClient(time.Duration(cfg.Catalog.RequestTimeoutMillis)*time.Millisecond, zapLogger)
	catalogProvider := provider.NewCatalogProvider(tokenListClient, cfg, appLogger)

	coinGeckoClient := httpclient.NewCoinGeckoClient(
		cfg.CoinGecko.BaseURL,
		cfg.CoinGecko.APIKey,
		time.Duration(cfg.CoinGecko.RequestTimeoutMillis)*time.Millisecond,
		cfg.CoinGecko.RequestsPerSecond,
		cfg.CoinGecko.RequestBurst,
		zapLogger,
	)
	priceService := service.NewPriceService(coinGeckoClient, cfg, appLogger)

	balanceService := service.NewBalanceService(
		readerProvider,
		catalogProvider,
		priceService,
		appLogger,
		cfg.Performance.MaxConcurrentBalanceCalls,
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	balances, err := balanceService.GetBalances(ctx, *network, *address)
	if err != nil {
		logger.Fatal("Balance query failed", "network", *network, "address", *address, "error", err)
	}

	out, err := json.MarshalIndent(balances, "", "  ")
	if err != nil {
		logger.Fatal("Failed to marshal result", "error", err)
	}
	fmt.Println(string(out))
}
