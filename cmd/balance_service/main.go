package main

import (
	"context"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallet_balances/internal/app/provider"
	"wallet_balances/internal/app/service"
	"wallet_balances/internal/infrastructure/configloader"
	"wallet_balances/internal/infrastructure/httpclient"
	"wallet_balances/internal/infrastructure/network/client"
	"wallet_balances/internal/infrastructure/restapi"
	"wallet_balances/internal/infrastructure/tokenlist"
	"wallet_balances/internal/pkg/logger"
	"wallet_balances/internal/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	// logrus covers the bootstrap phase until the config tells us the level
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	cfgPath := getEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.Init(cfg.Logging.Level)
	if err != nil {
		logrus.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	appLogger := logger.NewSlogAdapter()

	metrics.MustRegisterMetrics()

	readerProvider, err := client.NewEVMClientProvider(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize chain readers", zap.Error(err))
	}
	zapLogger.Info("Chain readers initialized", zap.Strings("networks", readerProvider.Networks()))

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
	zapLogger.Info("BalanceService initialized")

	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(restapi.RequestLogger(zapLogger), gin.Recovery(), cors.New(corsConfig))

	balanceHandler := restapi.NewBalanceHandler(balanceService, zapLogger)
	restapi.RegisterRoutes(router, balanceHandler)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	pprofRouter := router.Group("/debug/pprof")
	{
		pprofRouter.GET("/", gin.WrapF(pprof.Index))
		pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
		pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
		pprofRouter.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
		pprofRouter.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		pprofRouter.GET("/heap", gin.WrapH(pprof.Handler("heap")))
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info("Server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}
