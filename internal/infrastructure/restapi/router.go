package restapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterRoutes wires the balance API routes onto the engine. Middleware is
// expected to be installed by the caller before this runs.
func RegisterRoutes(router *gin.Engine, balanceHandler *BalanceHandler) {
	router.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/balances/:network/:address", balanceHandler.GetBalancesHandler)
	}
}

// RequestLogger logs every request through zap with method, path, status and
// latency.
func RequestLogger(zapLogger *zap.Logger) gin.HandlerFunc {
	accessLogger := zapLogger.Named("http")
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		accessLogger.Info("request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(started)))
	}
}
