package restapi

import (
	"net/http"

	"wallet_balances/internal/app/port"
	"wallet_balances/internal/domain/entity"
	"wallet_balances/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BalanceHandler handles HTTP requests for wallet balance queries.
type BalanceHandler struct {
	balanceSvc port.BalanceService
	logger     *zap.Logger
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceSvc port.BalanceService, logger *zap.Logger) *BalanceHandler {
	return &BalanceHandler{
		balanceSvc: balanceSvc,
		logger:     logger.Named("BalanceHandler"),
	}
}

// GetBalancesHandler serves GET /api/v1/balances/:network/:address. Client
// input errors map to 400; upstream failures map to 500 with a generic body,
// the detail goes to the log only.
func (h *BalanceHandler) GetBalancesHandler(c *gin.Context) {
	network := c.Param("network")
	address := c.Param("address")

	balances, err := h.balanceSvc.GetBalances(c.Request.Context(), network, address)
	if err != nil {
		if entity.IsClientError(err) {
			metrics.BalanceRequestsTotal.WithLabelValues(network, "client_error").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		metrics.BalanceRequestsTotal.WithLabelValues(network, "upstream_error").Inc()
		h.logger.Error("Balance query failed",
			zap.String("network", network),
			zap.String("address", address),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve balances"})
		return
	}

	metrics.BalanceRequestsTotal.WithLabelValues(network, "ok").Inc()
	c.JSON(http.StatusOK, balances)
}
