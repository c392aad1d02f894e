package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// BalanceRequestsTotal counts balance queries by network and outcome
	// (ok, client_error, upstream_error).
	BalanceRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_balances_requests_total",
		Help: "Total balance queries handled, by network and outcome.",
	}, []string{"network", "outcome"})

	// UpstreamRequestDuration observes the latency of calls to external
	// collaborators (evm_rpc, tokenlist, coingecko_catalog, coingecko_price).
	UpstreamRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wallet_balances_upstream_request_duration_seconds",
		Help:    "Latency of upstream calls, by collaborator.",
		Buckets: prometheus.DefBuckets,
	}, []string{"upstream"})

	// BalanceCallsInFlight tracks concurrent on-chain balance reads.
	BalanceCallsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wallet_balances_chain_calls_in_flight",
		Help: "Number of on-chain balance reads currently in flight.",
	})
)

// MustRegisterMetrics registers all collectors with the default registry.
// Call once at startup.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		BalanceRequestsTotal,
		UpstreamRequestDuration,
		BalanceCallsInFlight,
	)
}
