package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gatewayRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mvx_txprocessor",
		Subsystem: "gateway_client",
		Name:      "operations_total",
		Help:      "Count of gateway API requests.",
	}, []string{"operation", "network", "status"})
	gatewayRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mvx_txprocessor",
		Subsystem: "gateway_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of gateway API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "network", "status"})
)

// GatewayClient tracks metrics for requests to the MultiversX gateway.
type GatewayClient struct {
	network string
}

// NewGatewayClient constructs a metrics collector for gateway requests.
func NewGatewayClient(network string) *GatewayClient {
	if network == "" {
		network = "unknown"
	}
	return &GatewayClient{network: network}
}

// Observe records a single gateway request outcome and duration.
func (m GatewayClient) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	gatewayRequestsTotal.WithLabelValues(operation, m.network, status).Inc()
	gatewayRequestDuration.WithLabelValues(operation, m.network, status).Observe(time.Since(started).Seconds())
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
