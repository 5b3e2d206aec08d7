// Package metrics exposes Prometheus instruments for commands, business
// operations and outbound stats API calls. A nil *Metrics is a no-op.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var durationBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

type Metrics struct {
	CommandsTotal     *prometheus.CounterVec
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	GatewayRequests   *prometheus.CounterVec
	GatewayDuration   *prometheus.HistogramVec
}

// New registers all instruments on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CommandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gok_commands_total",
			Help: "Commands dispatched from chat, by command and result",
		}, []string{"command", "result"}),
		OperationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gok_operations_total",
			Help: "Business operation outcomes, by operation and outcome kind",
		}, []string{"operation", "outcome"}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gok_operation_duration_seconds",
			Help:    "Duration of business operations",
			Buckets: durationBuckets,
		}, []string{"operation"}),
		GatewayRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gok_gateway_requests_total",
			Help: "Outbound stats API calls, by endpoint key and result",
		}, []string{"endpoint", "result"}),
		GatewayDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gok_gateway_request_duration_seconds",
			Help:    "Duration of outbound stats API calls",
			Buckets: durationBuckets,
		}, []string{"endpoint"}),
	}
}

func (m *Metrics) IncCommand(command, result string) {
	if m == nil {
		return
	}
	m.CommandsTotal.WithLabelValues(command, result).Inc()
}

// ObserveOperation records an operation outcome. Call with time.Now() taken at
// the start of the operation.
func (m *Metrics) ObserveOperation(operation, outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.OperationsTotal.WithLabelValues(operation, outcome).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveGateway(endpoint, result string, start time.Time) {
	if m == nil {
		return
	}
	m.GatewayRequests.WithLabelValues(endpoint, result).Inc()
	m.GatewayDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
