package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	OrdersCreated   *prometheus.CounterVec
	OrdersCancelled prometheus.Counter
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "urbanturban_http_requests_total",
			Help: "Total number of HTTP requests by method, path and status",
		}, []string{"method", "path", "status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "urbanturban_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		OrdersCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "urbanturban_orders_created_total",
			Help: "Orders created, by payment provider",
		}, []string{"provider"}),
		OrdersCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "urbanturban_orders_cancelled_total",
			Help: "Orders cancelled",
		}),
	}
}

// ObserveOrderCreated increments the orders-created counter for a provider.
func (m *Metrics) ObserveOrderCreated(provider string) {
	if m == nil {
		return
	}
	m.OrdersCreated.WithLabelValues(provider).Inc()
}

// ObserveOrderCancelled increments the cancellation counter.
func (m *Metrics) ObserveOrderCancelled() {
	if m == nil {
		return
	}
	m.OrdersCancelled.Inc()
}
