// Package metrics exposes the console's Prometheus collectors.
//
// Every method is safe on a nil *Metrics so components can be built without
// instrumentation in tests.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dispatch_console"

// Outcome labels.
const (
	ResultSuccess   = "success"
	ResultError     = "error"
	ResultDiscarded = "discarded"
)

// Metrics holds the registry and collectors.
type Metrics struct {
	registry *prometheus.Registry

	refreshes       *prometheus.CounterVec
	gatewayCalls    *prometheus.CounterVec
	gatewayDuration *prometheus.HistogramVec
	rollbacks       *prometheus.CounterVec
	listSize        prometheus.Gauge
}

// New creates a registry with Go/process collectors and the console collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "list_refreshes_total",
			Help:      "Delivery list refreshes by outcome.",
		}, []string{"result"}),
		gatewayCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_calls_total",
			Help:      "Gateway calls by operation and outcome.",
		}, []string{"operation", "result"}),
		gatewayDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gateway_call_duration_seconds",
			Help:      "Gateway call latency by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		rollbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "optimistic_rollbacks_total",
			Help:      "Optimistic toggles reverted after a gateway failure.",
		}, []string{"entity"}),
		listSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "deliveries_listed",
			Help:      "Deliveries in the last applied list.",
		}),
	}

	reg.MustRegister(m.refreshes, m.gatewayCalls, m.gatewayDuration, m.rollbacks, m.listSize)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRefresh records a list refresh outcome and, on success, the list size.
func (m *Metrics) ObserveRefresh(result string, size int) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(result).Inc()
	if result == ResultSuccess {
		m.listSize.Set(float64(size))
	}
}

// ObserveGatewayCall records a gateway call outcome and latency.
func (m *Metrics) ObserveGatewayCall(operation string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	m.gatewayCalls.WithLabelValues(operation, result).Inc()
	m.gatewayDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveRollback records a reverted optimistic toggle.
func (m *Metrics) ObserveRollback(entity string) {
	if m == nil {
		return
	}
	m.rollbacks.WithLabelValues(entity).Inc()
}
