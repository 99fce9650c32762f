package telemetry

import (
	"net/http"

	"github.com/amterp/calcus/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of one server. It uses its own
// registry so tests and multiple servers never collide.
type Metrics struct {
	registry *prometheus.Registry

	changes       *prometheus.CounterVec
	recalcSeconds prometheus.Histogram
	requests      *prometheus.CounterVec
	wsClients     prometheus.Gauge
}

// NewMetrics registers the calcus collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		changes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "calcus_session_changes_total",
			Help: "Committed session changes by type",
		}, []string{"type"}),
		recalcSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "calcus_recalculation_duration_seconds",
			Help:    "Time spent recalculating the session",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "calcus_http_requests_total",
			Help: "HTTP requests by method and status code",
		}, []string{"method", "code"}),
		wsClients: factory.NewGauge(prometheus.GaugeOpts{
			Name: "calcus_websocket_clients",
			Help: "Connected websocket clients",
		}),
	}
}

// OnSessionChange implements service.Subscriber.
func (m *Metrics) OnSessionChange(change service.Change) {
	m.changes.WithLabelValues(string(change.Type)).Inc()
	if change.Recalculated {
		m.recalcSeconds.Observe(change.Duration.Seconds())
	}
}

// InstrumentHandler counts requests by method and status code.
func (m *Metrics) InstrumentHandler(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerCounter(m.requests, next)
}

// ClientConnected and ClientDisconnected track websocket clients.
func (m *Metrics) ClientConnected()    { m.wsClients.Inc() }
func (m *Metrics) ClientDisconnected() { m.wsClients.Dec() }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
