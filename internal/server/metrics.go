package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics tracks the server's own request metrics and serves them together
// with any additional gatherers, such as the benchmark recorder's registry.
type Metrics struct {
	registry       *prometheus.Registry
	activeRequests prometheus.Gauge
	requestsTotal  *prometheus.CounterVec
	handler        http.Handler
}

// NewMetrics creates the server metrics. The Go runtime and process
// collectors are registered here, so extra gatherers must not carry them.
func NewMetrics(extra ...prometheus.Gatherer) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "microbench_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "microbench_requests_total",
			Help: "Number of HTTP requests served, by path.",
		}, []string{"path"}),
	}
	m.registry.MustRegister(
		m.activeRequests,
		m.requestsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	gatherers := prometheus.Gatherers{m.registry}
	gatherers = append(gatherers, extra...)
	m.handler = promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests marks the start of a request.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
}

// DecrementActiveRequests marks the end of a request.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// CountRequest records a served request for path.
func (m *Metrics) CountRequest(path string) {
	m.requestsTotal.WithLabelValues(path).Inc()
}

// WritePrometheus writes all gathered metrics to w.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
