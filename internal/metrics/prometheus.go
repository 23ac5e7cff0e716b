package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "microbench"

// Recorder publishes benchmark timings to a private Prometheus registry.
// All series carry a "workload" label.
type Recorder struct {
	registry    *prometheus.Registry
	runDuration *prometheus.HistogramVec
	runsTotal   *prometheus.CounterVec
	mean        *prometheus.GaugeVec
	stddev      *prometheus.GaugeVec
	primes      *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with its own registry, so that repeated
// construction (tests, restarts from the TUI) never collides with the
// global default registry.
func NewRecorder() *Recorder {
	labels := []string{"workload"}
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of one timed run.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 20),
		}, labels),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Number of completed timed runs.",
		}, labels),
		mean: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mean_seconds",
			Help:      "Mean run duration of the last completed benchmark.",
		}, labels),
		stddev: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stddev_seconds",
			Help:      "Sample standard deviation of run durations of the last completed benchmark.",
		}, labels),
		primes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "primes_found",
			Help:      "Primes found by the last run of a prime workload.",
		}, labels),
	}
	r.registry.MustRegister(r.runDuration, r.runsTotal, r.mean, r.stddev, r.primes)
	return r
}

// ObserveRun records one completed run.
func (r *Recorder) ObserveRun(workload string, d time.Duration) {
	r.runDuration.WithLabelValues(workload).Observe(d.Seconds())
	r.runsTotal.WithLabelValues(workload).Inc()
}

// ObserveSummary records the mean and, when defined, the standard deviation
// of a finished benchmark, both in seconds.
func (r *Recorder) ObserveSummary(workload string, mean, stddev float64, hasSpread bool) {
	r.mean.WithLabelValues(workload).Set(mean)
	if hasSpread {
		r.stddev.WithLabelValues(workload).Set(stddev)
	}
}

// ObservePrimes records the prime count reported by a prime workload.
func (r *Recorder) ObservePrimes(workload string, n int) {
	r.primes.WithLabelValues(workload).Set(float64(n))
}

// Gatherer exposes the registry for composition with other gatherers.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler serves the recorder's registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// WriteTextfile writes the current metrics to path in the text format read
// by the node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
