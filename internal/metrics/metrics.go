// Package metrics records outcomes of list mutations and remote calls.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for mutation counters.
const (
	OutcomeCommitted  = "committed"
	OutcomeRolledBack = "rolled_back"
	OutcomeSkipped    = "skipped"
	OutcomeFailed     = "failed"
)

// Recorder owns a private registry so multiple instances never collide.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	inFlight   prometheus.Gauge
}

// New builds a Recorder with its collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tote",
				Name:      "operations_total",
				Help:      "List operations by name and outcome",
			},
			[]string{"operation", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "tote",
				Name:      "remote_call_duration_seconds",
				Help:      "Latency of remote calls issued by list operations",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tote",
			Name:      "operations_in_flight",
			Help:      "Operations waiting on the remote service",
		}),
	}
	r.registry.MustRegister(r.operations, r.duration, r.inFlight)
	return r
}

// Operation counts one finished operation.
func (r *Recorder) Operation(name, outcome string) {
	if r == nil {
		return
	}
	r.operations.WithLabelValues(name, outcome).Inc()
}

// Begin marks a remote call as started and returns a function that records
// its duration when called.
func (r *Recorder) Begin(name string) func() {
	if r == nil {
		return func() {}
	}
	start := time.Now()
	r.inFlight.Inc()
	return func() {
		r.inFlight.Dec()
		r.duration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}
}

// Counter exposes an operation counter, mainly for tests.
func (r *Recorder) Counter(name, outcome string) prometheus.Counter {
	return r.operations.WithLabelValues(name, outcome)
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
