// Package metrics exposes evaluation counters for the admin server.
package metrics

import (
	"net/http"
	"time"

	"statcompare/domain/stats"
	"statcompare/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts evaluations by test and outcome and times them
type Recorder struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

var _ ports.EvaluationRecorder = (*Recorder)(nil)

// NewRecorder creates a recorder on its own registry, including the Go and
// process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statcompare_evaluations_total",
				Help: "Total number of pipeline evaluations by test and outcome.",
			},
			[]string{"test", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "statcompare_evaluation_duration_seconds",
				Help:    "Time spent loading, testing and rendering one evaluation.",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"test"},
		),
	}
	r.registry.MustRegister(
		r.evaluations,
		r.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveEvaluation implements ports.EvaluationRecorder
func (r *Recorder) ObserveEvaluation(kind stats.TestKind, outcome string, elapsed time.Duration) {
	r.evaluations.WithLabelValues(string(kind), outcome).Inc()
	r.duration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
