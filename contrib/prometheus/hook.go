// Package prometheus exports data service calls as Prometheus metrics.
package prometheus

import (
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/petal-labs/dialog/core"
)

// OutcomeOK labels calls that returned without error.
const OutcomeOK = "ok"

// Hook implements core.TelemetryHook with a request counter, a latency
// histogram and an in-flight gauge, all labelled by operation.
type Hook struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight *prometheus.GaugeVec
}

// NewHook registers the dialog metrics with reg and returns the hook.
// It panics if the metrics are already registered, like promauto.
func NewHook(reg prometheus.Registerer) *Hook {
	f := promauto.With(reg)
	return &Hook{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dialog_requests_total",
			Help: "Data service calls by operation and outcome",
		}, []string{"operation", "outcome"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dialog_request_duration_seconds",
			Help:    "Data service call latency",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
		inFlight: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dialog_requests_in_flight",
			Help: "Data service calls currently running",
		}, []string{"operation"}),
	}
}

// OnRequestStart increments the in-flight gauge.
func (h *Hook) OnRequestStart(e core.RequestStartEvent) {
	h.inFlight.WithLabelValues(string(e.Operation)).Inc()
}

// OnRequestEnd records the outcome and latency.
func (h *Hook) OnRequestEnd(e core.RequestEndEvent) {
	op := string(e.Operation)
	h.inFlight.WithLabelValues(op).Dec()
	h.requests.WithLabelValues(op, outcome(e.Err)).Inc()
	h.duration.WithLabelValues(op).Observe(e.Duration().Seconds())
}

// outcome maps an error to a low-cardinality label value.
func outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	var de *core.Error
	if !errors.As(err, &de) {
		return "unknown"
	}
	return strings.ReplaceAll(de.Kind.String(), " ", "_")
}

var _ core.TelemetryHook = (*Hook)(nil)
