package wisp

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// prometheusRegisterer is prometheus.Registerer, the interface promauto
// registers through; accepting the interface rather than a concrete
// *prometheus.Registry lets callers pass prometheus.DefaultRegisterer
// or a private registry interchangeably.
type prometheusRegisterer = prometheus.Registerer

// metricsRecorder records call counts and durations. A nil-backed
// recorder (noopMetrics) is used when the embedder does not opt into
// WithMetrics, so Runtime.Call never pays for label lookups it won't
// observe.
type metricsRecorder struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func noopMetrics() *metricsRecorder {
	return nil
}

func newMetricsRecorder(reg prometheusRegisterer) *metricsRecorder {
	factory := promauto.With(reg)
	return &metricsRecorder{
		calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wisp_calls_total",
				Help: "Total number of Runtime.Call invocations, by export name and outcome.",
			},
			[]string{"export", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wisp_call_duration_seconds",
				Help:    "Runtime.Call latency in seconds, by export name.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"export"},
		),
	}
}

// observeStart begins timing a call to export, returning a function to
// invoke with the call's outcome once it completes.
func (m *metricsRecorder) observeStart(export string) func(error) {
	if m == nil {
		return func(error) {}
	}
	start := time.Now()
	return func(err error) {
		status := "ok"
		if err != nil {
			status = "error"
		}
		m.calls.WithLabelValues(export, status).Inc()
		m.duration.WithLabelValues(export).Observe(time.Since(start).Seconds())
	}
}
