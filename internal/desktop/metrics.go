package desktop

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the command server collectors on a private registry so
// several servers can live in one process.
type Metrics struct {
	Registry    *prometheus.Registry
	Invocations *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
}

// NewMetrics creates and registers the command collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shikabom",
			Subsystem: "desktop",
			Name:      "invocations_total",
			Help:      "Command invocations by command and result.",
		}, []string{"command", "result"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "shikabom",
			Subsystem: "desktop",
			Name:      "invocation_duration_seconds",
			Help:      "Command latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),
	}
	m.Registry.MustRegister(m.Invocations, m.Duration)
	return m
}
