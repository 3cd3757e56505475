package instrumentation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics records remote-call and session counters on its own registry so
// tests and multiple programs never collide on the global one.
type Metrics struct {
	registry         *prometheus.Registry
	remoteOperations *prometheus.CounterVec
	remoteDuration   *prometheus.HistogramVec
	sessionChanges   *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		remoteOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "todocal",
				Name:      "remote_operations_total",
				Help:      "Total number of remote store and identity calls.",
			},
			[]string{"operation", "result"},
		),
		remoteDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "todocal",
				Name:      "remote_operation_duration_seconds",
				Help:      "Duration of remote store and identity calls in seconds.",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"operation"},
		),
		sessionChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "todocal",
				Name:      "session_changes_total",
				Help:      "Session change notifications observed by the UI.",
			},
			[]string{"state"},
		),
	}
	m.registry.MustRegister(m.remoteOperations, m.remoteDuration, m.sessionChanges)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRemote records one remote call. A nil receiver is a no-op.
func (m *Metrics) ObserveRemote(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	m.remoteOperations.WithLabelValues(operation, result).Inc()
	m.remoteDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveSession(signedIn bool) {
	if m == nil {
		return
	}
	state := "signed_out"
	if signedIn {
		state = "signed_in"
	}
	m.sessionChanges.WithLabelValues(state).Inc()
}
