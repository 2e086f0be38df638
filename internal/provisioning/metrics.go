package provisioning

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects runtime and health-gate measurements for one invocation.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	runtimeOps      *prometheus.CounterVec
	runtimeDuration *prometheus.HistogramVec
	healthWaits     *prometheus.CounterVec
	healthDuration  *prometheus.HistogramVec
	instances       *prometheus.GaugeVec
}

// NewMetrics creates a Metrics backed by a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		runtimeOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pgbcluster",
				Subsystem: "runtime",
				Name:      "operations_total",
				Help:      "Total number of runtime operations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		runtimeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "pgbcluster",
				Subsystem: "runtime",
				Name:      "operation_duration_seconds",
				Help:      "Duration of runtime operations in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
			},
			[]string{"operation"},
		),
		healthWaits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pgbcluster",
				Subsystem: "health",
				Name:      "waits_total",
				Help:      "Total number of health waits by result",
			},
			[]string{"result"},
		),
		healthDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "pgbcluster",
				Subsystem: "health",
				Name:      "wait_duration_seconds",
				Help:      "Time spent waiting for instances to become healthy",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 8), // 1s to ~2min
			},
			[]string{"result"},
		),
		instances: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "pgbcluster",
				Subsystem: "cluster",
				Name:      "instances",
				Help:      "Number of instances by group, role and observed status",
			},
			[]string{"group", "role", "status"},
		),
	}

	m.Registry.MustRegister(
		m.runtimeOps,
		m.runtimeDuration,
		m.healthWaits,
		m.healthDuration,
		m.instances,
	)
	return m
}

// RecordRuntimeOp records a runtime operation and its outcome ("error" on failure).
func (m *Metrics) RecordRuntimeOp(operation, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.runtimeOps.WithLabelValues(operation, outcome).Inc()
	m.runtimeDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordHealthWait records a finished health wait.
func (m *Metrics) RecordHealthWait(healthy bool, d time.Duration) {
	if m == nil {
		return
	}
	result := "timeout"
	if healthy {
		result = "healthy"
	}
	m.healthWaits.WithLabelValues(result).Inc()
	m.healthDuration.WithLabelValues(result).Observe(d.Seconds())
}

// SetInstances records how many instances of a group and role are in a status.
func (m *Metrics) SetInstances(group, role, status string, n int) {
	if m == nil {
		return
	}
	m.instances.WithLabelValues(group, role, status).Set(float64(n))
}

// WriteToTextfile writes all metrics in the node-exporter textfile format.
func (m *Metrics) WriteToTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}
