package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records per-entity accessor activity.
type StoreMetrics struct {
	duration *prometheus.HistogramVec
	ops      *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewStoreMetrics registers the store metrics on the provided registerer.
// A nil registerer yields a no-op instance, so callers never branch.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "store_operation_duration_seconds",
		Help:    "Duration of entity store operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"entity", "op"})
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_operations_total",
		Help: "Completed entity store operations.",
	}, []string{"entity", "op"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_operation_failures_total",
		Help: "Entity store operations that returned an error.",
	}, []string{"entity", "op"})
	reg.MustRegister(duration, ops, failures)
	return &StoreMetrics{
		duration: duration,
		ops:      ops,
		failures: failures,
	}
}

// ObserveDuration records how long the operation took.
func (s *StoreMetrics) ObserveDuration(entity, op string, duration time.Duration) {
	if s == nil || s.duration == nil {
		return
	}
	s.duration.WithLabelValues(normalizeLabel(entity), normalizeLabel(op)).Observe(duration.Seconds())
}

// IncOp increments the completed-operation counter.
func (s *StoreMetrics) IncOp(entity, op string) {
	if s == nil || s.ops == nil {
		return
	}
	s.ops.WithLabelValues(normalizeLabel(entity), normalizeLabel(op)).Inc()
}

// IncFailure increments the failure counter.
func (s *StoreMetrics) IncFailure(entity, op string) {
	if s == nil || s.failures == nil {
		return
	}
	s.failures.WithLabelValues(normalizeLabel(entity), normalizeLabel(op)).Inc()
}

// Track records one finished operation: duration, the op counter, and the
// failure counter when err is non-nil. Meant for a one-line defer.
func Track(s *StoreMetrics, entity, op string, start time.Time, err error) {
	s.ObserveDuration(entity, op, time.Since(start))
	s.IncOp(entity, op)
	if err != nil {
		s.IncFailure(entity, op)
	}
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
