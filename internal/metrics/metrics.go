package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/BruksfildServices01/barber-booking/internal/apperr"
)

const OutcomeOK = "ok"

// Metrics holds Prometheus metrics for the booking core.
type Metrics struct {
	// Operations counts finished operations by outcome (ok or error kind).
	Operations *prometheus.CounterVec

	// Duration is the wall time of each operation, including lock waits.
	Duration *prometheus.HistogramVec

	// CacheLookups counts barber cache hits and misses.
	CacheLookups *prometheus.CounterVec
}

// New creates the metrics and registers them with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Operations: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_operations_total",
				Help:      "Total number of booking core operations by outcome",
			},
			[]string{"operation", "outcome"},
		),

		Duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "booking_operation_duration_seconds",
				Help:      "Time spent executing a booking core operation",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"operation"},
		),

		CacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "barber_cache_lookups_total",
				Help:      "Barber list cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

// Observe records one finished operation. A nil receiver is a no-op.
func (m *Metrics) Observe(operation string, start time.Time, err error) {
	if m == nil {
		return
	}

	outcome := OutcomeOK
	if err != nil {
		outcome = string(apperr.KindOf(err))
	}

	m.Operations.WithLabelValues(operation, outcome).Inc()
	m.Duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) CacheHit() {
	if m != nil {
		m.CacheLookups.WithLabelValues("hit").Inc()
	}
}

func (m *Metrics) CacheMiss() {
	if m != nil {
		m.CacheLookups.WithLabelValues("miss").Inc()
	}
}
