package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-booking/internal/apperr"
)

func TestObserve(t *testing.T) {
	m := New("test", prometheus.NewRegistry())
	start := time.Now()

	m.Observe("create", start, nil)
	m.Observe("create", start, apperr.NotFound("no_available_schedule", "No available schedule found"))
	m.Observe("create", start, apperr.NotFound("no_available_schedule", "No available schedule found"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("create", OutcomeOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Operations.WithLabelValues("create", "not_found")))

	m.CacheHit()
	m.CacheMiss()
	m.CacheMiss()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Observe("cancel", time.Now(), nil)
		m.CacheHit()
		m.CacheMiss()
	})
}
