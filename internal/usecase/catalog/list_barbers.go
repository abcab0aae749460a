package catalog

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// BarberCache is optional; a nil cache always reads the store.
type BarberCache interface {
	Get(ctx context.Context) ([]models.Barber, bool, error)
	Set(ctx context.Context, barbers []models.Barber) error
}

type ListBarbers struct {
	barbers domain.BarberStore
	cache   BarberCache
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewListBarbers(
	barbers domain.BarberStore,
	cache BarberCache,
	m *metrics.Metrics,
	log *zap.Logger,
) *ListBarbers {
	return &ListBarbers{
		barbers: barbers,
		cache:   cache,
		metrics: m,
		log:     log,
	}
}

// Execute never fails because of the cache: cache errors are logged and the
// store answers instead.
func (uc *ListBarbers) Execute(ctx context.Context) (out []models.Barber, err error) {
	defer func(start time.Time) { uc.metrics.Observe("list_barbers", start, err) }(time.Now())

	if uc.cache != nil {
		cached, ok, err := uc.cache.Get(ctx)
		switch {
		case err != nil:
			uc.log.Warn("barber cache read failed", zap.Error(err))
		case ok:
			uc.metrics.CacheHit()
			return cached, nil
		default:
			uc.metrics.CacheMiss()
		}
	}

	out, err = uc.barbers.List(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, out); err != nil {
			uc.log.Warn("barber cache write failed", zap.Error(err))
		}
	}
	return out, nil
}
