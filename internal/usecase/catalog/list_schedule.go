package catalog

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/apperr"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ListSchedule struct {
	barbers   domain.BarberStore
	schedules domain.ScheduleStore
	metrics   *metrics.Metrics
}

func NewListSchedule(
	barbers domain.BarberStore,
	schedules domain.ScheduleStore,
	m *metrics.Metrics,
) *ListSchedule {
	return &ListSchedule{
		barbers:   barbers,
		schedules: schedules,
		metrics:   m,
	}
}

// All lists every slot of the barber ordered by date, time, id.
func (uc *ListSchedule) All(ctx context.Context, barberID uint) (out []models.Schedule, err error) {
	defer func(start time.Time) { uc.metrics.Observe("list_schedule", start, err) }(time.Now())

	if err := uc.checkBarber(ctx, barberID); err != nil {
		return nil, err
	}
	return uc.schedules.ListByBarber(ctx, barberID)
}

// Available lists only the slots still open for booking, same order.
func (uc *ListSchedule) Available(ctx context.Context, barberID uint) (out []models.Schedule, err error) {
	defer func(start time.Time) { uc.metrics.Observe("list_available", start, err) }(time.Now())

	if err := uc.checkBarber(ctx, barberID); err != nil {
		return nil, err
	}
	return uc.schedules.ListAvailableByBarber(ctx, barberID)
}

func (uc *ListSchedule) checkBarber(ctx context.Context, barberID uint) error {
	if barberID == 0 {
		return apperr.Validation("invalid_barber_id", "Invalid barber id")
	}

	ok, err := uc.barbers.Exists(ctx, barberID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound(domain.CodeBarberNotFound, "Barber not found")
	}
	return nil
}
