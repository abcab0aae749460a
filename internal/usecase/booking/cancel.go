package booking

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/apperr"
	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
)

type CancelBooking struct {
	uow     domain.UnitOfWork
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewCancelBooking(
	uow domain.UnitOfWork,
	m *metrics.Metrics,
	log *zap.Logger,
) *CancelBooking {
	return &CancelBooking{
		uow:     uow,
		metrics: m,
		log:     log,
	}
}

// Execute deletes the user's booking and frees its slot in one transaction.
// It returns the id of the freed slot.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	userID string,
) (scheduleID uint, err error) {

	defer func(start time.Time) { uc.metrics.Observe("cancel", start, err) }(time.Now())

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, apperr.Validation(domain.CodeMissingUser, "Missing user identity")
	}

	err = uc.uow.Do(ctx, func(tx domain.Tx) error {
		current, err := tx.Bookings().FindByUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNoReservation()
		}

		if _, err := tx.Schedules().LockByID(ctx, current.ScheduleID); err != nil {
			return err
		}

		if err := tx.Bookings().Delete(ctx, current.ID); err != nil {
			return err
		}
		freed := current.ScheduleID
		if err := tx.Schedules().SetStatus(ctx, freed, domain.StatusAvailable); err != nil {
			return err
		}

		scheduleID = freed
		return tx.Audit().Log(ctx, audit.Event{
			UserUID:  userID,
			Action:   audit.ActionBookingCancelled,
			Entity:   audit.EntityBooking,
			EntityID: &current.ID,
			Metadata: map[string]any{"schedule_id": freed},
		})
	})
	if err != nil {
		return 0, err
	}

	uc.log.Info("booking cancelled",
		zap.String("user_uid", userID),
		zap.Uint("schedule_id", scheduleID),
	)
	return scheduleID, nil
}
