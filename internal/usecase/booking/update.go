package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type UpdateBooking struct {
	uow     domain.UnitOfWork
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewUpdateBooking(
	uow domain.UnitOfWork,
	m *metrics.Metrics,
	log *zap.Logger,
) *UpdateBooking {
	return &UpdateBooking{
		uow:     uow,
		metrics: m,
		log:     log,
	}
}

// Execute changes the contact fields of the user's booking and, when the
// target slot differs, moves the booking there. Locks are taken booking
// first, then both slots in ascending id order.
func (uc *UpdateBooking) Execute(
	ctx context.Context,
	in domain.Input,
) (b *models.Booking, err error) {

	defer func(start time.Time) { uc.metrics.Observe("update", start, err) }(time.Now())

	in, err = in.Normalize()
	if err != nil {
		return nil, err
	}

	moved := false

	err = uc.uow.Do(ctx, func(tx domain.Tx) error {

		// --------------------------------------------------
		// 1. Current booking
		// --------------------------------------------------
		current, err := tx.Bookings().FindByUserForUpdate(ctx, in.UserID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNoReservation()
		}

		// --------------------------------------------------
		// 2. Target slot, any status
		// --------------------------------------------------
		target, err := tx.Schedules().FindSlot(ctx, in.Slot(nil))
		if err != nil {
			return err
		}
		if target == nil {
			return domain.ErrNoAvailableSchedule()
		}

		// --------------------------------------------------
		// 3. Same slot: contact fields only
		// --------------------------------------------------
		if target.ID == current.ScheduleID {
			if err := tx.Bookings().UpdateFields(ctx, current.ID, in.Name, in.Phone); err != nil {
				return err
			}
			current.Name, current.PhoneNumber = in.Name, in.Phone
			b = current

			return tx.Audit().Log(ctx, audit.Event{
				UserUID:  in.UserID,
				Action:   audit.ActionBookingUpdated,
				Entity:   audit.EntityBooking,
				EntityID: &current.ID,
			})
		}

		// --------------------------------------------------
		// 4. Lock both slots, re-check target
		// --------------------------------------------------
		locked, err := lockInOrder(ctx, tx.Schedules(), current.ScheduleID, target.ID)
		if err != nil {
			return err
		}
		target = locked[target.ID]
		if target == nil {
			return domain.ErrNoAvailableSchedule()
		}
		if err := domain.CanReserve(domain.Status(target.Status)); err != nil {
			return err
		}

		// --------------------------------------------------
		// 5. Swap
		// --------------------------------------------------
		oldScheduleID := current.ScheduleID

		if err := tx.Schedules().Transition(ctx, target.ID, domain.StatusAvailable, domain.StatusReserved); err != nil {
			return err
		}
		if err := tx.Bookings().Reassign(ctx, current.ID, target.ID); err != nil {
			return err
		}
		if err := tx.Bookings().UpdateFields(ctx, current.ID, in.Name, in.Phone); err != nil {
			return err
		}
		if err := tx.Schedules().SetStatus(ctx, oldScheduleID, domain.StatusAvailable); err != nil {
			return err
		}

		if err := tx.Audit().Log(ctx, audit.Event{
			UserUID:  in.UserID,
			Action:   audit.ActionBookingRescheduled,
			Entity:   audit.EntityBooking,
			EntityID: &current.ID,
			Metadata: map[string]any{
				"from_schedule_id": oldScheduleID,
				"to_schedule_id":   target.ID,
			},
		}); err != nil {
			return err
		}

		current.ScheduleID = target.ID
		current.Name, current.PhoneNumber = in.Name, in.Phone
		b = current
		moved = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("booking updated",
		zap.String("user_uid", in.UserID),
		zap.Uint("booking_id", b.ID),
		zap.Uint("schedule_id", b.ScheduleID),
		zap.Bool("rescheduled", moved),
	)
	return b, nil
}

// lockInOrder takes row locks on the given slots in ascending id order so
// two updates crossing the same pair of slots cannot deadlock.
func lockInOrder(
	ctx context.Context,
	schedules domain.ScheduleStore,
	a uint,
	b uint,
) (map[uint]*models.Schedule, error) {

	if a > b {
		a, b = b, a
	}

	out := make(map[uint]*models.Schedule, 2)
	for _, id := range []uint{a, b} {
		s, err := schedules.LockByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out[id] = s
	}
	return out, nil
}
