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

type CreateBooking struct {
	uow     domain.UnitOfWork
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewCreateBooking(
	uow domain.UnitOfWork,
	m *metrics.Metrics,
	log *zap.Logger,
) *CreateBooking {
	return &CreateBooking{
		uow:     uow,
		metrics: m,
		log:     log,
	}
}

// Execute reserves the Available slot at (barber, date, time) for the
// user. The slot row is locked with its status in the predicate, so of
// several racing callers only the first sees it Available; the rest find
// no slot and get a not-found error.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in domain.Input,
) (b *models.Booking, err error) {

	defer func(start time.Time) { uc.metrics.Observe("create", start, err) }(time.Now())

	in, err = in.Normalize()
	if err != nil {
		return nil, err
	}

	available := domain.StatusAvailable

	err = uc.uow.Do(ctx, func(tx domain.Tx) error {

		// --------------------------------------------------
		// 1. Slot, locked while Available
		// --------------------------------------------------
		slot, err := tx.Schedules().LockSlot(ctx, in.Slot(&available))
		if err != nil {
			return err
		}
		if slot == nil {
			return domain.ErrNoAvailableSchedule()
		}

		// --------------------------------------------------
		// 2. One booking per user
		// --------------------------------------------------
		existing, err := tx.Bookings().FindByUserForUpdate(ctx, in.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrUserHasReservation()
		}

		// --------------------------------------------------
		// 3. Attach booking, flip status
		// --------------------------------------------------
		created := &models.Booking{
			ScheduleID:  slot.ID,
			UserUID:     in.UserID,
			Name:        in.Name,
			PhoneNumber: in.Phone,
		}
		if err := tx.Bookings().Insert(ctx, created); err != nil {
			return err
		}

		if err := tx.Schedules().Transition(ctx, slot.ID, domain.StatusAvailable, domain.StatusReserved); err != nil {
			return err
		}

		if err := tx.Audit().Log(ctx, audit.Event{
			UserUID:  in.UserID,
			Action:   audit.ActionBookingCreated,
			Entity:   audit.EntityBooking,
			EntityID: &created.ID,
			Metadata: map[string]any{
				"schedule_id": slot.ID,
				"barber_id":   in.BarberID,
				"date":        in.Date,
				"time":        in.Time,
			},
		}); err != nil {
			return err
		}

		b = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("booking created",
		zap.String("user_uid", in.UserID),
		zap.Uint("booking_id", b.ID),
		zap.Uint("schedule_id", b.ScheduleID),
	)
	return b, nil
}
