package booking

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Lookups return (nil, nil) when nothing matches.

type ScheduleStore interface {
	ListByBarber(ctx context.Context, barberID uint) ([]models.Schedule, error)
	ListAvailableByBarber(ctx context.Context, barberID uint) ([]models.Schedule, error)

	FindSlot(ctx context.Context, q SlotQuery) (*models.Schedule, error)

	// LockSlot is FindSlot holding a row lock until the transaction ends.
	LockSlot(ctx context.Context, q SlotQuery) (*models.Schedule, error)
	LockByID(ctx context.Context, id uint) (*models.Schedule, error)

	SetStatus(ctx context.Context, id uint, status Status) error

	// Transition moves a slot from one status to another and fails with a
	// conflict when the row is not in the expected status.
	Transition(ctx context.Context, id uint, from, to Status) error
}

type BookingStore interface {
	FindByUser(ctx context.Context, userID string) (*models.Booking, error)
	FindByUserForUpdate(ctx context.Context, userID string) (*models.Booking, error)
	FindViewByUser(ctx context.Context, userID string) (*dto.BookingView, error)

	Insert(ctx context.Context, b *models.Booking) error
	UpdateFields(ctx context.Context, bookingID uint, name, phone string) error
	Reassign(ctx context.Context, bookingID, scheduleID uint) error

	// Delete removes a booking the caller already holds locked.
	Delete(ctx context.Context, bookingID uint) error

	// DeleteByUser removes the user's booking and returns the freed slot id.
	DeleteByUser(ctx context.Context, userID string) (uint, error)
}

type BarberStore interface {
	List(ctx context.Context) ([]models.Barber, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type AuditRecorder interface {
	Log(ctx context.Context, ev audit.Event) error
}

// Tx exposes stores bound to one transaction.
type Tx interface {
	Schedules() ScheduleStore
	Bookings() BookingStore
	Audit() AuditRecorder
}

// UnitOfWork runs fn inside a single transaction. The transaction commits
// only if fn returns nil; any error or cancelled context rolls back every
// write fn made.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(tx Tx) error) error
}
