package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/apperr"
	"github.com/BruksfildServices01/barber-booking/internal/dbtest"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestScheduleListingOrder(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	barber, slots := dbtest.Seed(t, db, "Ana",
		[2]string{"2024-01-11", "09:00"},
		[2]string{"2024-01-10", "11:00"},
		[2]string{"2024-01-10", "10:00"},
	)
	dbtest.Seed(t, db, "Bruno", [2]string{"2024-01-10", "08:00"})

	repo := NewScheduleGormRepository(db)
	require.NoError(t, repo.SetStatus(ctx, slots[2].ID, domain.StatusReserved))

	all, err := repo.ListByBarber(ctx, barber.ID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uint{slots[2].ID, slots[1].ID, slots[0].ID},
		[]uint{all[0].ID, all[1].ID, all[2].ID})

	available, err := repo.ListAvailableByBarber(ctx, barber.ID)
	require.NoError(t, err)
	require.Len(t, available, 2)
	assert.Equal(t, slots[1].ID, available[0].ID)
	assert.Equal(t, slots[0].ID, available[1].ID)

	none, err := repo.ListByBarber(ctx, 999)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestFindSlotWithStatus(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	barber, slots := dbtest.Seed(t, db, "Ana", [2]string{"2024-01-10", "10:00"})
	repo := NewScheduleGormRepository(db)

	available := domain.StatusAvailable
	reserved := domain.StatusReserved
	q := domain.SlotQuery{BarberID: barber.ID, Date: "2024-01-10", Time: "10:00"}

	got, err := repo.FindSlot(ctx, q)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, slots[0].ID, got.ID)

	q.Status = &reserved
	got, err = repo.FindSlot(ctx, q)
	require.NoError(t, err)
	assert.Nil(t, got)

	q.Status = &available
	got, err = repo.LockSlot(ctx, q)
	require.NoError(t, err)
	require.NotNil(t, got)

	q.Time = "12:00"
	got, err = repo.FindSlot(ctx, q)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTransitionIsGuarded(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	_, slots := dbtest.Seed(t, db, "Ana", [2]string{"2024-01-10", "10:00"})
	repo := NewScheduleGormRepository(db)
	id := slots[0].ID

	require.NoError(t, repo.Transition(ctx, id, domain.StatusAvailable, domain.StatusReserved))
	assert.Equal(t, "Reserved", dbtest.Status(t, db, id))

	err := repo.Transition(ctx, id, domain.StatusAvailable, domain.StatusReserved)
	assert.True(t, apperr.IsCode(err, domain.CodeScheduleReserved))

	require.NoError(t, repo.Transition(ctx, id, domain.StatusReserved, domain.StatusAvailable))
	err = repo.Transition(ctx, id, domain.StatusReserved, domain.StatusAvailable)
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	err = repo.SetStatus(ctx, 999, domain.StatusAvailable)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestBookingStore(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	_, slots := dbtest.Seed(t, db, "Ana",
		[2]string{"2024-01-10", "10:00"},
		[2]string{"2024-01-10", "11:00"},
	)
	repo := NewBookingGormRepository(db)

	b := &models.Booking{ScheduleID: slots[0].ID, UserUID: "u1", Name: "Jo", PhoneNumber: "555-1111"}
	require.NoError(t, repo.Insert(ctx, b))
	assert.NotZero(t, b.ID)

	t.Run("duplicate schedule", func(t *testing.T) {
		err := repo.Insert(ctx, &models.Booking{ScheduleID: slots[0].ID, UserUID: "u2", Name: "Max", PhoneNumber: "555-2222"})
		assert.True(t, apperr.IsCode(err, domain.CodeScheduleReserved), err)
	})

	t.Run("duplicate user", func(t *testing.T) {
		err := repo.Insert(ctx, &models.Booking{ScheduleID: slots[1].ID, UserUID: "u1", Name: "Jo", PhoneNumber: "555-1111"})
		assert.True(t, apperr.IsCode(err, domain.CodeUserHasReservation), err)
	})

	t.Run("update and reassign", func(t *testing.T) {
		require.NoError(t, repo.UpdateFields(ctx, b.ID, "Joanna", "555-9999"))
		require.NoError(t, repo.Reassign(ctx, b.ID, slots[1].ID))

		got, err := repo.FindByUser(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Joanna", got.Name)
		assert.Equal(t, "555-9999", got.PhoneNumber)
		assert.Equal(t, slots[1].ID, got.ScheduleID)

		assert.True(t, apperr.Is(repo.UpdateFields(ctx, 999, "x", "5551111"), apperr.KindNotFound))
	})

	t.Run("view", func(t *testing.T) {
		view, err := repo.FindViewByUser(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, view)
		assert.Equal(t, "Ana", view.Barber)
		assert.Equal(t, "2024-01-10", view.Date)
		assert.Equal(t, "11:00", view.Time)
		assert.Equal(t, "Joanna", view.Name)

		missing, err := repo.FindViewByUser(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("delete", func(t *testing.T) {
		scheduleID, err := repo.DeleteByUser(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, slots[1].ID, scheduleID)

		_, err = repo.DeleteByUser(ctx, "u1")
		assert.True(t, apperr.IsCode(err, domain.CodeNoReservation))
	})

	t.Run("delete by id", func(t *testing.T) {
		b := &models.Booking{ScheduleID: slots[0].ID, UserUID: "u3", Name: "Al", PhoneNumber: "555-3333"}
		require.NoError(t, repo.Insert(ctx, b))

		require.NoError(t, repo.Delete(ctx, b.ID))
		gone, err := repo.FindByUser(ctx, "u3")
		require.NoError(t, err)
		assert.Nil(t, gone)

		assert.True(t, apperr.IsCode(repo.Delete(ctx, b.ID), domain.CodeNoReservation))
	})
}

func TestBarberStore(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	repo := NewBarberGormRepository(db)

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	b1, _ := dbtest.Seed(t, db, "Ana")
	b2, _ := dbtest.Seed(t, db, "Bruno")

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b1.ID, list[0].ID)
	assert.Equal(t, b2.ID, list[1].ID)

	ok, err := repo.Exists(ctx, b2.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUnitOfWorkRollsBack(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	_, slots := dbtest.Seed(t, db, "Ana", [2]string{"2024-01-10", "10:00"})
	uow := NewGormUnitOfWork(db, 0, 0)

	boom := errors.New("boom")
	err := uow.Do(ctx, func(tx domain.Tx) error {
		if err := tx.Bookings().Insert(ctx, &models.Booking{
			ScheduleID: slots[0].ID, UserUID: "u1", Name: "Jo", PhoneNumber: "555-1111",
		}); err != nil {
			return err
		}
		if err := tx.Schedules().Transition(ctx, slots[0].ID, domain.StatusAvailable, domain.StatusReserved); err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.True(t, apperr.Is(err, apperr.KindInternal))
	assert.Equal(t, "Available", dbtest.Status(t, db, slots[0].ID))

	var n int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestUnitOfWorkCancelledContext(t *testing.T) {
	db := dbtest.Open(t)
	_, slots := dbtest.Seed(t, db, "Ana", [2]string{"2024-01-10", "10:00"})
	uow := NewGormUnitOfWork(db, 0, 0)

	ctx, cancel := context.WithCancel(context.Background())
	err := uow.Do(ctx, func(tx domain.Tx) error {
		if err := tx.Schedules().SetStatus(ctx, slots[0].ID, domain.StatusReserved); err != nil {
			return err
		}
		cancel()
		return ctx.Err()
	})

	assert.True(t, apperr.Is(err, apperr.KindTransient), err)
	assert.Equal(t, "Available", dbtest.Status(t, db, slots[0].ID))
}
