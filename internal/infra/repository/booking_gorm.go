package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/infra/dberr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *BookingGormRepository) FindByUser(
	ctx context.Context,
	userID string,
) (*models.Booking, error) {
	return r.findByUser(r.db.WithContext(ctx), userID)
}

func (r *BookingGormRepository) FindByUserForUpdate(
	ctx context.Context,
	userID string,
) (*models.Booking, error) {
	return r.findByUser(
		r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		userID,
	)
}

func (r *BookingGormRepository) findByUser(
	db *gorm.DB,
	userID string,
) (*models.Booking, error) {

	var b models.Booking
	err := db.Where("user_uid = ?", userID).Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Classify(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) FindViewByUser(
	ctx context.Context,
	userID string,
) (*dto.BookingView, error) {

	var view dto.BookingView
	res := r.db.WithContext(ctx).
		Table("bookings").
		Select(
			"bookings.schedule_id AS schedule_id, " +
				"schedules.barber_id AS barber_id, " +
				"barbers.name AS barber, " +
				"schedules.date AS date, " +
				"schedules.time AS time, " +
				"bookings.name AS name, " +
				"bookings.phone_number AS phone_number",
		).
		Joins("JOIN schedules ON schedules.id = bookings.schedule_id").
		Joins("JOIN barbers ON barbers.id = schedules.barber_id").
		Where("bookings.user_uid = ?", userID).
		Limit(1).
		Scan(&view)

	if res.Error != nil {
		return nil, dberr.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &view, nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *BookingGormRepository) Insert(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Create(b).Error
	if err == nil {
		return nil
	}

	if dup, detail := dberr.DuplicateKey(err); dup {
		if strings.Contains(detail, "user_uid") {
			return domain.ErrUserHasReservation()
		}
		return domain.CanReserve(domain.StatusReserved)
	}
	return dberr.Classify(err)
}

func (r *BookingGormRepository) UpdateFields(
	ctx context.Context,
	bookingID uint,
	name string,
	phone string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Updates(map[string]any{
			"name":         name,
			"phone_number": phone,
		})
	if res.Error != nil {
		return dberr.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNoReservation()
	}
	return nil
}

func (r *BookingGormRepository) Reassign(
	ctx context.Context,
	bookingID uint,
	scheduleID uint,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("schedule_id", scheduleID)
	if res.Error != nil {
		if dup, _ := dberr.DuplicateKey(res.Error); dup {
			return domain.CanReserve(domain.StatusReserved)
		}
		return dberr.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNoReservation()
	}
	return nil
}

func (r *BookingGormRepository) DeleteByUser(
	ctx context.Context,
	userID string,
) (uint, error) {

	b, err := r.FindByUserForUpdate(ctx, userID)
	if err != nil {
		return 0, err
	}
	if b == nil {
		return 0, domain.ErrNoReservation()
	}

	if err := r.Delete(ctx, b.ID); err != nil {
		return 0, err
	}
	return b.ScheduleID, nil
}

func (r *BookingGormRepository) Delete(
	ctx context.Context,
	bookingID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ?", bookingID).
		Delete(&models.Booking{})
	if res.Error != nil {
		return dberr.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNoReservation()
	}
	return nil
}

// Compile-time check
var _ domain.BookingStore = (*BookingGormRepository)(nil)
