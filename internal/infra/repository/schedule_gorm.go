package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/apperr"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/infra/dberr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const scheduleOrder = "date ASC, time ASC, id ASC"

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *ScheduleGormRepository) ListByBarber(
	ctx context.Context,
	barberID uint,
) ([]models.Schedule, error) {

	schedules := []models.Schedule{}
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order(scheduleOrder).
		Find(&schedules).Error; err != nil {
		return nil, dberr.Classify(err)
	}
	return schedules, nil
}

func (r *ScheduleGormRepository) ListAvailableByBarber(
	ctx context.Context,
	barberID uint,
) ([]models.Schedule, error) {

	schedules := []models.Schedule{}
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND status = ?", barberID, string(domain.StatusAvailable)).
		Order(scheduleOrder).
		Find(&schedules).Error; err != nil {
		return nil, dberr.Classify(err)
	}
	return schedules, nil
}

// --------------------------------------------------
// Lookup
// --------------------------------------------------

func (r *ScheduleGormRepository) FindSlot(
	ctx context.Context,
	q domain.SlotQuery,
) (*models.Schedule, error) {
	return r.findSlot(r.db.WithContext(ctx), q)
}

func (r *ScheduleGormRepository) LockSlot(
	ctx context.Context,
	q domain.SlotQuery,
) (*models.Schedule, error) {
	return r.findSlot(
		r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		q,
	)
}

func (r *ScheduleGormRepository) LockByID(
	ctx context.Context,
	id uint,
) (*models.Schedule, error) {

	var s models.Schedule
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&s).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Classify(err)
	}
	return &s, nil
}

func (r *ScheduleGormRepository) findSlot(
	db *gorm.DB,
	q domain.SlotQuery,
) (*models.Schedule, error) {

	db = db.Where(
		"barber_id = ? AND date = ? AND time = ?",
		q.BarberID, q.Date, q.Time,
	)
	if q.Status != nil {
		db = db.Where("status = ?", string(*q.Status))
	}

	var s models.Schedule
	err := db.Order("id ASC").Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Classify(err)
	}
	return &s, nil
}

// --------------------------------------------------
// Status writes
// --------------------------------------------------

func (r *ScheduleGormRepository) SetStatus(
	ctx context.Context,
	id uint,
	status domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Schedule{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return dberr.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("schedule_not_found", "Schedule not found")
	}
	return nil
}

func (r *ScheduleGormRepository) Transition(
	ctx context.Context,
	id uint,
	from domain.Status,
	to domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Schedule{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if res.Error != nil {
		return dberr.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		if from == domain.StatusAvailable {
			return domain.CanReserve(domain.StatusReserved)
		}
		return domain.CanRelease(domain.StatusAvailable)
	}
	return nil
}

// Compile-time check
var _ domain.ScheduleStore = (*ScheduleGormRepository)(nil)
