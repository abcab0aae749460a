package audit

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/infra/dberr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	ActionBookingCreated     = "booking_created"
	ActionBookingUpdated     = "booking_updated"
	ActionBookingRescheduled = "booking_rescheduled"
	ActionBookingCancelled   = "booking_cancelled"

	EntityBooking = "booking"
)

type Event struct {
	UserUID  string
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Logger writes audit rows through whatever handle it was built with. Built
// on a transaction, the row commits or rolls back with the mutation it
// describes.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		UserUID:  ev.UserUID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return dberr.Classify(l.db.WithContext(ctx).Create(&row).Error)
}

// ListByUser returns one page of the user's entries, newest first, and the
// total count.
func (l *Logger) ListByUser(
	ctx context.Context,
	userUID string,
	limit int,
	offset int,
) ([]models.AuditLog, int64, error) {

	q := l.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("user_uid = ?", userUID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, dberr.Classify(err)
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		return nil, 0, dberr.Classify(err)
	}

	return logs, total, nil
}
