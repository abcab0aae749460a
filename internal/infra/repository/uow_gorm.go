package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/apperr"
	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/infra/dberr"
)

type GormUnitOfWork struct {
	db               *gorm.DB
	lockTimeout      time.Duration
	statementTimeout time.Duration
}

func NewGormUnitOfWork(
	db *gorm.DB,
	lockTimeout time.Duration,
	statementTimeout time.Duration,
) *GormUnitOfWork {
	return &GormUnitOfWork{
		db:               db,
		lockTimeout:      lockTimeout,
		statementTimeout: statementTimeout,
	}
}

type gormTx struct {
	schedules *ScheduleGormRepository
	bookings  *BookingGormRepository
	audit     *audit.Logger
}

func (t *gormTx) Schedules() domain.ScheduleStore { return t.schedules }
func (t *gormTx) Bookings() domain.BookingStore   { return t.bookings }
func (t *gormTx) Audit() domain.AuditRecorder     { return t.audit }

func (u *GormUnitOfWork) Do(
	ctx context.Context,
	fn func(tx domain.Tx) error,
) (err error) {

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return dberr.Classify(tx.Error)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
		// database/sql already rolled back when ctx was cancelled
		if rbErr := tx.Rollback().Error; rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = apperr.Internal("rollback_failed", errors.Join(err, rbErr))
		}
	}()

	if err := u.applyTimeouts(tx); err != nil {
		return dberr.Classify(err)
	}

	if err := fn(&gormTx{
		schedules: NewScheduleGormRepository(tx),
		bookings:  NewBookingGormRepository(tx),
		audit:     audit.New(tx),
	}); err != nil {
		return dberr.Classify(err)
	}

	if err := tx.Commit().Error; err != nil {
		committed = true
		return dberr.Classify(err)
	}
	committed = true
	return nil
}

// applyTimeouts bounds how long a statement may wait on a row lock. Only
// postgres understands SET LOCAL; other dialects rely on their busy timeout.
func (u *GormUnitOfWork) applyTimeouts(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	if u.lockTimeout > 0 {
		if err := tx.Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", u.lockTimeout.Milliseconds())).Error; err != nil {
			return err
		}
	}
	if u.statementTimeout > 0 {
		if err := tx.Exec(fmt.Sprintf("SET LOCAL statement_timeout = '%dms'", u.statementTimeout.Milliseconds())).Error; err != nil {
			return err
		}
	}
	return nil
}

var _ domain.UnitOfWork = (*GormUnitOfWork)(nil)
