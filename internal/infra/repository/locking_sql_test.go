package repository

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

// sqlRecorder keeps every statement gorm renders, including dry runs.
type sqlRecorder struct {
	mu    sync.Mutex
	stmts []string
}

func (r *sqlRecorder) LogMode(gormlogger.LogLevel) gormlogger.Interface { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{})     {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})     {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{})    {}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.mu.Lock()
	r.stmts = append(r.stmts, sql)
	r.mu.Unlock()
}

func (r *sqlRecorder) last(t *testing.T) string {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.stmts)
	return r.stmts[len(r.stmts)-1]
}

func (r *sqlRecorder) all() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.stmts, "\n")
}

// openPostgresDryRun renders statements with the postgres dialect without
// connecting anywhere.
func openPostgresDryRun(t *testing.T) (*gorm.DB, *sqlRecorder) {
	t.Helper()

	rec := &sqlRecorder{}
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=booking dbname=booking sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               rec,
	})
	require.NoError(t, err)
	return db, rec
}

func TestPostgresLockingStatements(t *testing.T) {
	db, rec := openPostgresDryRun(t)
	ctx := context.Background()

	schedules := NewScheduleGormRepository(db)
	bookings := NewBookingGormRepository(db)
	available := domain.StatusAvailable
	slot := domain.SlotQuery{BarberID: 7, Date: "2024-01-10", Time: "10:00", Status: &available}

	t.Run("lock slot", func(t *testing.T) {
		_, err := schedules.LockSlot(ctx, slot)
		require.NoError(t, err)

		sql := rec.last(t)
		assert.Contains(t, sql, `"schedules"`)
		assert.Contains(t, sql, "status = 'Available'")
		assert.True(t, strings.HasSuffix(strings.TrimSpace(sql), "FOR UPDATE"), sql)
	})

	t.Run("lock by id", func(t *testing.T) {
		_, err := schedules.LockByID(ctx, 42)
		require.NoError(t, err)
		assert.Contains(t, rec.last(t), "FOR UPDATE")
	})

	t.Run("lock booking", func(t *testing.T) {
		_, err := bookings.FindByUserForUpdate(ctx, "u1")
		require.NoError(t, err)

		sql := rec.last(t)
		assert.Contains(t, sql, `"bookings"`)
		assert.Contains(t, sql, "FOR UPDATE")
	})

	t.Run("plain reads do not lock", func(t *testing.T) {
		_, err := schedules.FindSlot(ctx, slot)
		require.NoError(t, err)
		assert.NotContains(t, rec.last(t), "FOR UPDATE")

		_, err = bookings.FindByUser(ctx, "u1")
		require.NoError(t, err)
		assert.NotContains(t, rec.last(t), "FOR UPDATE")
	})

	t.Run("guarded transition", func(t *testing.T) {
		// dry runs affect no rows, so the guard reports a conflict
		_ = schedules.Transition(ctx, 42, domain.StatusAvailable, domain.StatusReserved)

		sql := rec.last(t)
		assert.Contains(t, sql, `UPDATE "schedules"`)
		assert.Contains(t, sql, "'Reserved'")
		assert.Contains(t, sql, "status = 'Available'")
	})
}

func TestPostgresTransactionTimeouts(t *testing.T) {
	db, rec := openPostgresDryRun(t)

	uow := NewGormUnitOfWork(db, 250*time.Millisecond, 4*time.Second)
	require.NoError(t, uow.applyTimeouts(db))

	sql := rec.all()
	assert.Contains(t, sql, "SET LOCAL lock_timeout = '250ms'")
	assert.Contains(t, sql, "SET LOCAL statement_timeout = '4000ms'")

	rec.stmts = nil
	require.NoError(t, NewGormUnitOfWork(db, 0, 0).applyTimeouts(db))
	assert.Empty(t, rec.all())
}
