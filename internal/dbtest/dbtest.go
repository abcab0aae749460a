// Package dbtest opens throwaway sqlite databases with the production
// schema for tests.
package dbtest

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Open returns a migrated database backed by a file in t.TempDir. The pool
// is capped at one connection so concurrent transactions queue instead of
// failing with SQLITE_BUSY.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "booking.db")
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on", path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() { _ = dbpkg.Close(db) })
	return db
}

// PostgresEnv names the DSN of a disposable postgres used by tests that
// need real row locks and a multi-connection pool.
const PostgresEnv = "BOOKING_TEST_DATABASE_URL"

// OpenPostgres connects to the database named by PostgresEnv and migrates
// it, or skips the test when the variable is unset.
func OpenPostgres(t testing.TB, maxConns int) *gorm.DB {
	t.Helper()

	dsn := os.Getenv(PostgresEnv)
	if dsn == "" {
		t.Skipf("%s not set", PostgresEnv)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(maxConns)

	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() { _ = dbpkg.Close(db) })
	return db
}

// Seed inserts one barber and the given slots, all Available.
func Seed(t testing.TB, db *gorm.DB, barberName string, slots ...[2]string) (models.Barber, []models.Schedule) {
	t.Helper()

	barber := models.Barber{Name: barberName}
	if err := db.Create(&barber).Error; err != nil {
		t.Fatalf("seed barber: %v", err)
	}

	schedules := make([]models.Schedule, 0, len(slots))
	for _, s := range slots {
		sc := models.Schedule{
			BarberID: barber.ID,
			Date:     s[0],
			Time:     s[1],
			Status:   "Available",
		}
		if err := db.Create(&sc).Error; err != nil {
			t.Fatalf("seed schedule: %v", err)
		}
		schedules = append(schedules, sc)
	}

	return barber, schedules
}

// Status reads a slot's current status.
func Status(t testing.TB, db *gorm.DB, scheduleID uint) string {
	t.Helper()

	var s models.Schedule
	if err := db.First(&s, scheduleID).Error; err != nil {
		t.Fatalf("load schedule %d: %v", scheduleID, err)
	}
	return s.Status
}

// AssertPairing fails the test when any slot's status disagrees with the
// presence of a booking referencing it.
func AssertPairing(t testing.TB, db *gorm.DB) {
	t.Helper()

	var schedules []models.Schedule
	if err := db.Find(&schedules).Error; err != nil {
		t.Fatalf("load schedules: %v", err)
	}

	for _, s := range schedules {
		var n int64
		if err := db.Model(&models.Booking{}).Where("schedule_id = ?", s.ID).Count(&n).Error; err != nil {
			t.Fatalf("count bookings: %v", err)
		}

		switch {
		case s.Status == "Reserved" && n != 1:
			t.Errorf("schedule %d is Reserved with %d bookings", s.ID, n)
		case s.Status == "Available" && n != 0:
			t.Errorf("schedule %d is Available with %d bookings", s.ID, n)
		}
	}
}
