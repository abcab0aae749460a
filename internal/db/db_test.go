package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "db.sqlite")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestPrepareMigrates(t *testing.T) {
	db := openSQLite(t)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, prepare(context.Background(), db, &config.Config{DBMaxOpenConns: 2, DBMaxIdleConns: 1}))

	assert.True(t, db.Migrator().HasTable(&models.Booking{}))
	assert.NoError(t, Ping(context.Background(), db))
}

func TestPrepareClosesPoolOnFailure(t *testing.T) {
	db := openSQLite(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := prepare(ctx, db, &config.Config{DBMaxOpenConns: 2, DBMaxIdleConns: 1})
	require.Error(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.ErrorContains(t, sqlDB.Ping(), "database is closed")
}
