// Package testdb opens isolated in-memory databases for tests
package testdb

import (
	"testing"

	"eduhub-records/internal/adapters/persistence/models"
	"eduhub-records/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated, empty in-memory database unique to the test
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

// Seeded returns a migrated database with the lookup vocabularies seeded
func Seeded(t testing.TB) *gorm.DB {
	t.Helper()

	db := Open(t)
	require.NoError(t, config.SeedMasterData(db))
	return db
}
