// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/docstore"
)

// OpenSQLite opens a private in-memory SQLite database that lives until the test ends.
func OpenSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

// NewStore returns a migrated document store backed by OpenSQLite.
func NewStore(t testing.TB) *docstore.GormStore {
	t.Helper()

	store := docstore.NewGormStore(OpenSQLite(t))
	require.NoError(t, store.Migrate())
	return store
}
