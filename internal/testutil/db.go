// Package testutil provides shared helpers for package-level tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/brushworks/fieldops-api/internal/database"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dbCounter gives each test database a unique name so parallel tests
// never share state. cache=shared keeps the database alive across the
// connections in gorm's pool.
var dbCounter atomic.Int64

// SetupTestDB opens an isolated in-memory database and migrates the full
// schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	require.NoError(t, database.AutoMigrate(db), "failed to migrate test schema")

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}
