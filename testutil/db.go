// Package testutil holds helpers shared by package tests.
package testutil

import (
	"io"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-orders/database"
	"github.com/yeremiapane/restaurant-orders/utils"
)

// OpenDB returns a migrated SQLite database private to the test. Foreign keys
// are enforced so cascades behave as they do in production.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()
	QuietLogs()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig())
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// QuietLogs discards logger output for the test binary.
func QuietLogs() {
	utils.InitLoggerTo(io.Discard, io.Discard)
}
