// Package databasetest provides migrated databases for tests.
package databasetest

import (
	"os"
	"path/filepath"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"recibos/internal/database"
)

// New returns a migrated database for tests.
// It uses TEST_DATABASE_URL when set, otherwise a throwaway SQLite file whose
// transactions take the write lock on BEGIN so concurrent writers serialize.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	var dialector gorm.Dialector
	if dbURL := os.Getenv("TEST_DATABASE_URL"); dbURL != "" {
		dialector = postgres.Open(dbURL)
	} else {
		path := filepath.Join(t.TempDir(), "recibos.db")
		dialector = sqlite.Open(path + "?_txlock=immediate&_busy_timeout=10000&_foreign_keys=on")
	}

	db, err := database.Open(dialector)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if os.Getenv("TEST_DATABASE_URL") != "" {
		CleanupTables(t, db)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// CleanupTables truncates all tables for a clean test state.
func CleanupTables(t *testing.T, db *gorm.DB) {
	t.Helper()

	for _, table := range []string{"receipts", "receipt_sequences", "audit_logs"} {
		if err := db.Exec("TRUNCATE TABLE " + table + " CASCADE").Error; err != nil {
			t.Fatalf("failed to truncate table %s: %v", table, err)
		}
	}
}
