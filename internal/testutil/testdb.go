// Package testutil holds shared fixtures for package tests: an in-memory
// SQLite store with the production schema and an httptest server helper.
package testutil

import (
	"testing"

	"propmatch_backend/internal/database"

	"gorm.io/gorm"
)

// NewTestDB opens a private in-memory database with every table migrated.
// The single-connection pool keeps the memory database alive for the test.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(database.Options{
		Driver: database.DriverSQLite,
		DSN:    ":memory:",
		Env:    "test",
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
