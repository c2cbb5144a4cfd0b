// Package testkit holds fixtures shared by package tests.
package testkit

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tracker/internal/repository"
)

// NewDB opens a private in-memory SQLite database with the full schema and
// foreign keys enabled. It is closed when the test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := repository.NewDB(dsn)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test database: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}
