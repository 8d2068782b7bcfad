// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barberia-api/internal/db"
	"github.com/BruksfildServices01/barberia-api/internal/models"
)

// NewDB returns a migrated in-memory sqlite database private to t, with
// foreign keys enforced like in postgres. The pool is pinned to one
// connection: every new connection to ":memory:" would otherwise see an
// empty database, and the foreign_keys pragma is per connection.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := gdb.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return gdb
}

func CreateUser(t *testing.T, gdb *gorm.DB, u models.User) models.User {
	t.Helper()
	if u.Role == "" {
		u.Role = "cliente"
	}
	if u.PasswordHash == "" {
		u.PasswordHash = "x"
	}
	if err := gdb.Create(&u).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return u
}

func CreateService(t *testing.T, gdb *gorm.DB, s models.Service) models.Service {
	t.Helper()
	if err := gdb.Create(&s).Error; err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	return s
}
