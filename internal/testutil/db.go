// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"chatboard/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB returns an in-memory sqlite database with the application schema.
// The pool is pinned to a single connection so every query sees the same
// in-memory database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := database.GormConfig("test")
	cfg.Logger = gormlogger.Discard

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), cfg)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
