// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/photoshare-dev/photoshare/db"
	"gorm.io/gorm"
)

func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewDB returns a migrated, private in-memory sqlite database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	url := "sqlite://file:" + uuid.NewString() + "?mode=memory&cache=shared"

	conn, err := db.ConnectDatabase(url, Logger())
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.MigrateDatabase(conn); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return conn
}
