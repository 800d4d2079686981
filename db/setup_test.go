package db

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/photoshare-dev/photoshare/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestConnectDatabase(t *testing.T) {
	t.Run("SQLite Success", func(t *testing.T) {
		db, err := ConnectDatabase("sqlite://file:setup-success?mode=memory&cache=shared", logger)
		require.NoError(t, err)

		var enabled int
		require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
		assert.Equal(t, 1, enabled)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		_, err := ConnectDatabase("mysql://localhost", logger)
		assert.ErrorContains(t, err, "unsupported database driver")
	})

	t.Run("Invalid SQLite Path", func(t *testing.T) {
		_, err := ConnectDatabase("sqlite:///non/existent/path/db.sqlite", logger)
		assert.Error(t, err)
	})
}

func TestMigrateDatabase(t *testing.T) {
	db, err := ConnectDatabase("sqlite://file:setup-migrate?mode=memory&cache=shared", logger)
	require.NoError(t, err)
	require.NoError(t, MigrateDatabase(db))

	migrator := db.Migrator()

	for _, model := range Models() {
		assert.True(t, migrator.HasTable(model))
	}

	assert.True(t, migrator.HasTable("likes"))
	assert.True(t, migrator.HasTable("collection_posts"))
	assert.True(t, migrator.HasTable("gallery_posts"))
	assert.True(t, migrator.HasIndex(&models.User{}, "Email"))
	assert.True(t, migrator.HasIndex(&models.User{}, "Username"))

	// Running twice is a no-op.
	assert.NoError(t, MigrateDatabase(db))
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "photoshare.db?_pragma=foreign_keys(1)", sqliteDSN("photoshare.db"))
	assert.Equal(t, "file:x?mode=memory&_pragma=foreign_keys(1)", sqliteDSN("file:x?mode=memory"))
	assert.Equal(t, "x?_pragma=foreign_keys(1)", sqliteDSN("x?_pragma=foreign_keys(1)"))
}

func TestGormLogsThroughSlog(t *testing.T) {
	var buf bytes.Buffer
	bufLogger := slog.New(slog.NewTextHandler(&buf, nil))

	db, err := ConnectDatabase("sqlite://file:setup-logger?mode=memory&cache=shared", bufLogger)
	require.NoError(t, err)
	require.NoError(t, MigrateDatabase(db))

	var user models.User
	assert.Error(t, db.First(&user, 999).Error)
	assert.NotContains(t, buf.String(), "record not found")

	assert.Error(t, db.Exec("SELECT * FROM no_such_table").Error)
	assert.Contains(t, buf.String(), "no_such_table")
	assert.Contains(t, buf.String(), "level=WARN")
}
