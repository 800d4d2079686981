package db

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/photoshare-dev/photoshare/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectDatabase opens postgres:// and postgresql:// URLs with the postgres
// driver and sqlite://<path> with the pure Go sqlite driver.
func ConnectDatabase(databaseURL string, logger *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	var isSQLite bool

	switch {
	case strings.HasPrefix(databaseURL, "postgres"):
		dialector = postgres.Open(databaseURL)
	case strings.HasPrefix(databaseURL, "sqlite://"):
		dialector = sqlite.Open(sqliteDSN(strings.TrimPrefix(databaseURL, "sqlite://")))
		isSQLite = true
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", databaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(logger),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if isSQLite {
		sqlDB, err := db.DB()

		if err != nil {
			return nil, err
		}

		// sqlite serialises writers anyway; a single connection also keeps
		// in-memory databases alive for the lifetime of the pool.
		sqlDB.SetMaxOpenConns(1)

		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	logger.Debug("Connected to database", "driver", dialector.Name())

	return db, nil
}

// newGormLogger sends gorm's warnings (slow queries, errors other than a
// missing row) through the application logger.
func newGormLogger(logger *slog.Logger) gormlogger.Interface {
	return gormlogger.New(
		slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "_pragma=foreign_keys") {
		return path
	}

	if strings.Contains(path, "?") {
		return path + "&_pragma=foreign_keys(1)"
	}

	return path + "?_pragma=foreign_keys(1)"
}

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Post{},
		&models.Liked{},
		&models.Collection{},
		&models.Comment{},
		&models.Gallery{},
		&models.Visitor{},
	}
}

func MigrateDatabase(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}
