package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/photoshare-dev/photoshare/db"
	"github.com/photoshare-dev/photoshare/internal/auth"
	"github.com/photoshare-dev/photoshare/internal/config"
	"github.com/photoshare-dev/photoshare/internal/handlers"
	"github.com/photoshare-dev/photoshare/internal/middleware"
	"github.com/photoshare-dev/photoshare/internal/router"
	"github.com/photoshare-dev/photoshare/internal/storage"
	"github.com/photoshare-dev/photoshare/internal/store"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error

	if len(os.Args) > 1 && os.Args[1] == "createsuperuser" {
		err = CreateSuperuser(ctx, os.Args[2:])
	} else {
		err = Run(ctx)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads .env and config, builds the logger and opens the migrated
// database.
func setup() (config.Config, *slog.Logger, *gorm.DB, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return config.Config{}, nil, nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	conn, err := db.ConnectDatabase(cfg.DatabaseURL, logger)
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("failed to connect database: %w", err)
	}

	logger.Info("Running database migrations...")
	if err := db.MigrateDatabase(conn); err != nil {
		return cfg, nil, nil, fmt.Errorf("migration failed: %w", err)
	}

	return cfg, logger, conn, nil
}

func newFileStore(cfg config.Config, logger *slog.Logger) (storage.FileStore, error) {
	switch cfg.StorageDriver {
	case "s3":
		return storage.NewS3Store(cfg.S3Bucket, cfg.S3Region, cfg.S3BaseURL, logger)
	default:
		return storage.NewLocalStore(cfg.MediaRoot, cfg.MediaURL)
	}
}

func Run(ctx context.Context) error {
	cfg, logger, conn, err := setup()
	if err != nil {
		return err
	}

	st := store.New(conn, logger)

	fileStore, err := newFileStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize file storage: %w", err)
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	if err != nil {
		return fmt.Errorf("failed to initialize tokens: %w", err)
	}

	rateLimiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, logger)

	h := handlers.NewHandler(cfg, logger, st, tokens, storage.NewUploader(fileStore, logger))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.NewRouter(cfg, h, tokens, st, rateLimiter)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	rateLimiter.StartCleanup(workerCtx, 10*time.Minute)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	if sqlDB, err := conn.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info("Server exiting")
	return nil
}

// CreateSuperuser handles `photoshare createsuperuser -email ... -username ...`.
// The password comes from -password or PHOTOSHARE_SUPERUSER_PASSWORD.
func CreateSuperuser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("createsuperuser", flag.ContinueOnError)
	email := fs.String("email", "", "administrator email")
	username := fs.String("username", "", "administrator username")
	password := fs.String("password", os.Getenv("PHOTOSHARE_SUPERUSER_PASSWORD"), "administrator password")

	if err := fs.Parse(args); err != nil {
		return err
	}

	_, logger, conn, err := setup()
	if err != nil {
		return err
	}

	user, err := store.New(conn, logger).CreateSuperuser(ctx, *email, *username, *password)
	if err != nil {
		return fmt.Errorf("failed to create superuser: %w", err)
	}

	logger.Info("Superuser created", "user_id", user.ID, "user", user.String())
	return nil
}
