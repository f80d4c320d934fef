package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bbolt "go.etcd.io/bbolt"

	"arena-notices/internal/adapter/bolt"
	httpadapter "arena-notices/internal/adapter/http"
	"arena-notices/internal/adapter/postgres"
	"arena-notices/internal/adapter/usecase"
	"arena-notices/internal/config"
	"arena-notices/internal/core/domain"
	"arena-notices/internal/db"
	"arena-notices/internal/metrics"
)

// main is the entry point of the notice engine. It loads configuration,
// optionally runs database migrations, initializes the database pool,
// the frequency-cap store and the engine, then starts the HTTP server.
// On receiving a termination signal it gracefully shuts down the server
// and cancels any live display sessions.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		// Initialise structured logger based on configuration.
		var handler slog.Handler
		level := cfg.Log.SlogLevel()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		default:
			handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		}
		logger = slog.New(handler)
	}

	// Optionally run migrations if configured. We use the Psql sub-config.
	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
		} else {
			logger.Info("migrations applied successfully")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Psql.SeedDemo {
		if err = db.Seed(ctx, pool); err != nil {
			logger.Error("seed error", slog.Any("error", err))
		} else {
			logger.Info("demo notices seeded")
		}
	}

	boltDB, err := bbolt.Open(cfg.Bolt.Path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		logger.Error("cap store open error", slog.Any("error", err))
		os.Exit(1)
	}
	defer boltDB.Close()

	capStore, err := bolt.NewStore(boltDB)
	if err != nil {
		logger.Error("cap store init error", slog.Any("error", err))
		os.Exit(1)
	}

	repo := postgres.NewNoticeRepository(pool)
	m := metrics.New()

	preferred := make([]domain.DisplayMode, 0, len(cfg.Engine.PreferredDisplayModes))
	for _, mode := range cfg.Engine.PreferredDisplayModes {
		preferred = append(preferred, domain.DisplayMode(mode))
	}
	engine := usecase.NewNoticeEngine(repo, repo, capStore, usecase.Config{
		MaxConcurrentNotices: cfg.Engine.MaxConcurrentNotices,
		EnableAnalytics:      cfg.Engine.EnableAnalytics,
		DailyDisplayLimit:    cfg.Engine.DailyDisplayLimit,
		PreferredModes:       preferred,
	}, logger, nil, m)

	handler := httpadapter.NewHandler(engine, logger, m)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	value := <-quit
	exitCode = 128 + int(value.(syscall.Signal))

	engine.Shutdown()

	ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
