// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the SocialLink HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the data source: PostgreSQL, Redis, migrations and object storage
//     for live, seeded memory for demo.
//  4. Build the token service.
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/sociallink/internal/api"
	"github.com/taibuivan/sociallink/internal/datasource"
	"github.com/taibuivan/sociallink/internal/platform/blob"
	"github.com/taibuivan/sociallink/internal/platform/config"
	"github.com/taibuivan/sociallink/internal/platform/constants"
	"github.com/taibuivan/sociallink/internal/platform/migration"
	pgstore "github.com/taibuivan/sociallink/internal/platform/postgres"
	redisstore "github.com/taibuivan/sociallink/internal/platform/redis"
	"github.com/taibuivan/sociallink/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", "sociallink"))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "sociallink"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("data_source", cfg.DataSource),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Data Source ────────────────────────────────────────────────────
	source, cleanup := openDataSource(startupCtx, cfg, log)
	defer cleanup()

	// ── 4. Tokens ─────────────────────────────────────────────────────────
	var tokens *sec.TokenService
	if cfg.JWTPrivKeyPath != "" {
		tokens, err = sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	} else {
		log.Warn("jwt_ephemeral_key", slog.String("reason", "no key paths configured, tokens will not survive a restart"))
		tokens, err = sec.NewEphemeralTokenService(constants.AuthIssuer)
	}
	must(log, err, "initialize jwt service")

	// ── 5. Handlers ───────────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		Source:        string(source.Kind),
		CheckDatabase: source.CheckDatabase,
		CheckCache:    source.CheckCache,
	}, log)

	handlers := wireHandlers(cfg, source, tokens, paymentGateways(cfg, log))
	handlers.Liveness = liveness
	handlers.Readiness = readiness

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, tokens, handlers)

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("server_shutting_down", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		cleanup()
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// openDataSource builds the configured data source. The returned cleanup closes
// everything opened here, in reverse order.
func openDataSource(context context.Context, cfg *config.Config, log *slog.Logger) (*datasource.DataSource, func()) {
	if cfg.IsDemo() {
		source, err := datasource.NewDemo()
		must(log, err, "seed demo data source")
		log.Warn("demo_data_source_active", slog.String("login", datasource.DemoEmail))
		return source, source.Close
	}

	// PostgreSQL
	pool, err := pgstore.NewPool(context, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")

	// Redis
	rdb, err := redisstore.NewClient(context, cfg.RedisURL, log)
	must(log, err, "connect to redis")

	// Migrations
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// Object storage is optional; without it uploads stay inline in PostgreSQL.
	var blobs blob.Store
	if cfg.HasObjectStorage() {
		store, err := blob.NewS3Store(context, blob.S3Options{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
		must(log, err, "configure object storage")
		blobs = store
	}

	source, err := datasource.NewLive(pool, rdb, blobs, cfg.ProfileCacheTTL)
	must(log, err, "build live data source")

	var closed bool
	return source, func() {
		if closed {
			return
		}
		closed = true
		source.Close()
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_error", slog.Any("error", cerr))
		}
		log.Info("closing_postgres_pool")
		pool.Close()
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
