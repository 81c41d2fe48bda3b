// Copyright (c) 2026 Travelpack. All rights reserved.

// Command api is the entry point for the Travelpack HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis when configured.
//  5. Run database migrations (idempotent).
//  6. Build the token service, metrics and generative collaborator.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/travelpack/travelpack/internal/api"
	"github.com/travelpack/travelpack/internal/auth"
	"github.com/travelpack/travelpack/internal/generative"
	"github.com/travelpack/travelpack/internal/platform/config"
	"github.com/travelpack/travelpack/internal/platform/constants"
	"github.com/travelpack/travelpack/internal/platform/metrics"
	"github.com/travelpack/travelpack/internal/platform/migration"
	pgstore "github.com/travelpack/travelpack/internal/platform/postgres"
	redisstore "github.com/travelpack/travelpack/internal/platform/redis"
	"github.com/travelpack/travelpack/internal/platform/sec"
	"github.com/travelpack/travelpack/internal/trip"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("cache_enabled", cfg.RedisURL != ""),
		slog.Int("trusted_proxies", len(cfg.TrustedProxies)),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer startupCancel()

	// Lives until shutdown; stops background sweepers.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log, cfg.Debug), "run migrations")

	// ── 6. Shared Services ────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer, constants.SessionTokenTTL, constants.MinTokenSecretLength)
	must(log, err, "initialize token service")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collected := metrics.NewMetrics(registry)

	gemini, err := generative.NewGemini(startupCtx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.CollaboratorTimeout)
	must(log, err, "initialize gemini client")
	collaborator := generative.NewInstrumented(gemini, collected)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	health := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
	}

	tripOptions := []trip.Option{trip.WithCacheObserver(collected)}
	if rdb != nil {
		tripOptions = append(tripOptions, trip.WithSuggestionCache(trip.NewRedisSuggestionCache(rdb, cfg.SuggestionCacheTTL)))
		health.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	}

	authService := auth.NewService(auth.NewUserRepository(pool), tokens, log)
	tripService := trip.NewService(trip.NewPostgresRepository(pool), collaborator, log, tripOptions...)

	liveness, readiness := api.NewHealthHandlers(health, log)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(appCtx, cfg, log,
		api.Gate{Verifier: tokens, Resolver: authService},
		collected,
		api.Handlers{
			Liveness:  liveness,
			Readiness: readiness,
			Metrics:   metrics.Handler(registry),
			Auth:      auth.NewHandler(authService),
			Trip:      trip.NewHandler(tripService),
		},
	)

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
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
