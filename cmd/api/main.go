// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the movie catalog backend-for-frontend.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from the environment (and .env when present).
//  3. Open the selected remote store (PostgreSQL, PostgREST or in-memory).
//  4. Connect to Redis for durable sessions, or keep them in memory.
//  5. Wire the metadata and subtitle gateways.
//  6. Build the workspace registry and the HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/joho/godotenv"

	"github.com/AliceG32/project-frontend-movies/internal/api"
	"github.com/AliceG32/project-frontend-movies/internal/auth"
	"github.com/AliceG32/project-frontend-movies/internal/gateway/kinopoisk"
	"github.com/AliceG32/project-frontend-movies/internal/gateway/opensubtitles"
	"github.com/AliceG32/project-frontend-movies/internal/platform/config"
	"github.com/AliceG32/project-frontend-movies/internal/platform/confirm"
	"github.com/AliceG32/project-frontend-movies/internal/platform/constants"
	"github.com/AliceG32/project-frontend-movies/internal/platform/migration"
	pgstore "github.com/AliceG32/project-frontend-movies/internal/platform/postgres"
	redisstore "github.com/AliceG32/project-frontend-movies/internal/platform/redis"
	"github.com/AliceG32/project-frontend-movies/internal/platform/sec"
	"github.com/AliceG32/project-frontend-movies/internal/store"
	"github.com/AliceG32/project-frontend-movies/internal/store/memory"
	"github.com/AliceG32/project-frontend-movies/internal/store/postgres"
	"github.com/AliceG32/project-frontend-movies/internal/store/postgrest"
	"github.com/AliceG32/project-frontend-movies/internal/workspace"
)

// gatewayTimeout bounds a single outbound provider request.
const gatewayTimeout = 15 * time.Second

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// A missing .env file is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("dotenv_load_failed", slog.Any("error", err))
	}

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store_backend", cfg.StoreBackend),
	)

	// Root context of background work: counters, eviction, rate limiter cleanup.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Startup deadline so misconfiguration is caught quickly.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. Remote Store ───────────────────────────────────────────────────
	backend, closeStore, err := openStore(startupCtx, cfg, log)
	must(log, err, "open remote store")
	defer closeStore()

	// ── 4. Durable Sessions ───────────────────────────────────────────────
	var storages auth.Storages = auth.NewMemoryStorages()
	var checkSessions func(context.Context) error
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
		storages = auth.NewRedisStorages(rdb)
		checkSessions = func(context context.Context) error { return redisstore.Ping(context, rdb) }
	} else {
		log.Warn("sessions_in_memory", slog.String("reason", "REDIS_URL not set"))
	}

	tokens, err := sec.NewTokenService(cfg.SessionSecret, constants.AuthIssuer)
	must(log, err, "initialize session tokens")

	// ── 5. Gateways ───────────────────────────────────────────────────────
	httpClient := &http.Client{Timeout: gatewayTimeout}
	metadata := kinopoisk.NewClient(cfg.KinopoiskURL, cfg.KinopoiskAPIKey, httpClient, log)
	subtitles := opensubtitles.NewClient(cfg.OpenSubtitlesURL, cfg.OpenSubtitlesAPIKey, cfg.OpenSubtitlesUserAgent, httpClient, log)

	// ── 6. Workspaces & Handlers ──────────────────────────────────────────
	registry := workspace.NewRegistry(rootCtx, workspace.Dependencies{
		Backend:   backend,
		Metadata:  metadata,
		Subtitles: subtitles,
		Storages:  storages,
		Confirmer: confirm.FromContext{},
		Logger:    log,
	}, constants.WorkspaceIdleTTL)
	go registry.Run(rootCtx)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckStore:    backend.Ping,
		CheckSessions: checkSessions,
	}, log)

	server := api.NewServer(rootCtx, cfg, log, tokens, api.NewHandlers(registry, liveness, readiness))

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
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
	}

	rootCancel()
	registry.Close()
	log.Info("server stopped cleanly")
}

// newLogger builds the JSON logger every entry of which carries the app name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String(constants.FieldApp, constants.AppName))
}

// openStore connects the backend named by STORE_BACKEND. The returned func releases it.
func openStore(context context.Context, cfg *config.Config, log *slog.Logger) (store.Backend, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool, err := pgstore.NewPool(context, cfg.DatabaseURL, log)
		if err != nil {
			return store.Backend{}, nil, err
		}
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
			pool.Close()
			return store.Backend{}, nil, err
		}
		return postgres.NewBackend(pool), func() {
			log.Info("closing postgres pool")
			pool.Close()
		}, nil

	case config.BackendPostgREST:
		client := postgrest.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, nil)
		return postgrest.NewBackend(client), func() {}, nil

	default:
		memoryStore := memory.New()
		if cfg.SeedDemo {
			if err := memory.Seed(memoryStore); err != nil {
				return store.Backend{}, nil, err
			}
			log.Info("memory_store_seeded", slog.String("username", memory.DemoUsername))
		}
		return memoryStore.Backend(), func() {}, nil
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
