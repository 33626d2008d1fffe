// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the vital records transcription server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire the reference tables, the family tree and the record pages.
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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taibuivan/ontvitals/internal/api"
	"github.com/taibuivan/ontvitals/internal/familytree"
	"github.com/taibuivan/ontvitals/internal/platform/config"
	"github.com/taibuivan/ontvitals/internal/platform/constants"
	"github.com/taibuivan/ontvitals/internal/platform/metrics"
	"github.com/taibuivan/ontvitals/internal/platform/migration"
	pgstore "github.com/taibuivan/ontvitals/internal/platform/postgres"
	redisstore "github.com/taibuivan/ontvitals/internal/platform/redis"
	"github.com/taibuivan/ontvitals/internal/platform/render"
	"github.com/taibuivan/ontvitals/internal/platform/sec"
	"github.com/taibuivan/ontvitals/internal/platform/upload"
	"github.com/taibuivan/ontvitals/internal/reference"
	"github.com/taibuivan/ontvitals/internal/registry/baptism"
	"github.com/taibuivan/ontvitals/internal/registry/countymarriage"
	"github.com/taibuivan/ontvitals/internal/registry/death"
	"github.com/taibuivan/ontvitals/internal/registry/grave"
	"github.com/taibuivan/ontvitals/internal/registry/marriage"
	"github.com/taibuivan/ontvitals/web"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	level := new(slog.LevelVar)
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		level.Set(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("default_domain", cfg.DefaultDomain),
	)

	// Root context for startup; a deadline so misconfiguration fails fast.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security and metrics ───────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.New(registry)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(context context.Context) error { return pgstore.Ping(context, pool) },
		CheckCache:    func(context context.Context) error { return redisstore.Ping(context, rdb) },
	}, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	renderer := render.New(web.Templates(), cfg.DefaultLang)

	referenceRepository := reference.NewCachedRepository(
		reference.NewPostgresRepository(pool), rdb, cfg.ReferenceCacheTTL, collector)
	referenceService := reference.NewService(referenceRepository, cfg.DefaultDomain)

	tree := familytree.NewService(familytree.NewPostgresRepository(pool), collector)

	deathRepository := death.NewPostgresRepository(pool)
	marriageRepository := marriage.NewPostgresRepository(pool)
	baptismRepository := baptism.NewPostgresRepository(pool)
	countyMarriageRepository := countymarriage.NewPostgresRepository(pool)

	deathService := death.NewService(deathRepository, tree, collector)
	marriageService := marriage.NewService(marriageRepository, tree, collector)
	baptismService := baptism.NewService(baptismRepository, tree, collector)
	countyMarriageService := countymarriage.NewService(countyMarriageRepository, tree, referenceService, collector)
	graveService := grave.NewService(grave.NewPostgresRepository(pool),
		upload.NewStore(cfg.ImageDir, cfg.MaxUploadBytes), collector)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		Images:    http.FileServer(http.Dir(cfg.ImageDir)),
		Reference: reference.NewHandler(referenceService),
		FamilyTree: familytree.NewHandler(tree,
			death.NewLinker(deathRepository),
			marriage.NewLinker(marriageRepository),
			baptism.NewLinker(baptismRepository),
			countymarriage.NewLinker(countyMarriageRepository),
		),
		Death:          death.NewHandler(deathService, referenceService, renderer),
		Marriage:       marriage.NewHandler(marriageService, referenceService, renderer),
		Baptism:        baptism.NewHandler(baptismService, renderer),
		CountyMarriage: countymarriage.NewHandler(countyMarriageService, referenceService, renderer),
		Grave:          grave.NewHandler(graveService, referenceService, renderer, cfg.MaxUploadBytes),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, tokens, collector, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
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

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
