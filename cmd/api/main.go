// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Folio HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Install the OpenTelemetry tracer provider.
//  4. Connect to PostgreSQL (pgxpool) and Redis.
//  5. Run database migrations (idempotent).
//  6. Wire the content domain.
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

	"github.com/taibuivan/folio/internal/api"
	"github.com/taibuivan/folio/internal/content"
	"github.com/taibuivan/folio/internal/content/catalog"
	"github.com/taibuivan/folio/internal/content/comment"
	"github.com/taibuivan/folio/internal/content/projector"
	"github.com/taibuivan/folio/internal/content/review"
	"github.com/taibuivan/folio/internal/content/search"
	"github.com/taibuivan/folio/internal/content/status"
	"github.com/taibuivan/folio/internal/content/version"
	"github.com/taibuivan/folio/internal/platform/config"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/migration"
	pgstore "github.com/taibuivan/folio/internal/platform/postgres"
	redisstore "github.com/taibuivan/folio/internal/platform/redis"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/tracing"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[Folio] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
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
		slog.Bool("search_enabled", cfg.SearchEnabled()),
	)

	// Root context for the process lifetime; cancelled on SIGTERM/SIGINT.
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Startup deadline so misconfiguration is caught quickly.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. Tracing ────────────────────────────────────────────────────────
	shutdownTracing, err := tracing.Setup(startupCtx, tracing.Options{
		ServiceName:    constants.AppName,
		ServiceVersion: constants.AppVersion,
		Environment:    cfg.Environment,
		Endpoint:       cfg.OTelEndpoint,
		Enabled:        cfg.TracingEnabled(),
	})
	must(log, err, "initialize tracing")
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if terr := shutdownTracing(flushCtx); terr != nil {
			log.Error("tracing_shutdown_failed", slog.Any("error", terr))
		}
	}()

	// ── 4. PostgreSQL & Redis ─────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	tx := pgstore.NewTxManager(pool)

	// Publish and change listeners are appended once their owners exist; the
	// services hold the slices by pointer.
	var listeners content.Listeners
	var changes content.ChangeListeners

	catalogService := catalog.NewCatalog(catalog.NewPostgresStore(pool), tx, &changes, log)
	gate := status.NewGate(status.NewPostgresStore(pool), catalogService, &listeners, log)

	books := version.NewChain(version.BookLevel, version.NewPostgresStore(pool, version.BookLevel), tx, gate, &changes, log)
	chapters := version.NewChain(version.ChapterLevel, version.NewPostgresStore(pool, version.ChapterLevel), tx, gate, &changes, log)
	sections := version.NewChain(version.SectionLevel, version.NewPostgresStore(pool, version.SectionLevel), tx, gate, &changes, log)
	paragraphs := version.NewChain(version.ParagraphLevel, version.NewPostgresStore(pool, version.ParagraphLevel), tx, gate, &changes, log)

	workflow := review.NewWorkflow(review.NewPostgresStore(pool), tx, map[review.Type]review.ChainVerifier{
		review.TypeBook:      books,
		review.TypeChapter:   chapters,
		review.TypeSection:   sections,
		review.TypeParagraph: paragraphs,
	}, gate, &listeners, log)

	thread := comment.NewThread(comment.NewPostgresStore(pool), workflow, log)

	views := projector.NewProjector(projector.Sources{
		Structure:  catalogService,
		Status:     gate,
		Books:      books,
		Chapters:   chapters,
		Sections:   sections,
		Paragraphs: paragraphs,
	}, projector.NewRedisCache(rdb, cfg.PublicTreeCacheTTL), log)

	// Search is optional; without Meilisearch the endpoint answers 503.
	var index search.Index
	var searchHealthy func() bool
	if cfg.SearchEnabled() {
		meili := search.NewMeili(rootCtx, cfg.MeiliURL, cfg.MeiliAPIKey, log)
		index = meili
		searchHealthy = meili.Healthy
	}
	searchService := search.NewService(index, views, log)

	listeners = append(listeners,
		content.LogPublished(log),
		views.Invalidator(),
		searchService.Listener(),
	)
	changes = append(changes,
		views.Invalidator(),
		searchService.Listener(),
	)

	// ── 7. Auth ───────────────────────────────────────────────────────────
	tokens, err := sec.LoadTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, cfg.AuthIssuer)
	must(log, err, "initialize token service")

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
		SearchHealthy: searchHealthy,
	}, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Catalog:   catalog.NewHandler(catalogService),
		Versions: api.VersionHandlers{
			Books:      version.NewHandler(books),
			Chapters:   version.NewHandler(chapters),
			Sections:   version.NewHandler(sections),
			Paragraphs: version.NewHandler(paragraphs),
		},
		Status:    status.NewHandler(gate),
		Review:    review.NewHandler(workflow),
		Comment:   comment.NewHandler(thread),
		Projector: projector.NewHandler(views),
		Search:    search.NewHandler(searchService),
	}

	server := api.NewServer(rootCtx, cfg, log, tokens, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case <-rootCtx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	drainCtx, cancelDrain := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelDrain()
	if err := searchService.Drain(drainCtx); err != nil {
		log.Warn("search_drain_incomplete", slog.Any("error", err))
	}

	log.Info("server stopped cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
