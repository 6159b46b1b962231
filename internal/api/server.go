// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It is the composition root for the chi router.
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/folio/internal/content/catalog"
	"github.com/taibuivan/folio/internal/content/comment"
	"github.com/taibuivan/folio/internal/content/projector"
	"github.com/taibuivan/folio/internal/content/review"
	"github.com/taibuivan/folio/internal/content/search"
	"github.com/taibuivan/folio/internal/content/status"
	"github.com/taibuivan/folio/internal/content/version"
	"github.com/taibuivan/folio/internal/platform/config"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// VersionHandlers holds the version endpoints of every level.
type VersionHandlers struct {
	Books      *version.Handler[version.Intro]
	Chapters   *version.Handler[version.Intro]
	Sections   *version.Handler[version.Intro]
	Paragraphs *version.Handler[version.Body]
}

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler; always 200 while the process runs.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; 200 when all dependencies answer.
	Readiness http.HandlerFunc

	Catalog   *catalog.Handler
	Versions  VersionHandlers
	Status    *status.Handler
	Review    *review.Handler
	Comment   *comment.Handler
	Projector *projector.Handler
	Search    *search.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	limiter := middleware.NewRateLimiter(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)

	r.Use(middleware.RequestID())
	r.Use(middleware.Trace(constants.AppName))
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(limiter.Handler)
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		registerRoutes(api, h)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// registerRoutes mounts every domain under the versioned prefix. Catalog,
// version and projector endpoints share the /{level}/{id} scopes.
func registerRoutes(api chi.Router, h Handlers) {
	h.Catalog.RegisterRoutes(api)
	h.Status.RegisterRoutes(api)
	h.Review.RegisterRoutes(api)
	h.Comment.RegisterRoutes(api)
	h.Projector.RegisterRoutes(api)
	h.Search.RegisterRoutes(api)

	api.Route("/categories/{id}", func(r chi.Router) {
		h.Catalog.CategoryRoutes(r)
		h.Projector.CategoryRoutes(r)
	})

	api.Route("/books/{id}", func(r chi.Router) {
		h.Catalog.NodeRoutes(catalog.Books)(r)
		h.Versions.Books.RegisterRoutes(r)
	})

	api.Route("/chapters/{id}", func(r chi.Router) {
		h.Catalog.NodeRoutes(catalog.Chapters)(r)
		h.Versions.Chapters.RegisterRoutes(r)
	})

	api.Route("/sections/{id}", func(r chi.Router) {
		h.Catalog.NodeRoutes(catalog.Sections)(r)
		h.Versions.Sections.RegisterRoutes(r)
		h.Projector.SectionRoutes(r)
	})

	api.Route("/paragraphs/{id}", func(r chi.Router) {
		h.Catalog.NodeRoutes(catalog.Paragraphs)(r)
		h.Versions.Paragraphs.RegisterRoutes(r)
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
