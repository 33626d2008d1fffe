// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
record handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
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

	"github.com/taibuivan/ontvitals/internal/platform/config"
	"github.com/taibuivan/ontvitals/internal/platform/constants"
	"github.com/taibuivan/ontvitals/internal/platform/metrics"
	"github.com/taibuivan/ontvitals/internal/platform/middleware"
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

// RouteSet is a record handler that mounts its own sub-router.
type RouteSet interface {
	Routes() chi.Router
}

// # Handler Registry

// Handlers groups all HTTP handler sets.
//
// # Usage
//
// New record types add a field here and a Mount in [NewServer].
type Handlers struct {
	// Liveness is the /health handler; always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; 200 when postgres and redis answer.
	Readiness http.HandlerFunc

	// Metrics serves the Prometheus exposition on /metrics.
	Metrics http.Handler

	// Images serves the stored grave-stone photographs.
	Images http.Handler

	Reference      RouteSet
	FamilyTree     RouteSet
	Death          RouteSet
	Marriage       RouteSet
	Baptism        RouteSet
	CountyMarriage RouteSet
	Grave          RouteSet
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups. collector may be nil.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, collector *metrics.Metrics, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.Metrics(collector))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Debug)
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated checks for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics)
	}
	if h.Images != nil {
		r.Method(http.MethodGet, "/images/*", http.StripPrefix("/images/", h.Images))
	}

	// # Record Pages
	mount(r, "/reference", h.Reference)
	mount(r, "/familytree", h.FamilyTree)
	mount(r, "/deaths", h.Death)
	mount(r, "/marriages", h.Marriage)
	mount(r, "/baptisms", h.Baptism)
	mount(r, "/countymarriages", h.CountyMarriage)
	mount(r, "/graves", h.Grave)

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

func mount(r chi.Router, pattern string, routes RouteSet) {
	if routes != nil {
		r.Mount(pattern, routes.Routes())
	}
}

// Handler returns the root handler, middleware included.
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
