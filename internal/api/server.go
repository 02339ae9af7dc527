// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

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

	"github.com/taibuivan/civicportal/internal/citizen/feedback"
	"github.com/taibuivan/civicportal/internal/citizen/helpline"
	"github.com/taibuivan/civicportal/internal/content/document"
	"github.com/taibuivan/civicportal/internal/content/gallery"
	"github.com/taibuivan/civicportal/internal/content/news"
	"github.com/taibuivan/civicportal/internal/content/notice"
	"github.com/taibuivan/civicportal/internal/content/scheme"
	"github.com/taibuivan/civicportal/internal/content/tender"
	"github.com/taibuivan/civicportal/internal/platform/config"
	"github.com/taibuivan/civicportal/internal/platform/constants"
	"github.com/taibuivan/civicportal/internal/platform/crud"
	"github.com/taibuivan/civicportal/internal/platform/metrics"
	"github.com/taibuivan/civicportal/internal/platform/middleware"
	"github.com/taibuivan/civicportal/internal/platform/postgres"
	"github.com/taibuivan/civicportal/internal/users/account"
	"github.com/taibuivan/civicportal/internal/users/auth"
	"github.com/taibuivan/civicportal/internal/users/rbac"
)

// CheckAuthPath reports authentication state and never fails, even for stale credentials.
const CheckAuthPath = "/api/v1/auth/check_auth"

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

// Handlers groups the hand-written HTTP handler sets. Record resources are
// mounted from [Dependencies.DB] directly.
type Handlers struct {
	// Liveness is the /health handler. It answers 200 while the process is up.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It answers 200 when Postgres and Redis respond.
	Readiness http.HandlerFunc

	// Auth handles login, registration, logout and identity checks.
	Auth *auth.Handler

	// Users is the user directory.
	Users *account.Handler
}

// Dependencies are the shared collaborators of the middleware chain and record routes.
type Dependencies struct {
	DB            postgres.DBTX
	Authenticator middleware.Authenticator
	CSRF          middleware.CSRFVerifier
	Metrics       *metrics.Metrics
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// ctx bounds background work started here, such as the rate limiter janitor.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, deps Dependencies, h Handlers) *Server {
	r := chi.NewRouter()

	limiter := middleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)

	// # Middleware Chain
	// Global middleware applied in order of execution.
	if cfg.TrustProxyHeaders {
		r.Use(middleware.TrustProxyHeaders)
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(deps.Metrics.Middleware)
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(limiter.Handler)
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins, cfg.IsDevelopment()))
	r.Use(middleware.Authenticate(deps.Authenticator, CheckAuthPath))
	r.Use(middleware.CSRF(deps.CSRF))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/users", h.Users.Routes())

		rbac.Register(api, deps.DB, log)

		// Public content lists are identical for every reader.
		cached := crud.WithListCache(cfg.ListCacheTTL)
		notice.Register(api, deps.DB, log, cached)
		tender.Register(api, deps.DB, log, cached)
		news.Register(api, deps.DB, log, cached)
		gallery.Register(api, deps.DB, log, cached)
		document.Register(api, deps.DB, log, cached)
		scheme.Register(api, deps.DB, log, cached)

		feedback.Register(api, deps.DB, log)
		helpline.Register(api, deps.DB, log)
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
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
