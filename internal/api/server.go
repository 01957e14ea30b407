// Copyright (c) 2026 SocialLink. All rights reserved.
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

	"github.com/taibuivan/sociallink/internal/analytics"
	"github.com/taibuivan/sociallink/internal/billing"
	"github.com/taibuivan/sociallink/internal/content/file"
	"github.com/taibuivan/sociallink/internal/content/form"
	"github.com/taibuivan/sociallink/internal/content/link"
	"github.com/taibuivan/sociallink/internal/content/pagesettings"
	"github.com/taibuivan/sociallink/internal/platform/config"
	"github.com/taibuivan/sociallink/internal/platform/constants"
	"github.com/taibuivan/sociallink/internal/platform/middleware"
	"github.com/taibuivan/sociallink/internal/profile"
	"github.com/taibuivan/sociallink/internal/users/account"
	"github.com/taibuivan/sociallink/internal/users/admin"
	"github.com/taibuivan/sociallink/internal/users/auth"
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

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	Auth         *auth.Handler
	Account      *account.Handler
	Profile      *profile.Handler
	Links        *link.Handler
	Files        *file.Handler
	Forms        *form.Handler
	Analytics    *analytics.Handler
	PageSettings *pagesettings.Handler
	Billing      *billing.Handler
	Admin        *admin.Handler

	// Accounts rejects tokens of blocked or deleted accounts. Nil skips the check.
	Accounts middleware.AccountGate
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := NewRouter(context, cfg, log, verifier, h)

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

// NewRouter builds the routing tree on its own, for tests and embedding.
func NewRouter(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.ClientMeta())
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.RejectInactive(h.Accounts))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api", func(api chi.Router) {

		// Public surface. Owner-only routes inside these handlers guard themselves.
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/profile", h.Profile.Routes())
		api.Get("/themes", h.PageSettings.Themes)
		api.Mount("/links", h.Links.Routes())
		api.Mount("/files", h.Files.Routes())
		api.Mount("/forms", h.Forms.Routes())
		api.Mount("/analytics", h.Analytics.Routes())

		// Owner surface.
		api.Group(func(owner chi.Router) {
			owner.Use(middleware.RequireAuth)
			owner.Mount("/account", h.Account.Routes())
			owner.Mount("/page-settings", h.PageSettings.Routes())
			owner.Mount("/billing", h.Billing.Routes())
		})

		// Operator surface. The admin router enforces the role itself.
		api.Mount("/admin", h.Admin.Routes())
	})

	return r
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
