// Copyright (c) 2026 Travelpack. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the composition root for the HTTP transport (chi router).
  - Public routes (/, /register, /login, probes, /metrics) sit outside the
    authentication gate; every trip route sits inside it.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/travelpack/travelpack/internal/auth"
	"github.com/travelpack/travelpack/internal/platform/config"
	"github.com/travelpack/travelpack/internal/platform/constants"
	"github.com/travelpack/travelpack/internal/platform/middleware"
	"github.com/travelpack/travelpack/internal/platform/respond"
	"github.com/travelpack/travelpack/internal/trip"
)

// WelcomeMessage is served on GET /.
const WelcomeMessage = "Welcome to the Travel Assistant API"

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

// Handlers groups all HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler.
	Readiness http.HandlerFunc

	// Metrics exposes the Prometheus registry. Nil leaves /metrics unrouted.
	Metrics http.Handler

	// Auth handles /register and /login.
	Auth *auth.Handler

	// Trip handles the gated trip and packing list routes.
	Trip *trip.Handler
}

// Gate is what the authentication middleware needs to admit a request.
type Gate struct {
	Verifier middleware.TokenVerifier
	Resolver middleware.IdentityResolver
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups. The rate limiter's sweeper stops with ctx.
// A nil observer disables request metrics.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, gate Gate, observer middleware.RequestObserver, h Handlers) *Server {
	r := chi.NewRouter()
	clientIP := middleware.NewClientIP(cfg.TrustedProxies)

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log, clientIP))
	if observer != nil {
		r.Use(middleware.Metrics(observer))
	}
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.NewRateLimiter(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst, clientIP).Handler)
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	if h.Liveness != nil {
		r.Get("/health", h.Liveness)
	}
	if h.Readiness != nil {
		r.Get("/ready", h.Readiness)
	}
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics)
	}

	// # Application API
	r.Get("/", welcome)
	h.Auth.Mount(r)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Authenticate(gate.Verifier, gate.Resolver))
		h.Trip.Mount(protected)
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

func welcome(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{constants.FieldData: WelcomeMessage})
}

// Handler returns the fully wired router.
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
