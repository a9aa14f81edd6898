package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/guillermoBallester/clerksync/internal/core/port"
)

// Config holds HTTP server configuration.
type Config struct {
	ListenAddr        string
	CORSOrigin        string
	WebhookRateLimit  float64 // requests per minute per client IP
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
}

// Pinger reports database reachability for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wraps the HTTP server with chi routing, middleware, and graceful shutdown.
type Server struct {
	httpServer     *http.Server
	router         chi.Router
	logger         *slog.Logger
	cfg            Config
	webhookHandler *WebhookHandler
	webhookLimiter *ipRateLimiter
	gate           *RouteGate
	users          port.UserRepository
	db             Pinger
}

// New creates a new Server wired with the given dependencies. gate may be
// nil, in which case no session gating is applied and /api/me is not mounted.
func New(cfg Config, webhookHandler *WebhookHandler, gate *RouteGate,
	users port.UserRepository, db Pinger, logger *slog.Logger) *Server {

	s := &Server{
		logger:         logger,
		cfg:            cfg,
		webhookHandler: webhookHandler,
		webhookLimiter: newIPRateLimiter(cfg.WebhookRateLimit),
		gate:           gate,
		users:          users,
		db:             db,
	}

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server and blocks until it stops.
// Returns nil if the server was shut down gracefully via Shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("HTTP server listening",
		slog.String("addr", s.httpServer.Addr),
	)
	if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
