package httpserver

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// WebhookPath is where Clerk delivers Svix-signed webhooks.
const WebhookPath = "/api/webhook/register"

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)
	if s.gate != nil {
		r.Use(s.gate.Middleware)
	}

	// Health probes
	r.Get("/health", s.handleHealth())
	r.Get("/ready", s.handleReady())

	r.Route("/api", func(api chi.Router) {
		// Svix-verified, no session needed.
		api.With(s.webhookLimiter.Middleware).
			Post("/webhook/register", s.webhookHandler.HandleClerkWebhook())

		if s.gate == nil {
			return
		}
		api.Group(func(me chi.Router) {
			if s.cfg.CORSOrigin != "" {
				me.Use(cors.Handler(cors.Options{
					AllowedOrigins:   []string{s.cfg.CORSOrigin},
					AllowedMethods:   []string{"GET", "OPTIONS"},
					AllowedHeaders:   []string{"Authorization", "Content-Type"},
					AllowCredentials: true,
					MaxAge:           300,
				}))
			}
			me.Get("/me", s.handleMe())
		})
	})

	s.router = r
}
