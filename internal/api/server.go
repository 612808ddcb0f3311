// Package api implements the HTTP layer for the invoice mailer. Handlers are
// methods on *Server. The pipeline behind the single POST endpoint is:
// decode → validate → render invoice → email it → clean up → respond.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nyashahama/invoice-mailer/internal/email"
	"github.com/nyashahama/invoice-mailer/internal/invoice"
)

// Config holds values read from environment variables at startup.
type Config struct {
	// Env is "production", "staging", or "development".
	Env string

	// AllowedOrigins is the CORS allowlist. Outside production an empty list
	// echoes the request origin back, which keeps local frontends working.
	AllowedOrigins []string

	// SendTimeout bounds the mail dispatch call for one request.
	SendTimeout time.Duration
}

// Server holds all shared dependencies. Both collaborators are interfaces so
// tests can swap in stubs.
type Server struct {
	// renderer turns an order into a temporary PDF artifact.
	renderer invoice.Renderer

	// mailer sends the confirmation email with the artifact attached.
	mailer email.Sender

	cfg    Config
	logger *slog.Logger
}

// NewServer constructs the Server and wires the chi router. The returned
// http.Handler is ready to pass to http.ListenAndServe.
func NewServer(renderer invoice.Renderer, mailer email.Sender, cfg Config, logger *slog.Logger) http.Handler {
	s := &Server{
		renderer: renderer,
		mailer:   mailer,
		cfg:      cfg,
		logger:   logger,
	}

	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	// ── Global middleware ─────────────────────────────────────────────────────
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(s.corsMiddleware)
	r.Use(middleware.Timeout(30 * time.Second))

	// ── Health ────────────────────────────────────────────────────────────────
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// ── API ───────────────────────────────────────────────────────────────────
	r.Route("/api", func(r chi.Router) {
		r.Post("/orders/email", s.handleSendOrderEmail)
	})

	return r
}
