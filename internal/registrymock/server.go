// Package registrymock is an in-memory stand-in for the partnership
// registry, speaking the same envelope and endpoints as the real service.
// It backs local development of the terminal client and the integration
// tests; nothing it stores survives a restart.
package registrymock

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"partnerdesk/internal/account"
	"partnerdesk/internal/directory"
	platmetrics "partnerdesk/internal/platform/metrics"
	"partnerdesk/pkg/platform/middleware"
)

// Server is the mock registry.
type Server struct {
	store   *store
	secret  []byte
	logger  *slog.Logger
	metrics *platmetrics.Metrics
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithSigningSecret overrides the token signing secret.
func WithSigningSecret(secret []byte) Option {
	return func(s *Server) { s.secret = secret }
}

// WithMetrics enables Prometheus counters on the auth surface.
func WithMetrics(m *platmetrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// New creates a mock registry with empty state. Seed it with SeedUser and
// SeedPartnerships before serving.
func New(opts ...Option) *Server {
	s := &Server{
		store:  newStore(),
		secret: []byte("partnerdesk-dev-secret"),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(s.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(s.logger))

	r.Get("/partnerships/public", s.handlePublicPartnerships)
	r.Post("/auth/check-email-status", s.handleCheckEmailStatus)
	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/register", s.handleRegister)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/auth/change-password", s.handleChangePassword)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Use(s.requireAdmin)
		r.Get("/admin/users/pending", s.handlePendingUsers)
		r.Post("/admin/users/{id}/approve", s.handleApproveUser)
		r.Post("/admin/users/{id}/reject", s.handleRejectUser)
	})

	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SeedUser adds an account with the given password and returns it with its
// assigned ID.
func (s *Server) SeedUser(user account.User, password string) account.User {
	return s.store.addUser(user, password)
}

// SeedPartnerships adds directory records.
func (s *Server) SeedPartnerships(records ...directory.Partnership) {
	s.store.addPartnerships(records...)
}
