// Package httpserver provides the HTTP REST API server for the academic profile service.
//
// Public routes serve the directory to anonymous visitors. Admin routes run the
// same repositories and directory service behind requireOwner, which pins every
// operation to the owner id carried by the verified session token.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/helixir/academic-profile-service/internal/auth"
	"github.com/helixir/academic-profile-service/internal/directory"
	"github.com/helixir/academic-profile-service/internal/observability"
	"github.com/helixir/academic-profile-service/internal/repository"
)

// AuthService is the account and session surface used by the HTTP server.
type AuthService interface {
	Register(ctx context.Context, username, password, email string) (*auth.Session, error)
	Login(ctx context.Context, username, password, client string) (*auth.Session, error)
	Me(ctx context.Context, token string) (*auth.AccountView, error)
	Authenticate(token string) (*auth.Claims, error)
	TokenTTL() time.Duration
}

// StoreHealth reports on the document store backing the repositories.
type StoreHealth interface {
	Health(ctx context.Context) error
	Init(ctx context.Context) error
	Kind() string
}

// Dependencies are the collaborators the server routes requests to.
type Dependencies struct {
	Profiles     repository.ProfileRepository
	Publications repository.PublicationRepository
	Directory    *directory.Service
	Auth         AuthService
	Store        StoreHealth
	Metrics      *observability.Metrics
}

// Server is the HTTP REST API server.
type Server struct {
	router       chi.Router
	httpServer   *http.Server
	cfg          Config
	profiles     repository.ProfileRepository
	publications repository.PublicationRepository
	directory    *directory.Service
	auth         AuthService
	store        StoreHealth
	metrics      *observability.Metrics
	logger       zerolog.Logger
}

// Config holds HTTP server configuration.
type Config struct {
	Address            string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string
	TrustProxyHeaders  bool
	CookieName         string
	CookieSecure       bool
}

// NewServer creates a new HTTP server with all dependencies.
func NewServer(cfg Config, deps Dependencies, logger zerolog.Logger) *Server {
	if cfg.CookieName == "" {
		cfg.CookieName = defaultCookieName
	}

	s := &Server{
		cfg:          cfg,
		profiles:     deps.Profiles,
		publications: deps.Publications,
		directory:    deps.Directory,
		auth:         deps.Auth,
		store:        deps.Store,
		metrics:      deps.Metrics,
		logger:       logger.With().Str("component", "http-server").Logger(),
	}

	s.router = s.buildRouter()

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// buildRouter creates the chi router with all middleware and routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	if s.cfg.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(correlationIDMiddleware)
	r.Use(s.metricsMiddleware)
	if len(s.cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Correlation-ID"},
			ExposedHeaders:   []string{"X-Correlation-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	r.Use(jsonContentTypeMiddleware)
	r.Use(s.authenticate)

	// Health endpoints (no auth)
	r.Get("/healthz", s.healthHandler)
	r.Get("/readyz", s.readinessHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/init", s.initStore)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.register)
			r.Post("/login", s.login)
			r.Post("/logout", s.logout)
			r.Get("/me", s.me)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireOwner)

			r.Get("/profile", s.getOwnProfile)
			r.Put("/profile", s.saveOwnProfile)
			r.Post("/profile", s.saveOwnProfile)
			r.Get("/publications", s.listOwnPublications)
			r.Post("/publications", s.addPublication)
			r.Delete("/publications", s.deletePublication)
			r.Delete("/publications/{publicationID}", s.deletePublication)
			r.Get("/statistics", s.ownStatistics)
		})

		r.Route("/public", func(r chi.Router) {
			r.Get("/profiles", s.searchProfiles)
			r.Get("/profiles/{ownerID}", s.getProfilePage)
			r.Get("/publications", s.listPublications)
			r.Get("/publications/{publicationID}", s.getPublication)
			r.Get("/statistics", s.publicStatistics)
			r.Get("/carousel", s.carousel)
		})
	})

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("HTTP server starting")
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// healthHandler returns basic liveness status.
func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readinessHandler reports whether the document store is reachable.
func (s *Server) readinessHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Health(r.Context()); err != nil {
		s.logger.Warn().Err(err).Msg("store not ready")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"storage": s.store.Kind(),
			"error":   "storage unavailable",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"storage": s.store.Kind(),
	})
}

// writeJSON writes a JSON response with the given status code. The body is
// encoded before any header is sent, so a value that cannot be encoded turns
// into a 500 instead of a truncated response.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		statusCode = http.StatusInternalServerError
		body = []byte(`{"error":"internal server error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(append(body, '\n'))
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
