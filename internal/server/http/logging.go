package httpserver

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/helixir/academic-profile-service/internal/observability"
)

// requestLogger enriches the server logger with the request's ids and owner.
func (s *Server) requestLogger(r *http.Request) zerolog.Logger {
	ctx := r.Context()
	logger := observability.WithRequestContext(s.logger,
		observability.RequestIDFromContext(ctx),
		observability.CorrelationIDFromContext(ctx),
	)
	if owner := observability.OwnerIDFromContext(ctx); owner != "" {
		logger = observability.WithOwnerContext(logger, owner)
	}
	return logger.With().Str("method", r.Method).Str("path", r.URL.Path).Logger()
}
