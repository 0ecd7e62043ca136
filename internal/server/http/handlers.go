package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/helixir/academic-profile-service/internal/auth"
	"github.com/helixir/academic-profile-service/internal/domain"
)

// Request limits.
const (
	maxRequestBodySize = 1 << 20 // 1 MB limit for request bodies
	maxQueryLength     = 200
)

// decodeBody reads a size-limited JSON request body into target, writing a 400
// response and returning false on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return false
	}
	if err := json.Unmarshal(body, target); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON request body")
		return false
	}
	return true
}

// writeDomainError maps domain errors to HTTP status codes and writes the error response.
// Server-side faults are logged; their details never reach the client.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	var (
		nf *domain.NotFoundError
		ve *domain.ValidationError
		ce *domain.ConflictError
	)

	switch {
	case errors.Is(err, domain.ErrNotFound):
		if errors.As(err, &nf) {
			writeError(w, http.StatusNotFound, nf.Entity+" not found")
		} else {
			writeError(w, http.StatusNotFound, "resource not found")
		}
	case errors.Is(err, domain.ErrInvalidInput):
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
		} else {
			writeError(w, http.StatusBadRequest, "invalid input")
		}
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "resource already exists")
	case errors.Is(err, domain.ErrConflict):
		if errors.As(err, &ce) {
			writeError(w, http.StatusConflict, ce.Error())
		} else {
			writeError(w, http.StatusConflict, "conflict")
		}
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "rate limited")
	case errors.Is(err, domain.ErrStorageFault):
		logger := s.requestLogger(r)
		logger.Error().Err(err).Msg("storage fault")
		writeError(w, http.StatusInternalServerError, "storage fault")
	default:
		logger := s.requestLogger(r)
		logger.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseLimit reads the limit query parameter. Missing or non-positive values
// return 0 so the directory default applies.
func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("limit must be an integer, got %q", raw))
		return 0, false
	}
	if limit < 0 {
		limit = 0
	}
	return limit, true
}
