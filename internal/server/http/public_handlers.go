package httpserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/helixir/academic-profile-service/internal/bibliometrics"
)

// searchProfiles handles GET /api/public/profiles?q=.
func (s *Server) searchProfiles(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(query) > maxQueryLength {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("query must be at most %d characters", maxQueryLength))
		return
	}

	profiles, err := s.directory.Search(r.Context(), query)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profilesResponse{Profiles: profiles})
}

// getProfilePage handles GET /api/public/profiles/{ownerID}.
func (s *Server) getProfilePage(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	page, err := s.directory.ProfilePage(r.Context(), ownerID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// listPublications handles GET /api/public/publications?limit=&sort=.
func (s *Server) listPublications(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	key := bibliometrics.ParseSortKey(r.URL.Query().Get("sort"))

	pubs, err := s.directory.ListPublications(r.Context(), key, limit)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, publicationsResponse{Publications: pubs})
}

// getPublication handles GET /api/public/publications/{publicationID}.
func (s *Server) getPublication(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "publicationID")

	pub, err := s.directory.Publication(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, publicationResponse{Publication: pub})
}

// publicStatistics handles GET /api/public/statistics[?owner=].
// Without an owner the statistics cover every publication on the platform.
func (s *Server) publicStatistics(w http.ResponseWriter, r *http.Request) {
	ownerID := strings.TrimSpace(r.URL.Query().Get("owner"))

	stats, err := s.directory.Statistics(r.Context(), ownerID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	scope := "global"
	if ownerID != "" {
		scope = "owner"
	}
	writeJSON(w, http.StatusOK, statisticsResponse{Scope: scope, OwnerID: ownerID, Statistics: stats})
}

// carousel handles GET /api/public/carousel.
func (s *Server) carousel(w http.ResponseWriter, r *http.Request) {
	landing, err := s.directory.Carousel(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, landing)
}

// initStore handles GET /api/init: it makes sure every collection exists.
func (s *Server) initStore(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Init(r.Context()); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"storage": s.store.Kind(),
	})
}
