package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/helixir/academic-profile-service/internal/domain"
	"github.com/helixir/academic-profile-service/internal/observability"
)

// getOwnProfile handles GET /api/admin/profile.
// An owner without a saved profile gets {"profile": null}.
func (s *Server) getOwnProfile(w http.ResponseWriter, r *http.Request) {
	ownerID := observability.OwnerIDFromContext(r.Context())

	profile, err := s.profiles.GetByOwner(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusOK, profileResponse{})
			return
		}
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{Profile: profile})
}

// saveOwnProfile handles PUT and POST /api/admin/profile.
// The owner id is always taken from the session, never from the body.
func (s *Server) saveOwnProfile(w http.ResponseWriter, r *http.Request) {
	var profile domain.Profile
	if !decodeBody(w, r, &profile) {
		return
	}
	profile.OwnerID = observability.OwnerIDFromContext(r.Context())

	saved, err := s.profiles.Upsert(r.Context(), &profile)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	logger := s.requestLogger(r)
	logger.Info().Str("profile_id", saved.ID).Msg("profile saved")
	writeJSON(w, http.StatusOK, saveProfileResponse{Success: true, Profile: saved})
}

// listOwnPublications handles GET /api/admin/publications.
func (s *Server) listOwnPublications(w http.ResponseWriter, r *http.Request) {
	ownerID := observability.OwnerIDFromContext(r.Context())

	pubs, err := s.publications.ListByOwner(r.Context(), ownerID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, publicationsResponse{Publications: pubs})
}

// addPublication handles POST /api/admin/publications.
func (s *Server) addPublication(w http.ResponseWriter, r *http.Request) {
	var pub domain.Publication
	if !decodeBody(w, r, &pub) {
		return
	}
	pub.OwnerID = observability.OwnerIDFromContext(r.Context())

	saved, err := s.publications.Add(r.Context(), &pub)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	logger := observability.WithPublicationContext(s.requestLogger(r), saved.ID, saved.OwnerID)
	logger.Info().Msg("publication saved")
	writeJSON(w, http.StatusCreated, savePublicationResponse{Success: true, Publication: saved})
}

// deletePublication handles DELETE /api/admin/publications/{publicationID} and
// DELETE /api/admin/publications with a {"id": ...} body.
// Deleting an unknown id succeeds with deleted=false.
func (s *Server) deletePublication(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "publicationID")
	if id == "" {
		var req deletePublicationRequest
		if !decodeBody(w, r, &req) {
			return
		}
		id = req.ID
	}
	id = strings.TrimSpace(id)
	if id == "" {
		writeError(w, http.StatusBadRequest, "publication id is required")
		return
	}

	ownerID := observability.OwnerIDFromContext(r.Context())
	deleted, err := s.publications.Delete(r.Context(), id, ownerID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deletePublicationResponse{Success: true, Deleted: deleted})
}

// ownStatistics handles GET /api/admin/statistics.
func (s *Server) ownStatistics(w http.ResponseWriter, r *http.Request) {
	ownerID := observability.OwnerIDFromContext(r.Context())

	stats, err := s.directory.Statistics(r.Context(), ownerID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statisticsResponse{Scope: "owner", OwnerID: ownerID, Statistics: stats})
}
