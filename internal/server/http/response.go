package httpserver

import (
	"github.com/helixir/academic-profile-service/internal/auth"
	"github.com/helixir/academic-profile-service/internal/directory"
	"github.com/helixir/academic-profile-service/internal/domain"
)

// Response types for JSON serialization.

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

type sessionResponse struct {
	Success bool             `json:"success"`
	User    auth.AccountView `json:"user"`
	Token   string           `json:"token"`
}

type meResponse struct {
	User *auth.AccountView `json:"user"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type profileResponse struct {
	Profile *domain.Profile `json:"profile"`
}

type saveProfileResponse struct {
	Success bool            `json:"success"`
	Profile *domain.Profile `json:"profile"`
}

type profilesResponse struct {
	Profiles []domain.Profile `json:"profiles"`
}

type publicationsResponse struct {
	Publications []domain.Publication `json:"publications"`
}

type publicationResponse struct {
	Publication *directory.PublicationCard `json:"publication"`
}

type savePublicationResponse struct {
	Success     bool                `json:"success"`
	Publication *domain.Publication `json:"publication"`
}

type deletePublicationRequest struct {
	ID string `json:"id"`
}

type deletePublicationResponse struct {
	Success bool `json:"success"`
	Deleted bool `json:"deleted"`
}

type statisticsResponse struct {
	Scope      string            `json:"scope"`
	OwnerID    string            `json:"ownerId,omitempty"`
	Statistics domain.Statistics `json:"statistics"`
}
