package repository

import (
	"context"

	"github.com/helixir/academic-profile-service/internal/domain"
)

// ProfileRepository handles researcher profile persistence.
// A profile is keyed by its owner id; there is at most one per owner.
type ProfileRepository interface {
	// GetByOwner retrieves the profile of the given owner.
	// Returns domain.ErrNotFound if the owner has never saved a profile.
	GetByOwner(ctx context.Context, ownerID string) (*domain.Profile, error)

	// Upsert stores the profile, replacing the owner's existing profile in place
	// (preserving collection order and the stored profile id) or appending it.
	// The profile is normalized and validated first.
	// Returns domain.ErrInvalidInput if validation fails.
	Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)

	// List returns every profile in collection order.
	List(ctx context.Context) ([]domain.Profile, error)

	// Search returns the profiles whose name, title, affiliation or any research
	// interest contains query, case-insensitively, in collection order.
	// An empty query matches every profile.
	Search(ctx context.Context, query string) ([]domain.Profile, error)
}
