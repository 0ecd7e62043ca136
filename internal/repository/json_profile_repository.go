package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/helixir/academic-profile-service/internal/docstore"
	"github.com/helixir/academic-profile-service/internal/domain"
	"github.com/helixir/academic-profile-service/internal/observability"
)

// JSONProfileRepository implements ProfileRepository on a docstore collection.
type JSONProfileRepository struct {
	coll    *docstore.Collection[domain.Profile]
	logger  zerolog.Logger
	metrics *observability.Metrics
	newID   IDGenerator
}

// Compile-time check that JSONProfileRepository implements ProfileRepository.
var _ ProfileRepository = (*JSONProfileRepository)(nil)

// NewJSONProfileRepository creates a new profile repository.
func NewJSONProfileRepository(coll *docstore.Collection[domain.Profile], logger zerolog.Logger, metrics *observability.Metrics) *JSONProfileRepository {
	return &JSONProfileRepository{
		coll:    coll,
		logger:  logger.With().Str("component", "profile_repository").Logger(),
		metrics: metrics,
		newID:   NewUUID,
	}
}

// GetByOwner implements ProfileRepository.
func (r *JSONProfileRepository) GetByOwner(ctx context.Context, ownerID string) (*domain.Profile, error) {
	profiles, err := r.coll.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		if profiles[i].OwnerID == ownerID {
			return &profiles[i], nil
		}
	}
	return nil, domain.NewNotFoundError("profile", ownerID)
}

// Upsert implements ProfileRepository.
func (r *JSONProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	stored := *profile
	stored.Normalize()
	stored.SchemaVersion = domain.CurrentSchemaVersion
	if err := domain.Validate(&stored); err != nil {
		return nil, err
	}

	err := r.coll.Update(ctx, func(profiles []domain.Profile) ([]domain.Profile, error) {
		for i := range profiles {
			if profiles[i].OwnerID == stored.OwnerID {
				stored.ID = profiles[i].ID
				if stored.ID == "" {
					stored.ID = r.newID()
				}
				profiles[i] = stored
				return profiles, nil
			}
		}
		if stored.ID == "" {
			stored.ID = r.newID()
		}
		return append(profiles, stored), nil
	})
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	r.metrics.RecordProfileUpserted()
	logger := observability.WithOwnerContext(r.logger, stored.OwnerID)
	logger.Debug().
		Str("profile_id", stored.ID).
		Msg("profile saved")
	return &stored, nil
}

// List implements ProfileRepository.
func (r *JSONProfileRepository) List(ctx context.Context) ([]domain.Profile, error) {
	return r.coll.ReadAll(ctx)
}

// Search implements ProfileRepository.
func (r *JSONProfileRepository) Search(ctx context.Context, query string) ([]domain.Profile, error) {
	profiles, err := r.coll.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return profiles, nil
	}

	matches := make([]domain.Profile, 0, len(profiles))
	for i := range profiles {
		if profiles[i].Matches(query) {
			matches = append(matches, profiles[i])
		}
	}
	return matches, nil
}
