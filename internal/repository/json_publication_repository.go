package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/helixir/academic-profile-service/internal/docstore"
	"github.com/helixir/academic-profile-service/internal/domain"
	"github.com/helixir/academic-profile-service/internal/observability"
)

// JSONPublicationRepository implements PublicationRepository on a docstore collection.
type JSONPublicationRepository struct {
	coll    *docstore.Collection[domain.Publication]
	logger  zerolog.Logger
	metrics *observability.Metrics
	newID   IDGenerator
}

// Compile-time check that JSONPublicationRepository implements PublicationRepository.
var _ PublicationRepository = (*JSONPublicationRepository)(nil)

// NewJSONPublicationRepository creates a new publication repository.
func NewJSONPublicationRepository(coll *docstore.Collection[domain.Publication], logger zerolog.Logger, metrics *observability.Metrics) *JSONPublicationRepository {
	return &JSONPublicationRepository{
		coll:    coll,
		logger:  logger.With().Str("component", "publication_repository").Logger(),
		metrics: metrics,
		newID:   NewUUID,
	}
}

// ListByOwner implements PublicationRepository.
func (r *JSONPublicationRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Publication, error) {
	all, err := r.coll.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	owned := make([]domain.Publication, 0, len(all))
	for i := range all {
		if all[i].OwnerID == ownerID {
			owned = append(owned, all[i])
		}
	}
	return owned, nil
}

// ListAll implements PublicationRepository.
func (r *JSONPublicationRepository) ListAll(ctx context.Context) ([]domain.Publication, error) {
	return r.coll.ReadAll(ctx)
}

// Get implements PublicationRepository.
func (r *JSONPublicationRepository) Get(ctx context.Context, id string) (*domain.Publication, error) {
	all, err := r.coll.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, domain.NewNotFoundError("publication", id)
}

// Add implements PublicationRepository.
func (r *JSONPublicationRepository) Add(ctx context.Context, publication *domain.Publication) (*domain.Publication, error) {
	stored := *publication
	stored.Normalize()
	stored.SchemaVersion = domain.CurrentSchemaVersion
	if err := domain.Validate(&stored); err != nil {
		return nil, err
	}

	replaced := false
	err := r.coll.Update(ctx, func(all []domain.Publication) ([]domain.Publication, error) {
		if stored.ID == "" {
			stored.ID = r.uniqueID(all)
			return append(all, stored), nil
		}

		for i := range all {
			if all[i].ID != stored.ID {
				continue
			}
			if all[i].OwnerID != stored.OwnerID {
				return nil, domain.NewConflictError("publication", stored.ID)
			}
			all[i] = stored
			replaced = true
			return all, nil
		}
		return append(all, stored), nil
	})
	if err != nil {
		return nil, fmt.Errorf("add publication: %w", err)
	}

	r.metrics.RecordPublicationAdded()
	msg := "publication added"
	if replaced {
		msg = "publication replaced"
	}
	logger := observability.WithPublicationContext(r.logger, stored.ID, stored.OwnerID)
	logger.Debug().Msg(msg)
	return &stored, nil
}

// Delete implements PublicationRepository.
func (r *JSONPublicationRepository) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	deleted := false
	err := r.coll.Update(ctx, func(all []domain.Publication) ([]domain.Publication, error) {
		kept := all[:0]
		for _, p := range all {
			if p.ID == id && p.OwnerID == ownerID {
				deleted = true
				continue
			}
			kept = append(kept, p)
		}
		return kept, nil
	})
	if err != nil {
		return false, fmt.Errorf("delete publication: %w", err)
	}

	if deleted {
		r.metrics.RecordPublicationDeleted()
		logger := observability.WithPublicationContext(r.logger, id, ownerID)
		logger.Debug().Msg("publication deleted")
	}
	return deleted, nil
}

// uniqueID draws ids until one is unused in the collection.
func (r *JSONPublicationRepository) uniqueID(all []domain.Publication) string {
	taken := make(map[string]struct{}, len(all))
	for i := range all {
		taken[all[i].ID] = struct{}{}
	}
	for {
		id := r.newID()
		if _, ok := taken[id]; !ok {
			return id
		}
	}
}
