package repository

import (
	"context"

	"github.com/helixir/academic-profile-service/internal/domain"
)

// PublicationRepository handles publication persistence.
// Publication ids are unique across all owners.
type PublicationRepository interface {
	// ListByOwner returns the owner's publications in insertion order.
	// Returns an empty slice when the owner has none.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Publication, error)

	// ListAll returns every publication of every owner in insertion order.
	ListAll(ctx context.Context) ([]domain.Publication, error)

	// Get retrieves a publication by id.
	// Returns domain.ErrNotFound if no publication has that id.
	Get(ctx context.Context, id string) (*domain.Publication, error)

	// Add stores a publication and returns the stored copy.
	//
	// Contract:
	//   - An empty id is replaced by a freshly generated one.
	//   - An id already held by the same owner is overwritten in place.
	//   - An id held by another owner returns domain.ErrConflict.
	//   - The record is normalized and validated; failures return domain.ErrInvalidInput.
	Add(ctx context.Context, publication *domain.Publication) (*domain.Publication, error)

	// Delete removes the publication matching both id and ownerID.
	// Deleting a record that does not exist (or belongs to someone else)
	// is a successful no-op; deleted reports whether anything was removed.
	Delete(ctx context.Context, id, ownerID string) (deleted bool, err error)
}
