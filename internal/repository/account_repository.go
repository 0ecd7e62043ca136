package repository

import (
	"context"

	"github.com/helixir/academic-profile-service/internal/domain"
)

// AccountRepository handles researcher account persistence.
// Accounts are immutable after creation and are never deleted.
type AccountRepository interface {
	// Create stores a new account with a generated id and creation time.
	// Returns domain.ErrAlreadyExists if the username is taken.
	// Returns domain.ErrInvalidInput if validation fails.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)

	// GetByUsername retrieves an account by its exact username.
	// Returns domain.ErrNotFound if no matching account exists.
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)

	// GetByID retrieves an account by id.
	// Returns domain.ErrNotFound if no matching account exists.
	GetByID(ctx context.Context, id string) (*domain.Account, error)

	// List returns every account in creation order.
	List(ctx context.Context) ([]domain.Account, error)
}
