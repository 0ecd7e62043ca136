package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/helixir/academic-profile-service/internal/docstore"
	"github.com/helixir/academic-profile-service/internal/domain"
)

// JSONAccountRepository implements AccountRepository on a docstore collection.
type JSONAccountRepository struct {
	coll   *docstore.Collection[domain.Account]
	logger zerolog.Logger
	newID  IDGenerator
	now    func() time.Time
}

// Compile-time check that JSONAccountRepository implements AccountRepository.
var _ AccountRepository = (*JSONAccountRepository)(nil)

// NewJSONAccountRepository creates a new account repository.
func NewJSONAccountRepository(coll *docstore.Collection[domain.Account], logger zerolog.Logger) *JSONAccountRepository {
	return &JSONAccountRepository{
		coll:   coll,
		logger: logger.With().Str("component", "account_repository").Logger(),
		newID:  NewUUID,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create implements AccountRepository.
func (r *JSONAccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	stored := *account
	stored.Username = strings.TrimSpace(stored.Username)
	stored.Email = strings.TrimSpace(stored.Email)
	stored.SchemaVersion = domain.CurrentSchemaVersion
	if err := domain.Validate(&stored); err != nil {
		return nil, err
	}
	if stored.PasswordHash == "" {
		return nil, domain.NewValidationError("passwordHash", "is required")
	}

	err := r.coll.Update(ctx, func(accounts []domain.Account) ([]domain.Account, error) {
		for i := range accounts {
			if accounts[i].Username == stored.Username {
				return nil, domain.NewAlreadyExistsError("account", stored.Username)
			}
		}
		stored.ID = r.newID()
		stored.CreatedAt = r.now()
		return append(accounts, stored), nil
	})
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	r.logger.Info().
		Str("account_id", stored.ID).
		Str("username", stored.Username).
		Msg("account created")
	return &stored, nil
}

// GetByUsername implements AccountRepository.
func (r *JSONAccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.find(ctx, username, func(a *domain.Account) bool { return a.Username == username })
}

// GetByID implements AccountRepository.
func (r *JSONAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.find(ctx, id, func(a *domain.Account) bool { return a.ID == id })
}

// List implements AccountRepository.
func (r *JSONAccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	return r.coll.ReadAll(ctx)
}

func (r *JSONAccountRepository) find(ctx context.Context, key string, match func(*domain.Account) bool) (*domain.Account, error) {
	accounts, err := r.coll.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if match(&accounts[i]) {
			return &accounts[i], nil
		}
	}
	return nil, domain.NewNotFoundError("account", key)
}
