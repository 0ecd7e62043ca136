// Package auth provides researcher accounts and sessions: registration with
// bcrypt password hashes, login issuing HS256 session tokens, and token
// verification that yields the verified owner id used by the admin API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/helixir/academic-profile-service/internal/domain"
	"github.com/helixir/academic-profile-service/internal/observability"
	"github.com/helixir/academic-profile-service/internal/repository"
)

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

// ErrInvalidCredentials is returned by Login for an unknown user or a wrong password.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)

// AccountView is the public part of an account.
type AccountView struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Session is the result of a successful login or registration.
type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	Account   AccountView `json:"user"`
}

// Service implements registration, login and token resolution.
type Service struct {
	accounts repository.AccountRepository
	tokens   *TokenIssuer
	limiter  *LoginLimiter
	logger   zerolog.Logger
	metrics  *observability.Metrics
	hashCost int
}

// Option configures a Service.
type Option func(*Service)

// WithHashCost overrides the bcrypt cost.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

// WithLoginLimiter sets the per-client login limiter.
func WithLoginLimiter(l *LoginLimiter) Option {
	return func(s *Service) { s.limiter = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates an auth service.
func NewService(accounts repository.AccountRepository, tokens *TokenIssuer, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		accounts: accounts,
		tokens:   tokens,
		logger:   logger.With().Str("component", "auth").Logger(),
		hashCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TokenTTL returns the session lifetime.
func (s *Service) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

// Register creates an account and signs the caller in.
// Returns domain.ErrAlreadyExists for a taken username and
// domain.ErrInvalidInput for missing or malformed fields.
func (s *Service) Register(ctx context.Context, username, password, email string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.NewValidationError("username", "is required")
	}
	if strings.TrimSpace(password) == "" {
		return nil, domain.NewValidationError("password", "is required")
	}
	if len(password) > maxPasswordBytes {
		return nil, domain.NewValidationError("password", fmt.Sprintf("must be at most %d bytes", maxPasswordBytes))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.accounts.Create(ctx, &domain.Account{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", account.ID).Str("username", account.Username).Msg("account registered")
	return s.session(account)
}

// Login verifies credentials and issues a session token. client identifies the
// caller for rate limiting (usually the remote IP).
// Returns domain.ErrRateLimited when client has exhausted its attempts and
// ErrInvalidCredentials for an unknown user or wrong password.
func (s *Service) Login(ctx context.Context, username, password, client string) (*Session, error) {
	if !s.limiter.Allow(client) {
		s.metrics.RecordLoginFailed("rate_limited")
		s.logger.Warn().Str("client", client).Msg("login rate limited")
		return nil, domain.ErrRateLimited
	}

	account, err := s.accounts.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.RecordLoginFailed("invalid_credentials")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		s.metrics.RecordLoginFailed("invalid_credentials")
		return nil, ErrInvalidCredentials
	}

	s.metrics.RecordLoginSucceeded()
	s.logger.Info().Str("account_id", account.ID).Msg("login succeeded")
	return s.session(account)
}

// Authenticate verifies a token and returns its claims.
// Returns domain.ErrUnauthorized for any invalid token.
func (s *Service) Authenticate(token string) (*Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing token", domain.ErrUnauthorized)
	}
	return s.tokens.Verify(token)
}

// Me resolves the account behind a token. An absent, invalid or orphaned token
// yields (nil, nil); only storage failures are returned as errors.
func (s *Service) Me(ctx context.Context, token string) (*AccountView, error) {
	claims, err := s.Authenticate(token)
	if err != nil {
		return nil, nil
	}

	account, err := s.accounts.GetByID(ctx, claims.UID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	view := viewOf(account)
	return &view, nil
}

func (s *Service) session(account *domain.Account) (*Session, error) {
	token, expires, err := s.tokens.Issue(account.ID, account.Username)
	if err != nil {
		return nil, err
	}
	return &Session{
		Token:     token,
		ExpiresAt: expires,
		Account:   viewOf(account),
	}, nil
}

func viewOf(a *domain.Account) AccountView {
	return AccountView{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}
