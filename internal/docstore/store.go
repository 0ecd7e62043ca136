package docstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/rs/zerolog"

	"github.com/helixir/academic-profile-service/internal/domain"
	"github.com/helixir/academic-profile-service/internal/observability"
)

// Backend kinds accepted by Open.
const (
	BackendFile = "file"
	BackendBolt = "bolt"
)

// Options selects and configures the storage backend.
type Options struct {
	// Backend is "file" (default) or "bolt".
	Backend string
	// DataDir is the directory holding <collection>.json files.
	DataDir string
	// FileMode is the permission of collection files (default 0644).
	FileMode fs.FileMode
	// BoltPath is the bbolt database file.
	BoltPath string
	// BoltTimeout bounds how long Open waits for the bbolt file lock.
	BoltTimeout time.Duration
}

// Store bundles the three independent collections of the service.
type Store struct {
	backend      Backend
	Accounts     *Collection[domain.Account]
	Profiles     *Collection[domain.Profile]
	Publications *Collection[domain.Publication]
}

// Open creates the configured backend and its collections.
func Open(opts Options, logger zerolog.Logger, metrics *observability.Metrics) (*Store, error) {
	var (
		backend Backend
		err     error
	)

	switch opts.Backend {
	case "", BackendFile:
		backend, err = NewFileBackend(opts.DataDir, opts.FileMode)
	case BackendBolt:
		backend, err = NewBoltBackend(opts.BoltPath, opts.BoltTimeout)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %q", opts.Backend)
	}
	if err != nil {
		return nil, err
	}

	return NewStore(backend, logger, metrics), nil
}

// NewStore wraps an existing backend.
func NewStore(backend Backend, logger zerolog.Logger, metrics *observability.Metrics) *Store {
	return &Store{
		backend:      backend,
		Accounts:     NewCollection[domain.Account](backend, CollectionAccounts, logger, metrics),
		Profiles:     NewCollection[domain.Profile](backend, CollectionProfiles, logger, metrics),
		Publications: NewCollection[domain.Publication](backend, CollectionPublications, logger, metrics),
	}
}

// Init makes first run idempotent by creating any missing collection as "[]".
func (s *Store) Init(ctx context.Context) error {
	return errors.Join(
		s.Accounts.Ensure(ctx),
		s.Profiles.Ensure(ctx),
		s.Publications.Ensure(ctx),
	)
}

// Health reports whether the backend is reachable.
func (s *Store) Health(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

// Kind returns the backend kind.
func (s *Store) Kind() string {
	return s.backend.Kind()
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
