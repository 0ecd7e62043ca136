package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/helixir/academic-profile-service/internal/domain"
	"github.com/helixir/academic-profile-service/internal/observability"
)

var emptyDocument = []byte("[]")

// Collection is a typed view of one persisted JSON array.
type Collection[T any] struct {
	name    string
	backend Backend
	logger  zerolog.Logger
	metrics *observability.Metrics

	// mu serialises writers; readers take the read lock so they never
	// interleave with a first-access initialisation.
	mu sync.RWMutex
}

// NewCollection returns a typed collection stored under name.
// metrics may be nil.
func NewCollection[T any](backend Backend, name string, logger zerolog.Logger, metrics *observability.Metrics) *Collection[T] {
	return &Collection[T]{
		name:    name,
		backend: backend,
		logger: logger.With().
			Str("component", "docstore").
			Str("collection", name).
			Str("backend", backend.Kind()).
			Logger(),
		metrics: metrics,
	}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string { return c.name }

// ReadAll returns every record in insertion order.
// A collection that does not exist yet is created empty and read as empty.
// Returns a *domain.StorageFaultError if the document is unreadable or corrupt.
func (c *Collection[T]) ReadAll(ctx context.Context) ([]T, error) {
	c.mu.RLock()
	records, missing, err := c.load(ctx)
	c.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	if missing {
		c.initialise(ctx)
	}
	return records, nil
}

// WriteAll replaces the whole collection with records.
func (c *Collection[T]) WriteAll(ctx context.Context, records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, records)
}

// Update runs a read-modify-write cycle under the collection's write lock.
// fn receives the current records and returns the records to persist.
// If fn returns an error nothing is written and the error is returned as is.
func (c *Collection[T]) Update(ctx context.Context, fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, _, err := c.load(ctx)
	if err != nil {
		return err
	}

	updated, err := fn(records)
	if err != nil {
		return err
	}
	return c.save(ctx, updated)
}

// load reads and decodes the document. missing reports that the collection
// has never been written.
func (c *Collection[T]) load(ctx context.Context) (records []T, missing bool, err error) {
	data, err := c.backend.Load(ctx, c.name)
	c.metrics.RecordStoreRead(c.name)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			c.logger.Debug().Msg("collection not found, treating as empty")
			return []T{}, true, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, false, ctxErr
		}
		c.metrics.RecordStoreFault(c.name)
		c.logger.Error().Err(err).Msg("collection is unreadable")
		return nil, false, domain.NewStorageFaultError(c.name, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, false, nil
	}

	if err := json.Unmarshal(data, &records); err != nil {
		c.metrics.RecordStoreFault(c.name)
		c.logger.Error().Err(err).Int("bytes", len(data)).Msg("collection is corrupt")
		return nil, false, domain.NewStorageFaultError(c.name, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, false, nil
}

func (c *Collection[T]) save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}

	start := time.Now()
	if err := c.backend.Save(ctx, c.name, data); err != nil {
		c.logger.Error().Err(err).Msg("collection write failed")
		return fmt.Errorf("save %s: %w", c.name, err)
	}
	c.metrics.RecordStoreWrite(c.name, time.Since(start).Seconds())

	c.logger.Debug().Int("records", len(records)).Msg("collection written")
	return nil
}

// initialise writes an empty document for a missing collection so that
// first-run state is visible on disk. Failures are logged, not returned:
// the caller already has a valid (empty) result.
func (c *Collection[T]) initialise(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.backend.Load(ctx, c.name); !errors.Is(err, ErrNotExist) {
		return
	}
	if err := c.backend.Save(ctx, c.name, emptyDocument); err != nil {
		c.logger.Warn().Err(err).Msg("failed to initialise empty collection")
		return
	}
	c.logger.Info().Msg("initialised empty collection")
}

// Ensure creates the collection as an empty document if it does not exist.
func (c *Collection[T]) Ensure(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.backend.Load(ctx, c.name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotExist) {
		return domain.NewStorageFaultError(c.name, err)
	}
	if err := c.backend.Save(ctx, c.name, emptyDocument); err != nil {
		return fmt.Errorf("initialise %s: %w", c.name, err)
	}
	c.logger.Info().Msg("initialised empty collection")
	return nil
}
