package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/helixir/academic-profile-service/internal/domain"
)

// errNoChange aborts an Update whose records are already current.
var errNoChange = errors.New("no change")

// MigrationReport counts the records touched by a migration or copy, per collection.
type MigrationReport struct {
	Accounts     int `json:"accounts"`
	Profiles     int `json:"profiles"`
	Publications int `json:"publications"`
}

// Migrator upgrades persisted records to domain.CurrentSchemaVersion and moves
// collections between backends.
type Migrator struct {
	store  *Store
	logger zerolog.Logger
}

// NewMigrator creates a migrator over store.
func NewMigrator(store *Store, logger zerolog.Logger) *Migrator {
	return &Migrator{
		store:  store,
		logger: logger.With().Str("component", "migrator").Logger(),
	}
}

// Up stamps every record older than domain.CurrentSchemaVersion. Records written
// before versioning existed carry version 0. A collection with nothing to
// upgrade is not rewritten.
func (m *Migrator) Up(ctx context.Context) (MigrationReport, error) {
	m.logger.Info().Int("target_version", domain.CurrentSchemaVersion).Msg("running store migrations...")

	var (
		report MigrationReport
		err    error
	)
	if report.Accounts, err = upgrade(ctx, m.store.Accounts, func(a *domain.Account) *int { return &a.SchemaVersion }); err != nil {
		return report, err
	}
	if report.Profiles, err = upgrade(ctx, m.store.Profiles, func(p *domain.Profile) *int { return &p.SchemaVersion }); err != nil {
		return report, err
	}
	if report.Publications, err = upgrade(ctx, m.store.Publications, func(p *domain.Publication) *int { return &p.SchemaVersion }); err != nil {
		return report, err
	}

	if report == (MigrationReport{}) {
		m.logger.Info().Msg("no migrations to apply")
	} else {
		m.logger.Info().
			Int("accounts", report.Accounts).
			Int("profiles", report.Profiles).
			Int("publications", report.Publications).
			Msg("migrations completed successfully")
	}
	return report, nil
}

// CopyTo replaces the collections of dst with the collections of the migrator's store.
func (m *Migrator) CopyTo(ctx context.Context, dst *Store) (MigrationReport, error) {
	m.logger.Info().Str("from", m.store.Kind()).Str("to", dst.Kind()).Msg("copying store...")

	var (
		report MigrationReport
		err    error
	)
	if report.Accounts, err = copyCollection(ctx, m.store.Accounts, dst.Accounts); err != nil {
		return report, err
	}
	if report.Profiles, err = copyCollection(ctx, m.store.Profiles, dst.Profiles); err != nil {
		return report, err
	}
	if report.Publications, err = copyCollection(ctx, m.store.Publications, dst.Publications); err != nil {
		return report, err
	}

	m.logger.Info().
		Int("accounts", report.Accounts).
		Int("profiles", report.Profiles).
		Int("publications", report.Publications).
		Msg("store copied")
	return report, nil
}

func upgrade[T any](ctx context.Context, c *Collection[T], version func(*T) *int) (int, error) {
	upgraded := 0
	err := c.Update(ctx, func(records []T) ([]T, error) {
		for i := range records {
			v := version(&records[i])
			if *v < domain.CurrentSchemaVersion {
				*v = domain.CurrentSchemaVersion
				upgraded++
			}
		}
		if upgraded == 0 {
			return nil, errNoChange
		}
		return records, nil
	})
	if errors.Is(err, errNoChange) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("migrate %s: %w", c.Name(), err)
	}
	return upgraded, nil
}

func copyCollection[T any](ctx context.Context, src, dst *Collection[T]) (int, error) {
	records, err := src.ReadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", src.Name(), err)
	}
	if err := dst.WriteAll(ctx, records); err != nil {
		return 0, fmt.Errorf("write %s: %w", dst.Name(), err)
	}
	return len(records), nil
}
