// Package directory assembles the public views of the academic directory:
// profile search, ranked publication lists, owner and platform statistics,
// researcher pages and the landing carousel.
//
// Views read through the repositories on every call and recompute statistics
// from the current publication snapshot. When real content is scarcer than the
// configured threshold the landing view is padded with placeholder records.
// Placeholders are flagged, never persisted, and only raise display totals to
// max(real, placeholder).
package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/helixir/academic-profile-service/internal/bibliometrics"
	"github.com/helixir/academic-profile-service/internal/domain"
	"github.com/helixir/academic-profile-service/internal/observability"
	"github.com/helixir/academic-profile-service/internal/repository"
)

// Statistics scopes reported to metrics.
const (
	scopeOwner  = "owner"
	scopeGlobal = "global"
)

// Config tunes list sizes and placeholder padding.
type Config struct {
	// PlaceholderThreshold is the minimum section size before padding kicks in.
	PlaceholderThreshold int
	// DefaultLimit applies when a caller asks for no explicit limit.
	DefaultLimit int
	// MaxLimit caps caller supplied limits.
	MaxLimit int
	// FeaturedLimit is the size of each landing section.
	FeaturedLimit int
	// PlaceholdersEnabled turns padding on.
	PlaceholdersEnabled bool
}

// DefaultConfig returns the landing defaults.
func DefaultConfig() Config {
	return Config{
		PlaceholderThreshold: 3,
		DefaultLimit:         10,
		MaxLimit:             100,
		FeaturedLimit:        5,
		PlaceholdersEnabled:  true,
	}
}

// ProfileCard is a profile as shown in public listings.
type ProfileCard struct {
	domain.Profile
	Placeholder bool `json:"placeholder,omitempty"`
}

// PublicationCard is a publication as shown in public listings.
type PublicationCard struct {
	domain.Publication
	Placeholder bool `json:"placeholder,omitempty"`
}

// PlatformStats are the headline figures of the landing page.
type PlatformStats struct {
	TotalProfiles     int `json:"totalProfiles"`
	TotalPublications int `json:"totalPublications"`
	TotalCitations    int `json:"totalCitations"`
}

// Landing is the carousel payload.
type Landing struct {
	Profiles           []ProfileCard     `json:"profiles"`
	RecentPublications []PublicationCard `json:"recentPublications"`
	TopPublications    []PublicationCard `json:"topPublications"`
	Stats              PlatformStats     `json:"stats"`
}

// ProfilePage is a researcher's public page.
type ProfilePage struct {
	Profile      domain.Profile       `json:"profile"`
	Publications []domain.Publication `json:"publications"`
	Statistics   domain.Statistics    `json:"statistics"`
}

// Service composes repositories and the bibliometrics engine into public views.
type Service struct {
	profiles     repository.ProfileRepository
	publications repository.PublicationRepository
	cfg          Config
	logger       zerolog.Logger
	metrics      *observability.Metrics
}

// NewService creates a directory service. metrics may be nil.
func NewService(
	profiles repository.ProfileRepository,
	publications repository.PublicationRepository,
	cfg Config,
	logger zerolog.Logger,
	metrics *observability.Metrics,
) *Service {
	return &Service{
		profiles:     profiles,
		publications: publications,
		cfg:          cfg,
		logger:       logger.With().Str("component", "directory").Logger(),
		metrics:      metrics,
	}
}

// Search returns the profiles matching query (all profiles for an empty query).
func (s *Service) Search(ctx context.Context, query string) ([]domain.Profile, error) {
	profiles, err := s.profiles.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search profiles: %w", err)
	}
	s.metrics.RecordSearch(len(profiles))
	return profiles, nil
}

// ClampLimit maps a requested limit onto [1, MaxLimit], using DefaultLimit for
// non-positive requests.
func (s *Service) ClampLimit(limit int) int {
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if s.cfg.MaxLimit > 0 && limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}
	return limit
}

// ListPublications returns all publications ordered by key, truncated to the clamped limit.
func (s *Service) ListPublications(ctx context.Context, key bibliometrics.SortKey, limit int) ([]domain.Publication, error) {
	all, err := s.publications.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list publications: %w", err)
	}
	return bibliometrics.Rank(all, key, s.ClampLimit(limit)), nil
}

// TopCited returns the n most cited publications across all owners.
func (s *Service) TopCited(ctx context.Context, n int) ([]domain.Publication, error) {
	return s.ListPublications(ctx, bibliometrics.SortCitations, n)
}

// MostRecent returns the n newest publications across all owners.
func (s *Service) MostRecent(ctx context.Context, n int) ([]domain.Publication, error) {
	return s.ListPublications(ctx, bibliometrics.SortRecent, n)
}

// Publication returns a single publication by id. Placeholder publications
// shown on the landing page resolve too while padding is enabled.
// Returns domain.ErrNotFound otherwise.
func (s *Service) Publication(ctx context.Context, id string) (*PublicationCard, error) {
	pub, err := s.publications.Get(ctx, id)
	if err == nil {
		return &PublicationCard{Publication: *pub}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get publication: %w", err)
	}

	if s.cfg.PlaceholdersEnabled {
		for _, p := range placeholderPublications() {
			if p.ID == id {
				return &PublicationCard{Publication: p, Placeholder: true}, nil
			}
		}
	}
	return nil, err
}

// Statistics computes fresh statistics for ownerID, or for the whole platform
// when ownerID is empty.
func (s *Service) Statistics(ctx context.Context, ownerID string) (domain.Statistics, error) {
	var (
		pubs  []domain.Publication
		err   error
		scope = scopeGlobal
	)
	if ownerID != "" {
		scope = scopeOwner
		pubs, err = s.publications.ListByOwner(ctx, ownerID)
	} else {
		pubs, err = s.publications.ListAll(ctx)
	}
	if err != nil {
		return domain.Statistics{}, fmt.Errorf("load publications for statistics: %w", err)
	}

	return s.compute(scope, pubs), nil
}

// ProfilePage returns the owner's profile, publications and statistics.
// Returns domain.ErrNotFound if the owner has no profile.
func (s *Service) ProfilePage(ctx context.Context, ownerID string) (*ProfilePage, error) {
	profile, err := s.profiles.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	pubs, err := s.publications.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list publications: %w", err)
	}

	return &ProfilePage{
		Profile:      *profile,
		Publications: pubs,
		Statistics:   s.compute(scopeOwner, pubs),
	}, nil
}

// Carousel assembles the landing payload.
func (s *Service) Carousel(ctx context.Context) (*Landing, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	pubs, err := s.publications.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list publications: %w", err)
	}

	size := s.cfg.FeaturedLimit
	landing := &Landing{
		Profiles:           s.featuredProfiles(profiles, size),
		RecentPublications: s.padPublications(bibliometrics.MostRecent(pubs, size), bibliometrics.SortRecent, size),
		TopPublications:    s.padPublications(bibliometrics.TopCited(pubs, size), bibliometrics.SortCitations, size),
		Stats:              s.platformStats(profiles, pubs),
	}

	s.logger.Debug().
		Int("profiles", len(profiles)).
		Int("publications", len(pubs)).
		Int("featured", len(landing.Profiles)).
		Msg("carousel assembled")
	return landing, nil
}

func (s *Service) compute(scope string, pubs []domain.Publication) domain.Statistics {
	start := time.Now()
	stats := bibliometrics.ComputeStatistics(pubs)
	s.metrics.RecordStatisticsComputed(scope, time.Since(start).Seconds())
	return stats
}

// featuredProfiles picks real profiles with a photo, padding with placeholders
// up to the threshold.
func (s *Service) featuredProfiles(profiles []domain.Profile, size int) []ProfileCard {
	cards := make([]ProfileCard, 0, size)
	for i := range profiles {
		if len(cards) == size {
			break
		}
		if profiles[i].Photo != "" {
			cards = append(cards, ProfileCard{Profile: profiles[i]})
		}
	}

	if !s.cfg.PlaceholdersEnabled || len(cards) >= s.cfg.PlaceholderThreshold {
		return cards
	}
	for _, p := range placeholderProfiles() {
		if len(cards) >= s.cfg.PlaceholderThreshold {
			break
		}
		cards = append(cards, ProfileCard{Profile: p, Placeholder: true})
	}
	return cards
}

// padPublications fills a section that is below the threshold with placeholders,
// ordered the same way as the section, up to size entries.
func (s *Service) padPublications(ranked []domain.Publication, key bibliometrics.SortKey, size int) []PublicationCard {
	cards := make([]PublicationCard, 0, size)
	for i := range ranked {
		cards = append(cards, PublicationCard{Publication: ranked[i]})
	}

	if !s.cfg.PlaceholdersEnabled || len(cards) >= s.cfg.PlaceholderThreshold {
		return cards
	}
	for _, p := range bibliometrics.Rank(placeholderPublications(), key, 0) {
		if len(cards) >= size {
			break
		}
		cards = append(cards, PublicationCard{Publication: p, Placeholder: true})
	}
	return cards
}

// platformStats reports real totals, raised to the placeholder totals when
// padding is enabled. Real and placeholder figures are never summed.
func (s *Service) platformStats(profiles []domain.Profile, pubs []domain.Publication) PlatformStats {
	actual := PlatformStats{
		TotalProfiles:     len(profiles),
		TotalPublications: len(pubs),
		TotalCitations:    bibliometrics.ComputeStatistics(pubs).TotalCitations,
	}
	if !s.cfg.PlaceholdersEnabled {
		return actual
	}

	samples := placeholderPublications()
	return PlatformStats{
		TotalProfiles:     max(actual.TotalProfiles, len(placeholderProfiles())),
		TotalPublications: max(actual.TotalPublications, len(samples)),
		TotalCitations:    max(actual.TotalCitations, bibliometrics.ComputeStatistics(samples).TotalCitations),
	}
}
