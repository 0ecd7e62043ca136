package bibliometrics

import (
	"cmp"
	"slices"

	"github.com/helixir/academic-profile-service/internal/domain"
)

// SortKey selects the ordering used by Rank.
type SortKey string

const (
	// SortRecent orders by publication year, newest first.
	SortRecent SortKey = "recent"
	// SortCitations orders by citation count, most cited first.
	SortCitations SortKey = "citations"
)

// ParseSortKey maps a query value to a SortKey. Unknown values fall back to SortRecent.
func ParseSortKey(s string) SortKey {
	if SortKey(s) == SortCitations {
		return SortCitations
	}
	return SortRecent
}

// Rank returns a sorted copy of publications truncated to limit entries.
// Ties keep their input order. A limit <= 0 returns every publication.
func Rank(publications []domain.Publication, key SortKey, limit int) []domain.Publication {
	ranked := slices.Clone(publications)
	if ranked == nil {
		ranked = []domain.Publication{}
	}

	switch key {
	case SortCitations:
		slices.SortStableFunc(ranked, func(a, b domain.Publication) int { return cmp.Compare(b.Citations, a.Citations) })
	default:
		slices.SortStableFunc(ranked, func(a, b domain.Publication) int { return cmp.Compare(b.Year, a.Year) })
	}

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// TopCited returns the n most cited publications.
func TopCited(publications []domain.Publication, n int) []domain.Publication {
	return Rank(publications, SortCitations, n)
}

// MostRecent returns the n newest publications.
func MostRecent(publications []domain.Publication, n int) []domain.Publication {
	return Rank(publications, SortRecent, n)
}
