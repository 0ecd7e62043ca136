// Package bibliometrics derives citation statistics from a publication list.
//
// Everything here is a pure function of its input. Statistics are never cached
// or persisted; callers recompute them on every query.
package bibliometrics

import (
	"cmp"
	"slices"

	"github.com/helixir/academic-profile-service/internal/domain"
)

// I10Threshold is the citation count a publication needs to count towards the i10-index.
const I10Threshold = 10

// ComputeStatistics aggregates publications into a domain.Statistics.
// An empty input yields zero counts and empty (non-nil) lists.
func ComputeStatistics(publications []domain.Publication) domain.Statistics {
	counts := citationCounts(publications)
	stats := domain.Statistics{
		TotalPublications:  len(publications),
		HIndex:             HIndex(counts),
		I10Index:           I10Index(counts),
		CitationsByYear:    []domain.YearCitations{},
		PublicationsByYear: []domain.YearCount{},
		CitationsByType:    []domain.TypeCount{},
	}

	citationsByYear := make(map[int]int)
	countByYear := make(map[int]int)
	citationsByType := make(map[domain.PublicationType]int)

	for i := range publications {
		p := &publications[i]
		stats.TotalCitations += p.Citations
		citationsByYear[p.Year] += p.Citations
		countByYear[p.Year]++
		citationsByType[p.Type] += p.Citations
	}

	for _, year := range sortedKeys(countByYear) {
		stats.CitationsByYear = append(stats.CitationsByYear, domain.YearCitations{Year: year, Citations: citationsByYear[year]})
		stats.PublicationsByYear = append(stats.PublicationsByYear, domain.YearCount{Year: year, Count: countByYear[year]})
	}
	for _, t := range sortedKeys(citationsByType) {
		stats.CitationsByType = append(stats.CitationsByType, domain.TypeCount{Type: t, Count: citationsByType[t]})
	}

	return stats
}

// HIndex returns the largest h such that h of the given citation counts are
// at least h. The input is not modified.
func HIndex(citations []int) int {
	sorted := slices.Clone(citations)
	slices.SortStableFunc(sorted, func(a, b int) int { return cmp.Compare(b, a) })

	h := 0
	for i, c := range sorted {
		rank := i + 1
		if c < rank {
			break
		}
		h = rank
	}
	return h
}

// I10Index counts citation counts of at least I10Threshold.
func I10Index(citations []int) int {
	n := 0
	for _, c := range citations {
		if c >= I10Threshold {
			n++
		}
	}
	return n
}

func citationCounts(publications []domain.Publication) []int {
	counts := make([]int, len(publications))
	for i := range publications {
		counts[i] = publications[i].Citations
	}
	return counts
}

func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
