package report

import (
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pyhub-apps/swapstat/internal/swap"
)

// SimilarPair is two names within a small edit distance of each other
type SimilarPair struct {
	A        swap.StationCount
	B        swap.StationCount
	Distance int
}

// Similar returns every pair of names at most maxDistance edits apart, in
// ranked order of the first name. Counts are never merged.
func Similar(ranked []swap.StationCount, maxDistance int) []SimilarPair {
	if maxDistance <= 0 {
		return nil
	}

	var pairs []SimilarPair
	for i := 0; i < len(ranked); i++ {
		for j := i + 1; j < len(ranked); j++ {
			d := fuzzy.LevenshteinDistance(ranked[i].Name, ranked[j].Name)
			if d <= maxDistance {
				pairs = append(pairs, SimilarPair{A: ranked[i], B: ranked[j], Distance: d})
			}
		}
	}
	return pairs
}
