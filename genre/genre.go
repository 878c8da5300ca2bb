// Package genre holds the genre handling shared by the personality scorers
// and the listener snapshot.
package genre

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Normalize case-folds a genre label. It is the only normalization applied
// before a table lookup: no trimming, no synonyms.
func Normalize(g string) string {
	return strings.ToLower(g)
}

// Rank counts every genre across the given per-artist genre lists and returns
// the n most common, highest count first. Equal counts keep the order in which
// the genre was first seen. A non-positive n returns every genre.
func Rank(lists [][]string, n int) []string {
	counts := make(map[string]int)
	var order []string

	for _, genres := range lists {
		for _, g := range genres {
			if _, seen := counts[g]; !seen {
				order = append(order, g)
			}
			counts[g]++
		}
	}

	slices.SortStableFunc(order, func(a, b string) int {
		return counts[b] - counts[a]
	})

	if n > 0 && len(order) > n {
		order = order[:n]
	}
	return order
}
