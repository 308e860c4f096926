// Package rank orders scored items for presentation.
package rank

import (
	"sort"

	"github.com/feedrank/feedrank/internal/feed"
)

// Rank sorts items by descending score, in place, and returns the slice.
// The sort is stable by requirement: scores are clamped finite and
// non-negative upstream, so ordering is total and items with equal scores
// retain their relative input order.
func Rank(items []feed.ScoredItem) []feed.ScoredItem {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	return items
}
