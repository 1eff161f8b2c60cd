package recommend

import "sort"

// SortByRelevance orders recommendations by relevance score descending.
// The sort is stable: equal scores keep their original catalog order, which
// is what makes the final ranking deterministic and testable.
func SortByRelevance(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].RelevanceScore > recs[j].RelevanceScore
	})
}

// Truncate returns at most n recommendations, preserving order.
func Truncate(recs []Recommendation, n int) []Recommendation {
	if len(recs) <= n {
		return recs
	}
	return recs[:n]
}
