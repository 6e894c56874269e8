package pipeline

import (
	"sort"

	"github.com/theirongolddev/dinebal/internal/model"
)

// Merge dedupes transactions by ID across files and sorts them by time.
// When two files carry the same ID the one later in the input wins, so
// exports discovered later (sorted by path) override earlier ones.
// It returns the merged slice and how many duplicates were dropped.
func Merge(txns []model.Transaction) ([]model.Transaction, int) {
	idx := make(map[string]int, len(txns))
	out := make([]model.Transaction, 0, len(txns))
	dups := 0
	for _, t := range txns {
		if i, ok := idx[t.ID]; ok {
			out[i] = t
			dups++
			continue
		}
		idx[t.ID] = len(out)
		out = append(out, t)
	}
	SortByTime(out)
	return out, dups
}

// SortByTime orders transactions chronologically, breaking ties by ID so the
// result does not depend on input order.
func SortByTime(txns []model.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		if !txns[i].Time.Equal(txns[j].Time) {
			return txns[i].Time.Before(txns[j].Time)
		}
		return txns[i].ID < txns[j].ID
	})
}
