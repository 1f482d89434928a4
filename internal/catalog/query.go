package catalog

import (
	"sort"

	"github.com/threadline/threadline-backend/pkg/db/models"
)

// Query filters the collection and stable-sorts the surviving subset.
// The input slice is never mutated; the result is always non-nil.
func Query(products []models.Product, search string, f Filters) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, f, search) {
			out = append(out, p)
		}
	}

	if f.SortBy.IsValid() {
		sort.SliceStable(out, func(i, j int) bool {
			return Compare(out[i], out[j], f.SortBy, f.SortOrder) < 0
		})
	}

	return out
}
