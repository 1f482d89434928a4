package catalog

import (
	"strings"

	"github.com/threadline/threadline-backend/pkg/db/models"
	"github.com/threadline/threadline-backend/pkg/enums"
)

// Compare orders two products by the requested field and direction, returning
// -1, 0 or 1. An unknown sort field yields 0 so callers never reorder on it.
func Compare(a, b models.Product, sortBy enums.SortField, sortOrder enums.SortOrder) int {
	base := compareField(a, b, sortBy)
	if sortOrder == enums.SortOrderDesc {
		return -base
	}
	return base
}

func compareField(a, b models.Product, sortBy enums.SortField) int {
	switch sortBy {
	case enums.SortFieldName:
		return compareStrings(a.Name, b.Name)
	case enums.SortFieldPrice:
		return a.Price.Cmp(b.Price)
	case enums.SortFieldStock:
		return compareInts(a.Stock, b.Stock)
	case enums.SortFieldCategory:
		return compareStrings(string(a.Category), string(b.Category))
	default:
		return 0
	}
}

func compareStrings(a, b string) int {
	// Case-insensitive first so "apple" and "Apple" group together,
	// falling back to a byte compare for determinism.
	if folded := strings.Compare(strings.ToLower(a), strings.ToLower(b)); folded != 0 {
		return folded
	}
	return strings.Compare(a, b)
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
