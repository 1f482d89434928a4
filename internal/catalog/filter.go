package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/threadline/threadline-backend/pkg/db/models"
	"github.com/threadline/threadline-backend/pkg/enums"
)

// DateRange bounds createdAt inclusively; a nil side is unbounded.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Filters captures every optional catalog constraint. A zero-value field
// means "no constraint on this dimension".
type Filters struct {
	Category  string
	Featured  *bool
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	InStock   *bool
	DateRange DateRange
	SortBy    enums.SortField
	SortOrder enums.SortOrder
}

// DefaultFilters returns the unconstrained filter set with the default ordering.
func DefaultFilters() Filters {
	return Filters{
		SortBy:    enums.SortFieldName,
		SortOrder: enums.SortOrderAsc,
	}
}

// Matches reports whether the product satisfies every active constraint.
// All predicates combine by AND and the function is side-effect free.
func Matches(p models.Product, f Filters, search string) bool {
	if !matchesSearch(p, search) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(string(p.Category), f.Category) {
		return false
	}
	if f.Featured != nil && p.ShowHome != *f.Featured {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.InStock != nil {
		// Binary in/out-of-stock filter, unrelated to the low-stock statistic.
		if *f.InStock && p.Stock <= 0 {
			return false
		}
		if !*f.InStock && p.Stock != 0 {
			return false
		}
	}
	if !matchesDateRange(p.CreatedAt, f.DateRange) {
		return false
	}
	return true
}

func matchesSearch(p models.Product, search string) bool {
	query := strings.ToLower(strings.TrimSpace(search))
	if query == "" {
		return true
	}
	for _, field := range []string{p.Name, p.Description, string(p.Category)} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func matchesDateRange(createdAt time.Time, r DateRange) bool {
	if r.Start != nil && createdAt.Before(*r.Start) {
		return false
	}
	if r.End != nil && createdAt.After(*r.End) {
		return false
	}
	return true
}
