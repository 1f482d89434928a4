package enums

import (
	"fmt"
	"strings"
)

// ProductCategory represents the canonical product categories carried by the store.
type ProductCategory string

const (
	ProductCategoryTShirts ProductCategory = "T-Shirts"
	ProductCategoryHoodies ProductCategory = "Hoodies"
	ProductCategoryShirts  ProductCategory = "Shirts"
	ProductCategoryCaps    ProductCategory = "Caps"
)

var validProductCategories = []ProductCategory{
	ProductCategoryTShirts,
	ProductCategoryHoodies,
	ProductCategoryShirts,
	ProductCategoryCaps,
}

// ProductCategories returns the canonical category list in display order.
func ProductCategories() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
// Matching is case-insensitive; the canonical casing is returned.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if strings.EqualFold(string(candidate), value) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
