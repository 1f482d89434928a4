package products

import (
	"strings"

	"github.com/threadline/threadline-backend/pkg/enums"
)

var categoryKeywords = map[enums.ProductCategory][]string{
	enums.ProductCategoryTShirts: {"tshirt", "t-shirt", "tee", "tank top"},
	enums.ProductCategoryHoodies: {"hoodie", "sweatshirt", "sweater"},
	enums.ProductCategoryShirts:  {"shirt", "polo", "button-up", "dress shirt"},
	enums.ProductCategoryCaps:    {"cap", "hat", "beanie", "snapback"},
}

var (
	commonTagKeywords = []string{"new", "sale", "popular", "trending", "featured"}
	colorTagKeywords  = []string{"red", "blue", "green", "black", "white", "gray", "yellow"}
)

// AutoCategorize guesses a category from free text, or "" when nothing matches.
// Categories are checked in display order so the most specific keywords
// ("tshirt", "tee") win over the generic "shirt".
func AutoCategorize(name, description string) enums.ProductCategory {
	text := strings.ToLower(name + " " + description)
	for _, category := range enums.ProductCategories() {
		for _, word := range categoryKeywords[category] {
			if strings.Contains(text, word) {
				return category
			}
		}
	}
	return ""
}

// GenerateTags derives tags from the listing text: the category itself plus
// any promo or color keyword found in the name or description.
func GenerateTags(name, category, description string) []string {
	tags := make([]string, 0, 4)
	seen := map[string]bool{}
	add := func(tag string) {
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	add(strings.ToLower(category))

	text := strings.ToLower(name + " " + description)
	for _, keyword := range commonTagKeywords {
		if strings.Contains(text, keyword) {
			add(keyword)
		}
	}
	for _, color := range colorTagKeywords {
		if strings.Contains(text, color) {
			add(color)
		}
	}
	return tags
}

// SuggestReorderQuantity proposes restocking to twice the low-stock threshold
// once the current stock falls to the threshold or below.
func SuggestReorderQuantity(stock, lowStockThreshold int) (int, bool) {
	if stock <= lowStockThreshold {
		return lowStockThreshold * 2, true
	}
	return 0, false
}
