package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/threadline/threadline-backend/pkg/db/models"
	"github.com/threadline/threadline-backend/pkg/enums"
)

func boolPtr(v bool) *bool { return &v }

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func timePtr(v time.Time) *time.Time { return &v }

func testProduct(name string, category enums.ProductCategory, price string, stock int) models.Product {
	return models.Product{
		Name:        name,
		Description: name + " description",
		Category:    category,
		Price:       decimal.RequireFromString(price),
		Stock:       stock,
		CreatedAt:   time.Date(2026, time.February, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestMatches_Search(t *testing.T) {
	hoodie := testProduct("Coastal Hoodie", enums.ProductCategoryHoodies, "49.99", 12)

	cases := []struct {
		name   string
		search string
		want   bool
	}{
		{name: "empty query matches everything", search: "", want: true},
		{name: "blank query matches everything", search: "   ", want: true},
		{name: "matches name case-insensitively", search: "coastal", want: true},
		{name: "matches description", search: "hoodie description", want: true},
		{name: "matches category", search: "hoodies", want: true},
		{name: "no field contains query", search: "sneaker", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Matches(hoodie, DefaultFilters(), tc.search); got != tc.want {
				t.Fatalf("Matches(%q) = %v, want %v", tc.search, got, tc.want)
			}
		})
	}
}

func TestMatches_Category(t *testing.T) {
	cap := testProduct("Harbor Cap", enums.ProductCategoryCaps, "15.00", 4)

	f := DefaultFilters()
	f.Category = "caps"
	if !Matches(cap, f, "") {
		t.Fatal("category match should be case-insensitive")
	}

	f.Category = "Hoodies"
	if Matches(cap, f, "") {
		t.Fatal("different category must not match")
	}
}

func TestMatches_Featured(t *testing.T) {
	shirt := testProduct("Linen Shirt", enums.ProductCategoryShirts, "35.00", 8)
	shirt.ShowHome = true

	f := DefaultFilters()
	f.Featured = boolPtr(true)
	if !Matches(shirt, f, "") {
		t.Fatal("featured product should match featured=true")
	}

	f.Featured = boolPtr(false)
	if Matches(shirt, f, "") {
		t.Fatal("featured product must not match featured=false")
	}
}

func TestMatches_PriceBoundsInclusive(t *testing.T) {
	tee := testProduct("Basic Tee", enums.ProductCategoryTShirts, "20.00", 10)

	cases := []struct {
		name string
		min  *decimal.Decimal
		max  *decimal.Decimal
		want bool
	}{
		{name: "no bounds", want: true},
		{name: "min equal to price", min: decPtr("20.00"), want: true},
		{name: "max equal to price", max: decPtr("20.00"), want: true},
		{name: "inside range", min: decPtr("10.00"), max: decPtr("30.00"), want: true},
		{name: "below min", min: decPtr("20.01"), want: false},
		{name: "above max", max: decPtr("19.99"), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := DefaultFilters()
			f.MinPrice = tc.min
			f.MaxPrice = tc.max
			if got := Matches(tee, f, ""); got != tc.want {
				t.Fatalf("Matches = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMatches_StockIsBinary(t *testing.T) {
	inStock := testProduct("B Shirt", enums.ProductCategoryShirts, "20.00", 3)
	outOfStock := testProduct("A Cap", enums.ProductCategoryCaps, "10.00", 0)

	f := DefaultFilters()
	f.InStock = boolPtr(true)
	if !Matches(inStock, f, "") {
		t.Fatal("stock>0 should match inStock=true")
	}
	if Matches(outOfStock, f, "") {
		t.Fatal("stock==0 must not match inStock=true")
	}

	f.InStock = boolPtr(false)
	if Matches(inStock, f, "") {
		t.Fatal("stock>0 must not match inStock=false")
	}
	if !Matches(outOfStock, f, "") {
		t.Fatal("stock==0 should match inStock=false")
	}
}

func TestMatches_DateRangeInclusive(t *testing.T) {
	product := testProduct("Dated Tee", enums.ProductCategoryTShirts, "20.00", 5)
	createdAt := product.CreatedAt

	cases := []struct {
		name  string
		start *time.Time
		end   *time.Time
		want  bool
	}{
		{name: "unbounded", want: true},
		{name: "start equals createdAt", start: timePtr(createdAt), want: true},
		{name: "end equals createdAt", end: timePtr(createdAt), want: true},
		{name: "start after createdAt", start: timePtr(createdAt.Add(time.Second)), want: false},
		{name: "end before createdAt", end: timePtr(createdAt.Add(-time.Second)), want: false},
		{name: "only start bounded", start: timePtr(createdAt.Add(-time.Hour)), want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := DefaultFilters()
			f.DateRange = DateRange{Start: tc.start, End: tc.end}
			if got := Matches(product, f, ""); got != tc.want {
				t.Fatalf("Matches = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMatches_AllPredicatesCombineByAnd(t *testing.T) {
	product := testProduct("Coastal Hoodie", enums.ProductCategoryHoodies, "49.99", 12)
	product.ShowHome = true

	f := DefaultFilters()
	f.Category = "Hoodies"
	f.Featured = boolPtr(true)
	f.MinPrice = decPtr("40.00")
	f.InStock = boolPtr(true)

	if !Matches(product, f, "coastal") {
		t.Fatal("product satisfying every predicate should match")
	}

	f.MinPrice = decPtr("50.00")
	if Matches(product, f, "coastal") {
		t.Fatal("one failing predicate must exclude the product")
	}
}
