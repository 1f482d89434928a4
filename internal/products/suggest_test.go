package products

import (
	"reflect"
	"testing"

	"github.com/threadline/threadline-backend/pkg/enums"
)

func TestAutoCategorize(t *testing.T) {
	cases := []struct {
		name        string
		productName string
		description string
		want        enums.ProductCategory
	}{
		{name: "tee keyword", productName: "Vintage Tee", description: "", want: enums.ProductCategoryTShirts},
		{name: "hoodie keyword in description", productName: "Winter Layer", description: "cozy sweatshirt", want: enums.ProductCategoryHoodies},
		{name: "polo maps to shirts", productName: "Club Polo", description: "", want: enums.ProductCategoryShirts},
		{name: "beanie maps to caps", productName: "Wool Beanie", description: "", want: enums.ProductCategoryCaps},
		{name: "tshirt beats generic shirt", productName: "Graphic T-Shirt", description: "", want: enums.ProductCategoryTShirts},
		{name: "case-insensitive", productName: "SNAPBACK Deluxe", description: "", want: enums.ProductCategoryCaps},
		{name: "no keyword", productName: "Leather Belt", description: "full grain", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AutoCategorize(tc.productName, tc.description); got != tc.want {
				t.Fatalf("AutoCategorize = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGenerateTags(t *testing.T) {
	got := GenerateTags("New Black Tee", "T-Shirts", "popular black cotton")
	want := []string{"t-shirts", "new", "popular", "black"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GenerateTags = %v, want %v", got, want)
	}
}

func TestGenerateTags_CategoryOnly(t *testing.T) {
	got := GenerateTags("Plain Product", "Caps", "nothing notable")
	if !reflect.DeepEqual(got, []string{"caps"}) {
		t.Fatalf("GenerateTags = %v, want just the category", got)
	}
}

func TestSuggestReorderQuantity(t *testing.T) {
	if qty, ok := SuggestReorderQuantity(3, 5); !ok || qty != 10 {
		t.Fatalf("expected (10, true) at low stock, got (%d, %v)", qty, ok)
	}
	if qty, ok := SuggestReorderQuantity(5, 5); !ok || qty != 10 {
		t.Fatalf("threshold is inclusive, got (%d, %v)", qty, ok)
	}
	if _, ok := SuggestReorderQuantity(6, 5); ok {
		t.Fatal("no suggestion expected above threshold")
	}
}
