package catalog

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/threadline/threadline-backend/pkg/db/models"
	"github.com/threadline/threadline-backend/pkg/enums"
)

func TestAggregate_ScenarioFromDashboard(t *testing.T) {
	products := []models.Product{
		testProduct("B Shirt", enums.ProductCategoryShirts, "20.00", 3),
		testProduct("A Cap", enums.ProductCategoryCaps, "10.00", 0),
	}

	stats := Aggregate(products, 5)

	if stats.TotalProducts != 2 {
		t.Fatalf("total products = %d, want 2", stats.TotalProducts)
	}
	if stats.TotalStock != 3 {
		t.Fatalf("total stock = %d, want 3", stats.TotalStock)
	}
	if !stats.TotalValue.Equal(decimal.RequireFromString("60.00")) {
		t.Fatalf("total value = %s, want 60.00", stats.TotalValue)
	}
	if stats.LowStockCount != 1 {
		t.Fatalf("low stock count = %d, want 1 (out-of-stock items are not low stock)", stats.LowStockCount)
	}
	if stats.CategoryDistribution["Shirts"] != 1 || stats.CategoryDistribution["Caps"] != 1 {
		t.Fatalf("unexpected category distribution %v", stats.CategoryDistribution)
	}
	if !stats.StockValueByCategory["Shirts"].Equal(decimal.RequireFromString("60.00")) {
		t.Fatalf("shirts stock value = %s, want 60.00", stats.StockValueByCategory["Shirts"])
	}
	if !stats.StockValueByCategory["Caps"].Equal(decimal.Zero) {
		t.Fatalf("caps stock value = %s, want 0", stats.StockValueByCategory["Caps"])
	}
}

func TestAggregate_DistributionSumsToTotal(t *testing.T) {
	products := []models.Product{
		testProduct("Tee One", enums.ProductCategoryTShirts, "12.00", 4),
		testProduct("Tee Two", enums.ProductCategoryTShirts, "14.00", 9),
		testProduct("Hoodie", enums.ProductCategoryHoodies, "55.00", 2),
		testProduct("Cap", enums.ProductCategoryCaps, "9.99", 0),
	}

	stats := Aggregate(products, DefaultLowStockThreshold)

	sum := 0
	for _, count := range stats.CategoryDistribution {
		sum += count
	}
	if sum != stats.TotalProducts {
		t.Fatalf("distribution sum %d != total products %d", sum, stats.TotalProducts)
	}
}

func TestAggregate_LowStockThresholdInclusive(t *testing.T) {
	products := []models.Product{
		testProduct("At Threshold", enums.ProductCategoryTShirts, "10.00", 5),
		testProduct("Above Threshold", enums.ProductCategoryTShirts, "10.00", 6),
		testProduct("Empty", enums.ProductCategoryCaps, "10.00", 0),
	}

	stats := Aggregate(products, 5)
	if stats.LowStockCount != 1 {
		t.Fatalf("low stock count = %d, want 1 (threshold is inclusive, zero stock excluded)", stats.LowStockCount)
	}
	if stats.LowStockCount < 1 {
		t.Fatal("at least one product at or under threshold must be counted")
	}
}

func TestAggregate_NegativeStockDoesNotCorruptSums(t *testing.T) {
	bad := testProduct("Broken Record", enums.ProductCategoryShirts, "25.00", -10)
	good := testProduct("Good Shirt", enums.ProductCategoryShirts, "20.00", 2)

	stats := Aggregate([]models.Product{bad, good}, 5)

	if stats.TotalStock != 2 {
		t.Fatalf("total stock = %d, want 2 (negative stock contributes zero)", stats.TotalStock)
	}
	if !stats.TotalValue.Equal(decimal.RequireFromString("40.00")) {
		t.Fatalf("total value = %s, want 40.00", stats.TotalValue)
	}
	if stats.TotalProducts != 2 {
		t.Fatalf("bad records still count toward totals, got %d", stats.TotalProducts)
	}
}

func TestAggregate_EmptyCollection(t *testing.T) {
	stats := Aggregate(nil, DefaultLowStockThreshold)

	if stats.TotalProducts != 0 || stats.TotalStock != 0 || stats.LowStockCount != 0 {
		t.Fatalf("expected zeroed counters, got %+v", stats)
	}
	if !stats.TotalValue.Equal(decimal.Zero) {
		t.Fatalf("total value = %s, want 0", stats.TotalValue)
	}
	if stats.CategoryDistribution == nil || stats.StockValueByCategory == nil {
		t.Fatal("maps must be non-nil for empty input")
	}
	if stats.RecentActivity == nil || len(stats.RecentActivity) != 0 {
		t.Fatalf("recent activity must be an empty list, got %v", stats.RecentActivity)
	}
}
