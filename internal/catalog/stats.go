package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/threadline/threadline-backend/pkg/db/models"
)

// DefaultLowStockThreshold is the inclusive stock level at which a product
// counts toward the dashboard low-stock badge.
const DefaultLowStockThreshold = 5

// ActivityEntry is a feed item sourced from an external audit log.
type ActivityEntry struct {
	Kind       string    `json:"kind"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Stats summarizes the catalog for the admin dashboard.
type Stats struct {
	TotalProducts        int                        `json:"total_products"`
	TotalStock           int                        `json:"total_stock"`
	TotalValue           decimal.Decimal            `json:"total_value"`
	LowStockCount        int                        `json:"low_stock_count"`
	CategoryDistribution map[string]int             `json:"category_distribution"`
	StockValueByCategory map[string]decimal.Decimal `json:"stock_value_by_category"`
	RecentActivity       []ActivityEntry            `json:"recent_activity"`
}

// Aggregate reduces the full collection into dashboard metrics. Negative
// stock values contribute zero to the sums so a single bad record cannot
// corrupt the aggregate. RecentActivity is fed by an external audit log and
// is always returned empty here.
func Aggregate(products []models.Product, lowStockThreshold int) Stats {
	stats := Stats{
		TotalValue:           decimal.Zero,
		CategoryDistribution: make(map[string]int),
		StockValueByCategory: make(map[string]decimal.Decimal),
		RecentActivity:       []ActivityEntry{},
	}

	for _, p := range products {
		stats.TotalProducts++

		stock := p.Stock
		if stock < 0 {
			stock = 0
		}
		stats.TotalStock += stock

		value := p.Price.Mul(decimal.NewFromInt(int64(stock)))
		if value.IsNegative() {
			value = decimal.Zero
		}
		stats.TotalValue = stats.TotalValue.Add(value)

		// Out of stock is its own state on the dashboard; low stock means
		// running out, not already gone.
		if p.Stock > 0 && p.Stock <= lowStockThreshold {
			stats.LowStockCount++
		}

		category := string(p.Category)
		stats.CategoryDistribution[category]++

		current, ok := stats.StockValueByCategory[category]
		if !ok {
			current = decimal.Zero
		}
		stats.StockValueByCategory[category] = current.Add(value)
	}

	return stats
}
