package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a single cart line, denormalized from the product at add time.
type Item struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
}

// Add appends the product or, when a line for it already exists, bumps that
// line's quantity by exactly one. The input slice is never mutated.
func Add(items []Item, product Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)

	for i := range out {
		if out[i].ProductID == product.ProductID {
			out[i].Quantity++
			return out
		}
	}

	product.Quantity = 1
	return append(out, product)
}

// Remove drops the line for the product. Removing an absent id is a no-op.
func Remove(items []Item, productID uuid.UUID) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if item.ProductID != productID {
			out = append(out, item)
		}
	}
	return out
}

// UpdateQuantity applies a signed delta to the line's quantity, flooring at 1.
// Reaching the floor never removes the line; that requires an explicit Remove.
func UpdateQuantity(items []Item, productID uuid.UUID, delta int) []Item {
	out := make([]Item, len(items))
	copy(out, items)

	for i := range out {
		if out[i].ProductID == productID {
			next := out[i].Quantity + delta
			if next < 1 {
				next = 1
			}
			out[i].Quantity = next
			break
		}
	}
	return out
}

// Total sums price*quantity over the cart.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
