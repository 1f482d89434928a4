package wishlist

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddStatus distinguishes a fresh insert from a benign duplicate.
type AddStatus string

const (
	StatusCreated       AddStatus = "created"
	StatusAlreadyExists AddStatus = "already_exists"
)

// ProductSnapshot carries the product fields shown on a wishlist row.
type ProductSnapshot struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Category string          `json:"category"`
	InStock  bool            `json:"in_stock"`
}

// ItemDTO is a wishlist row joined with its product.
type ItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	Product   ProductSnapshot `json:"product"`
	CreatedAt time.Time       `json:"created_at"`
}

// AddResultDTO reports the outcome of an add; duplicates are not errors.
type AddResultDTO struct {
	Status AddStatus `json:"status"`
	Item   ItemDTO   `json:"item"`
}

// PageDTO is a cursor-paginated wishlist view, newest first.
type PageDTO struct {
	Items      []ItemDTO `json:"items"`
	Total      int       `json:"total"`
	NextCursor string    `json:"next_cursor,omitempty"`
}
