package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/threadline/threadline-backend/pkg/db/models"
)

// ProductDTO is the wire representation of a catalog listing.
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
	Images      []string        `json:"images"`
	Tags        []string        `json:"tags"`
	ShowHome    bool            `json:"show_home"`
	InStock     bool            `json:"in_stock"`

	Discount   *decimal.Decimal `json:"discount,omitempty"`
	Dimensions *string          `json:"dimensions,omitempty"`
	Weight     *decimal.Decimal `json:"weight,omitempty"`
	Color      *string          `json:"color,omitempty"`
	Size       *string          `json:"size,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toDTO(record models.Product) ProductDTO {
	images := []string(record.Images)
	if images == nil {
		images = []string{}
	}
	tags := []string(record.Tags)
	if tags == nil {
		tags = []string{}
	}
	return ProductDTO{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		Category:    string(record.Category),
		Price:       record.Price,
		Stock:       record.Stock,
		Image:       record.Image,
		Images:      images,
		Tags:        tags,
		ShowHome:    record.ShowHome,
		InStock:     record.InStock(),
		Discount:    record.Discount,
		Dimensions:  record.Dimensions,
		Weight:      record.Weight,
		Color:       record.Color,
		Size:        record.Size,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

func toDTOs(records []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(records))
	for _, record := range records {
		out = append(out, toDTO(record))
	}
	return out
}

// CreateProductInput carries the admin form payload for a new listing.
type CreateProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
	Images      []string        `json:"images"`
	Tags        []string        `json:"tags"`
	ShowHome    bool            `json:"show_home"`

	Discount   *decimal.Decimal `json:"discount,omitempty"`
	Dimensions *string          `json:"dimensions,omitempty"`
	Weight     *decimal.Decimal `json:"weight,omitempty"`
	Color      *string          `json:"color,omitempty"`
	Size       *string          `json:"size,omitempty"`
}

// UpdateProductInput carries a partial edit; nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Image       *string          `json:"image"`
	Images      *[]string        `json:"images"`
	Tags        *[]string        `json:"tags"`
	ShowHome    *bool            `json:"show_home"`

	Discount   *decimal.Decimal `json:"discount,omitempty"`
	Dimensions *string          `json:"dimensions,omitempty"`
	Weight     *decimal.Decimal `json:"weight,omitempty"`
	Color      *string          `json:"color,omitempty"`
	Size       *string          `json:"size,omitempty"`
}

// BulkDeleteResult reports per-id outcomes for an admin bulk delete.
type BulkDeleteResult struct {
	Deleted []uuid.UUID `json:"deleted"`
	Missing []uuid.UUID `json:"missing"`
}

// SuggestInput feeds the admin form assistance helpers.
type SuggestInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Stock       *int   `json:"stock"`
}

// SuggestionDTO bundles every hint the admin form can prefill.
type SuggestionDTO struct {
	Category        string           `json:"category,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	Tags            []string         `json:"tags"`
	ReorderQuantity *int             `json:"reorder_quantity,omitempty"`
}
