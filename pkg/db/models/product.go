package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/threadline/threadline-backend/pkg/enums"
)

// Product represents a catalog listing visible to the storefront and back office.
type Product struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	Name        string                `gorm:"column:name;not null"`
	Description string                `gorm:"column:description;not null;default:''"`
	Category    enums.ProductCategory `gorm:"column:category;not null;index:products_category_idx"`
	Price       decimal.Decimal       `gorm:"column:price;type:numeric(10,2);not null"`
	Stock       int                   `gorm:"column:stock;not null;default:0"`
	Image       string                `gorm:"column:image;not null"`
	Images      pq.StringArray        `gorm:"column:images;type:text[]"`
	Tags        pq.StringArray        `gorm:"column:tags;type:text[]"`
	ShowHome    bool                  `gorm:"column:show_home;not null;default:false;index:products_show_home_idx"`

	// Optional merchandising attributes.
	Discount   *decimal.Decimal `gorm:"column:discount;type:numeric(5,2)"`
	Dimensions *string          `gorm:"column:dimensions"`
	Weight     *decimal.Decimal `gorm:"column:weight;type:numeric(8,3)"`
	Color      *string          `gorm:"column:color"`
	Size       *string          `gorm:"column:size"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// InStock reports whether the listing has sellable units.
func (p Product) InStock() bool {
	return p.Stock > 0
}
