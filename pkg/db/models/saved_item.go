package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedItem parks a product for later, separate from the wishlist.
type SavedItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:saved_items_user_id_idx;uniqueIndex:saved_items_user_product_key"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:saved_items_user_product_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
