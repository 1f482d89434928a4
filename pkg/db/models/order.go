package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/threadline/threadline-backend/pkg/enums"
)

// OrderItem is a product line captured at checkout time.
type OrderItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

// OrderItems stores the line items as a jsonb column.
type OrderItems []OrderItem

// Value implements driver.Valuer.
func (o OrderItems) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("order items: marshal %w", err)
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (o *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*o = OrderItems{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("order items: unsupported scan type %T", value)
	}

	if len(raw) == 0 {
		*o = OrderItems{}
		return nil
	}
	return json.Unmarshal(raw, o)
}

// Order is a placed checkout with its line items denormalized.
type Order struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	UserID        uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index:orders_user_id_idx"`
	Items         OrderItems          `gorm:"column:items;type:jsonb;not null"`
	Total         decimal.Decimal     `gorm:"column:total;type:numeric(10,2);not null"`
	Status        enums.OrderStatus   `gorm:"column:status;not null;default:pending"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;not null"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
