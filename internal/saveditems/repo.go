package saveditems

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/threadline/threadline-backend/pkg/db/models"
)

// Repository encapsulates saved-items persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a saved-items repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert creates the saved entry; the unique index rejects duplicates.
func (r *Repository) Insert(ctx context.Context, userID, productID uuid.UUID) (models.SavedItem, error) {
	item := models.SavedItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
	}
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return models.SavedItem{}, err
	}
	return item, nil
}

// Delete removes the user-product entry, reporting whether a row existed.
func (r *Repository) Delete(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.SavedItem{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

type savedRecord struct {
	ID        uuid.UUID       `gorm:"column:id"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	ProductID uuid.UUID       `gorm:"column:product_id"`
	Name      string          `gorm:"column:name"`
	Price     decimal.Decimal `gorm:"column:price"`
	Image     string          `gorm:"column:image"`
	Category  string          `gorm:"column:category"`
}

// ListItems returns the user's saved items joined with products, newest first.
func (r *Repository) ListItems(ctx context.Context, userID uuid.UUID) ([]ItemDTO, error) {
	var records []savedRecord
	err := r.db.WithContext(ctx).
		Table("saved_items si").
		Select("si.id, si.created_at, p.id AS product_id, p.name, p.price, p.image, p.category").
		Joins("JOIN products p ON p.id = si.product_id").
		Where("si.user_id = ?", userID).
		Order("si.created_at DESC").Order("si.id DESC").
		Scan(&records).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]ItemDTO, 0, len(records))
	for _, record := range records {
		items = append(items, ItemDTO{
			ID:        record.ID,
			ProductID: record.ProductID,
			Name:      record.Name,
			Price:     record.Price,
			Image:     record.Image,
			Category:  record.Category,
			CreatedAt: record.CreatedAt,
		})
	}
	return items, nil
}
