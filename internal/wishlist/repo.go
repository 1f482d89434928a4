package wishlist

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/threadline/threadline-backend/pkg/db/models"
	"github.com/threadline/threadline-backend/pkg/pagination"
)

// Repository encapsulates wishlist persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddItem inserts a wishlist entry. The unique index on (user_id, product_id)
// makes concurrent duplicate adds collapse to a single row; created reports
// whether this call inserted it.
func (r *Repository) AddItem(ctx context.Context, userID, productID uuid.UUID) (models.WishlistItem, bool, error) {
	if userID == uuid.Nil || productID == uuid.Nil {
		return models.WishlistItem{}, false, gorm.ErrInvalidValue
	}

	item := models.WishlistItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(&item)
	if result.Error != nil {
		return models.WishlistItem{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		existing, err := r.find(ctx, userID, productID)
		if err != nil {
			return models.WishlistItem{}, false, err
		}
		return existing, false, nil
	}
	return item, true, nil
}

// RemoveItem deletes the user-product entry, reporting whether a row existed.
func (r *Repository) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Count returns the user's wishlist size.
func (r *Repository) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("user_id = ?", userID).
		Count(&count).
		Error
	return count, err
}

type itemRecord struct {
	ID        uuid.UUID       `gorm:"column:id"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	ProductID uuid.UUID       `gorm:"column:product_id"`
	Name      string          `gorm:"column:name"`
	Price     decimal.Decimal `gorm:"column:price"`
	Image     string          `gorm:"column:image"`
	Category  string          `gorm:"column:category"`
	Stock     int             `gorm:"column:stock"`
}

func (rec itemRecord) toDTO() ItemDTO {
	return ItemDTO{
		ID: rec.ID,
		Product: ProductSnapshot{
			ID:       rec.ProductID,
			Name:     rec.Name,
			Price:    rec.Price,
			Image:    rec.Image,
			Category: rec.Category,
			InStock:  rec.Stock > 0,
		},
		CreatedAt: rec.CreatedAt,
	}
}

// ListItems returns the user's wishlist joined with products, newest first.
func (r *Repository) ListItems(ctx context.Context, userID uuid.UUID, cursor string, limit int) (PageDTO, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	limitWithBuffer := pagination.LimitWithBuffer(limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return PageDTO{}, err
	}

	query := r.db.WithContext(ctx).
		Table("wishlist_items wi").
		Select("wi.id, wi.created_at, p.id AS product_id, p.name, p.price, p.image, p.category, p.stock").
		Joins("JOIN products p ON p.id = wi.product_id").
		Where("wi.user_id = ?", userID)

	if decodedCursor != nil {
		query = query.Where("(wi.created_at < ?) OR (wi.created_at = ? AND wi.id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	query = query.Order("wi.created_at DESC").Order("wi.id DESC").Limit(limitWithBuffer)

	var records []itemRecord
	if err := query.Scan(&records).Error; err != nil {
		return PageDTO{}, err
	}

	nextCursor := ""
	if len(records) > normalizedLimit {
		records = records[:normalizedLimit]
		last := records[len(records)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	items := make([]ItemDTO, 0, len(records))
	for _, record := range records {
		items = append(items, record.toDTO())
	}

	total, err := r.Count(ctx, userID)
	if err != nil {
		return PageDTO{}, err
	}

	return PageDTO{
		Items:      items,
		Total:      int(total),
		NextCursor: nextCursor,
	}, nil
}

func (r *Repository) find(ctx context.Context, userID, productID uuid.UUID) (models.WishlistItem, error) {
	var item models.WishlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).
		Error
	return item, err
}
