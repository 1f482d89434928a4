package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/threadline/threadline-backend/pkg/db/models"
)

// Repository encapsulates product persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a product repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the full catalog, newest first. Filtering and sorting happen
// in memory so the same rules serve the storefront and the dashboard.
func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	var records []models.Product
	err := r.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Find(&records).
		Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// FindByID loads a single product or gorm.ErrRecordNotFound.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (models.Product, error) {
	var record models.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).
		Error
	return record, err
}

// FindByIDs loads the products matching the given ids; missing ids are skipped.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var records []models.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&records).
		Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Create inserts the product, assigning an id when the caller left it empty.
func (r *Repository) Create(ctx context.Context, record *models.Product) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(record).Error
}

// Update persists the provided column values and reloads the row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (models.Product, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return models.Product{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Product{}, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes the product row. Hard delete, no tombstone.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AveragePriceByCategory returns the mean price over a category, with ok=false
// when the category holds no products.
func (r *Repository) AveragePriceByCategory(ctx context.Context, category string) (float64, bool, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("category = ?", category).
		Select("AVG(price)").
		Scan(&avg).
		Error
	if err != nil {
		return 0, false, err
	}
	if avg == nil {
		return 0, false, nil
	}
	return *avg, true, nil
}
