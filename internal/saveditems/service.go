package saveditems

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/threadline/threadline-backend/internal/products"
	"github.com/threadline/threadline-backend/pkg/db"
	pkgerrors "github.com/threadline/threadline-backend/pkg/errors"
)

// ItemDTO is a saved-for-later row joined with its product.
type ItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Category  string          `json:"category"`
	CreatedAt time.Time       `json:"created_at"`
}

// ServiceParams groups dependencies for the saved-items service.
type ServiceParams struct {
	Repo        *Repository
	ProductRepo *products.Repository
}

// Service manages the user's saved-for-later list. Unlike the wishlist, a
// duplicate save is a real conflict surfaced to the caller.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]ItemDTO, error)
	Save(ctx context.Context, userID, productID uuid.UUID) (ItemDTO, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) error
}

type service struct {
	repo        *Repository
	productRepo *products.Repository
}

// NewService builds a saved-items service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "saved items repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{
		repo:        params.Repo,
		productRepo: params.ProductRepo,
	}, nil
}

// List returns the user's saved items, newest first.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]ItemDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	items, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list saved items")
	}
	return items, nil
}

// Save parks a product for later. Saving the same product twice is a conflict.
func (s *service) Save(ctx context.Context, userID, productID uuid.UUID) (ItemDTO, error) {
	if userID == uuid.Nil {
		return ItemDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID == uuid.Nil {
		return ItemDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	item, err := s.repo.Insert(ctx, userID, productID)
	if err != nil {
		if db.IsUniqueViolation(err, "saved_items_user_product_key") {
			return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product already saved")
		}
		return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save item")
	}

	return ItemDTO{
		ID:        item.ID,
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Category:  string(product.Category),
		CreatedAt: item.CreatedAt,
	}, nil
}

// Remove drops the saved entry; a missing entry is NotFound.
func (s *service) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	removed, err := s.repo.Delete(ctx, userID, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove saved item")
	}
	if !removed {
		return pkgerrors.New(pkgerrors.CodeNotFound, "saved item not found")
	}
	return nil
}
