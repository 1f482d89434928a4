package wishlist

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/threadline/threadline-backend/internal/products"
	"github.com/threadline/threadline-backend/pkg/db"
	pkgerrors "github.com/threadline/threadline-backend/pkg/errors"
)

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	WishlistRepo *Repository
	ProductRepo  *products.Repository
}

// Service exposes business rules for wishlist management.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, cursor string, limit int) (PageDTO, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID) (AddResultDTO, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
}

type service struct {
	wishlistRepo *Repository
	productRepo  *products.Repository
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.WishlistRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{
		wishlistRepo: params.WishlistRepo,
		productRepo:  params.ProductRepo,
	}, nil
}

// List returns the paginated wishlist for a user, newest first.
func (s *service) List(ctx context.Context, userID uuid.UUID, cursor string, limit int) (PageDTO, error) {
	if userID == uuid.Nil {
		return PageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	page, err := s.wishlistRepo.ListItems(ctx, userID, cursor, limit)
	if err != nil {
		return PageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist")
	}
	return page, nil
}

// AddItem ensures the product exists and adds it to the wishlist. A second
// add for the same pair reports already_exists rather than failing.
func (s *service) AddItem(ctx context.Context, userID, productID uuid.UUID) (AddResultDTO, error) {
	if userID == uuid.Nil {
		return AddResultDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID == uuid.Nil {
		return AddResultDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AddResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return AddResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	item, created, err := s.wishlistRepo.AddItem(ctx, userID, productID)
	if err != nil {
		// Concurrent duplicate adds can slip past the ON CONFLICT clause on
		// some drivers; treat the constraint error as the benign duplicate.
		if db.IsUniqueViolation(err, "wishlist_items_user_product_key") {
			return s.duplicateResult(ctx, userID, product.ID, product.Name)
		}
		return AddResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add wishlist item")
	}

	status := StatusCreated
	if !created {
		status = StatusAlreadyExists
	}
	return AddResultDTO{
		Status: status,
		Item: ItemDTO{
			ID: item.ID,
			Product: ProductSnapshot{
				ID:       product.ID,
				Name:     product.Name,
				Price:    product.Price,
				Image:    product.Image,
				Category: string(product.Category),
				InStock:  product.InStock(),
			},
			CreatedAt: item.CreatedAt,
		},
	}, nil
}

// RemoveItem drops the wishlist entry; a missing entry is NotFound.
func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	removed, err := s.wishlistRepo.RemoveItem(ctx, userID, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove wishlist item")
	}
	if !removed {
		return pkgerrors.New(pkgerrors.CodeNotFound, "wishlist item not found")
	}
	return nil
}

func (s *service) duplicateResult(ctx context.Context, userID, productID uuid.UUID, name string) (AddResultDTO, error) {
	existing, err := s.wishlistRepo.find(ctx, userID, productID)
	if err != nil {
		return AddResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist item")
	}
	return AddResultDTO{
		Status: StatusAlreadyExists,
		Item: ItemDTO{
			ID:        existing.ID,
			Product:   ProductSnapshot{ID: productID, Name: name},
			CreatedAt: existing.CreatedAt,
		},
	}, nil
}
