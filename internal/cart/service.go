package cart

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/threadline/threadline-backend/internal/products"
	pkgerrors "github.com/threadline/threadline-backend/pkg/errors"
)

// CartDTO is the wire representation of a session cart.
type CartDTO struct {
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Store       Store
	ProductRepo *products.Repository
}

// Service exposes the session cart operations.
type Service interface {
	Get(ctx context.Context, sessionID string) (CartDTO, error)
	AddItem(ctx context.Context, sessionID string, productID uuid.UUID) (CartDTO, error)
	RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (CartDTO, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, delta int) (CartDTO, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	store       Store
	productRepo *products.Repository
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart store is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{
		store:       params.Store,
		productRepo: params.ProductRepo,
	}, nil
}

// Get returns the current cart for the session.
func (s *service) Get(ctx context.Context, sessionID string) (CartDTO, error) {
	items, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return CartDTO{}, err
	}
	return toCartDTO(items), nil
}

// AddItem upserts a cart line: first add creates the line with quantity 1,
// every further add bumps the quantity by exactly one.
func (s *service) AddItem(ctx context.Context, sessionID string, productID uuid.UUID) (CartDTO, error) {
	items, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return CartDTO{}, err
	}
	if productID == uuid.Nil {
		return CartDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	record, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	next := Add(items, Item{
		ProductID: record.ID,
		Name:      record.Name,
		Price:     record.Price,
		Image:     record.Image,
		Category:  string(record.Category),
	})
	if err := s.store.Save(ctx, sessionID, next); err != nil {
		return CartDTO{}, err
	}
	return toCartDTO(next), nil
}

// RemoveItem drops the line; absent ids are a no-op.
func (s *service) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (CartDTO, error) {
	items, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return CartDTO{}, err
	}

	next := Remove(items, productID)
	if err := s.store.Save(ctx, sessionID, next); err != nil {
		return CartDTO{}, err
	}
	return toCartDTO(next), nil
}

// UpdateQuantity applies a signed delta, never dropping a line below quantity 1.
func (s *service) UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, delta int) (CartDTO, error) {
	items, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return CartDTO{}, err
	}

	next := UpdateQuantity(items, productID, delta)
	if err := s.store.Save(ctx, sessionID, next); err != nil {
		return CartDTO{}, err
	}
	return toCartDTO(next), nil
}

// Clear empties the session cart.
func (s *service) Clear(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart session id is required")
	}
	return s.store.Clear(ctx, sessionID)
}

func (s *service) loadSession(ctx context.Context, sessionID string) ([]Item, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart session id is required")
	}
	return s.store.Load(ctx, sessionID)
}

func toCartDTO(items []Item) CartDTO {
	if items == nil {
		items = []Item{}
	}
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return CartDTO{
		Items:     items,
		Total:     Total(items),
		ItemCount: count,
	}
}
