package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/threadline/threadline-backend/internal/products"
	"github.com/threadline/threadline-backend/pkg/db/models"
	"github.com/threadline/threadline-backend/pkg/enums"
	pkgerrors "github.com/threadline/threadline-backend/pkg/errors"
	"github.com/threadline/threadline-backend/pkg/pagination"
)

// LineInput is a requested order line. Price and name are looked up from the
// catalog at placement time, never trusted from the client.
type LineInput struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// CreateOrderInput carries the checkout request.
type CreateOrderInput struct {
	Items         []LineInput `json:"items"`
	PaymentMethod string      `json:"payment_method"`
}

// OrderDTO is the outward order representation.
type OrderDTO struct {
	ID            uuid.UUID          `json:"id"`
	Items         []models.OrderItem `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	Status        string             `json:"status"`
	PaymentMethod string             `json:"payment_method"`
	CreatedAt     time.Time          `json:"created_at"`
}

// PageDTO is one page of a user's order history.
type PageDTO struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// ServiceParams groups dependencies for the orders service.
type ServiceParams struct {
	Repo        *Repository
	ProductRepo *products.Repository
}

// Service places orders and serves order history.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (OrderDTO, error)
	Get(ctx context.Context, userID, orderID uuid.UUID) (OrderDTO, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page pagination.Params) (PageDTO, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error
}

type service struct {
	repo        *Repository
	productRepo *products.Repository
}

// NewService builds an orders service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{
		repo:        params.Repo,
		productRepo: params.ProductRepo,
	}, nil
}

// Create places an order. Line prices come from the catalog and the total is
// recomputed server side.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (OrderDTO, error) {
	if userID == uuid.Nil {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if len(input.Items) == 0 {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	method, err := enums.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
	}

	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, line := range input.Items {
		if line.ProductID == uuid.Nil {
			return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "item product id is required")
		}
		if line.Quantity < 1 {
			return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be at least 1")
		}
		ids = append(ids, line.ProductID)
	}

	found, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	byID := make(map[uuid.UUID]models.Product, len(found))
	for _, product := range found {
		byID[product.ID] = product
	}

	items := make(models.OrderItems, 0, len(input.Items))
	total := decimal.Zero
	for _, line := range input.Items {
		product, ok := byID[line.ProductID]
		if !ok {
			return OrderDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
			Image:     product.Image,
		})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	order := models.Order{
		UserID:        userID,
		Items:         items,
		Total:         total,
		Status:        enums.OrderStatusPending,
		PaymentMethod: method,
	}
	if err := s.repo.Insert(ctx, &order); err != nil {
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	return toOrderDTO(order), nil
}

// Get loads a single order, scoped to its owner.
func (s *service) Get(ctx context.Context, userID, orderID uuid.UUID) (OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.UserID != userID {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return toOrderDTO(*order), nil
}

// ListByUser returns the user's order history newest first.
func (s *service) ListByUser(ctx context.Context, userID uuid.UUID, page pagination.Params) (PageDTO, error) {
	if userID == uuid.Nil {
		return PageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	cursor, err := pagination.ParseCursor(page.Cursor)
	if err != nil {
		return PageDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(page.Limit)
	records, err := s.repo.ListByUser(ctx, userID, cursor, pagination.LimitWithBuffer(page.Limit))
	if err != nil {
		return PageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	next := ""
	if len(records) > limit {
		records = records[:limit]
		last := records[len(records)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	dtos := make([]OrderDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, toOrderDTO(record))
	}
	return PageDTO{Orders: dtos, NextCursor: next}, nil
}

// UpdateStatus moves an order to a new lifecycle status.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status")
	}
	updated, err := s.repo.UpdateStatus(ctx, orderID, parsed.String())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	if !updated {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return nil
}

func toOrderDTO(order models.Order) OrderDTO {
	items := order.Items
	if items == nil {
		items = models.OrderItems{}
	}
	return OrderDTO{
		ID:            order.ID,
		Items:         items,
		Total:         order.Total,
		Status:        order.Status.String(),
		PaymentMethod: order.PaymentMethod.String(),
		CreatedAt:     order.CreatedAt,
	}
}
