package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/threadline/threadline-backend/internal/products"
	"github.com/threadline/threadline-backend/pkg/db/models"
	"github.com/threadline/threadline-backend/pkg/enums"
	pkgerrors "github.com/threadline/threadline-backend/pkg/errors"
	"github.com/threadline/threadline-backend/pkg/pagination"
)

func newTestOrdersService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Product{}, &models.Order{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	svc, err := NewService(ServiceParams{
		Repo:        NewRepository(conn),
		ProductRepo: products.NewRepository(conn),
	})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc, conn
}

func seedProduct(t *testing.T, conn *gorm.DB, name, price string) *models.Product {
	t.Helper()
	record := &models.Product{
		ID:       uuid.New(),
		Name:     name,
		Category: enums.ProductCategoryHoodies,
		Price:    decimal.RequireFromString(price),
		Stock:    10,
	}
	if err := conn.Create(record).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return record
}

func TestCreate_RecomputesTotalServerSide(t *testing.T) {
	svc, conn := newTestOrdersService(t)
	ctx := context.Background()
	userID := uuid.New()
	hoodie := seedProduct(t, conn, "Coast Hoodie", "45.00")
	tee := seedProduct(t, conn, "Plain Tee", "19.99")

	order, err := svc.Create(ctx, userID, CreateOrderInput{
		Items: []LineInput{
			{ProductID: hoodie.ID, Quantity: 2},
			{ProductID: tee.ID, Quantity: 1},
		},
		PaymentMethod: "card",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if !order.Total.Equal(decimal.RequireFromString("109.99")) {
		t.Fatalf("expected total 109.99, got %s", order.Total)
	}
	if order.Status != "pending" {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(order.Items))
	}
	if order.Items[0].Name != "Coast Hoodie" || !order.Items[0].Price.Equal(hoodie.Price) {
		t.Fatalf("line not denormalized from catalog: %+v", order.Items[0])
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, conn := newTestOrdersService(t)
	ctx := context.Background()
	userID := uuid.New()
	hoodie := seedProduct(t, conn, "Coast Hoodie", "45.00")

	tests := []struct {
		name  string
		input CreateOrderInput
		code  pkgerrors.Code
	}{
		{
			name:  "empty items",
			input: CreateOrderInput{PaymentMethod: "card"},
			code:  pkgerrors.CodeValidation,
		},
		{
			name: "bad payment method",
			input: CreateOrderInput{
				Items:         []LineInput{{ProductID: hoodie.ID, Quantity: 1}},
				PaymentMethod: "barter",
			},
			code: pkgerrors.CodeValidation,
		},
		{
			name: "zero quantity",
			input: CreateOrderInput{
				Items:         []LineInput{{ProductID: hoodie.ID, Quantity: 0}},
				PaymentMethod: "card",
			},
			code: pkgerrors.CodeValidation,
		},
		{
			name: "unknown product",
			input: CreateOrderInput{
				Items:         []LineInput{{ProductID: uuid.New(), Quantity: 1}},
				PaymentMethod: "card",
			},
			code: pkgerrors.CodeNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, userID, tc.input)
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != tc.code {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestListByUser_NewestFirstWithCursor(t *testing.T) {
	svc, conn := newTestOrdersService(t)
	ctx := context.Background()
	userID := uuid.New()
	hoodie := seedProduct(t, conn, "Coast Hoodie", "45.00")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		order := models.Order{
			ID:            uuid.New(),
			UserID:        userID,
			Items:         models.OrderItems{{ProductID: hoodie.ID, Name: hoodie.Name, Price: hoodie.Price, Quantity: 1}},
			Total:         hoodie.Price,
			Status:        enums.OrderStatusPending,
			PaymentMethod: enums.PaymentMethodCard,
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		if err := conn.Create(&order).Error; err != nil {
			t.Fatalf("seed order failed: %v", err)
		}
	}

	first, err := svc.ListByUser(ctx, userID, pagination.Params{Limit: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(first.Orders) != 2 || first.NextCursor == "" {
		t.Fatalf("expected full first page with cursor, got %+v", first)
	}
	if !first.Orders[0].CreatedAt.After(first.Orders[1].CreatedAt) {
		t.Fatalf("expected newest first ordering")
	}

	second, err := svc.ListByUser(ctx, userID, pagination.Params{Limit: 2, Cursor: first.NextCursor})
	if err != nil {
		t.Fatalf("second page failed: %v", err)
	}
	if len(second.Orders) != 1 || second.NextCursor != "" {
		t.Fatalf("expected final page of one, got %+v", second)
	}

	other, err := svc.ListByUser(ctx, uuid.New(), pagination.Params{})
	if err != nil {
		t.Fatalf("other user list failed: %v", err)
	}
	if len(other.Orders) != 0 {
		t.Fatalf("expected isolation between users, got %d orders", len(other.Orders))
	}
}

func TestGetAndUpdateStatus(t *testing.T) {
	svc, conn := newTestOrdersService(t)
	ctx := context.Background()
	userID := uuid.New()
	hoodie := seedProduct(t, conn, "Coast Hoodie", "45.00")

	created, err := svc.Create(ctx, userID, CreateOrderInput{
		Items:         []LineInput{{ProductID: hoodie.ID, Quantity: 1}},
		PaymentMethod: "google_pay",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := svc.Get(ctx, userID, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.PaymentMethod != "google_pay" {
		t.Fatalf("unexpected payment method %s", got.PaymentMethod)
	}

	_, err = svc.Get(ctx, uuid.New(), created.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for other user, got %v", err)
	}

	if err := svc.UpdateStatus(ctx, created.ID, "shipped"); err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	got, err = svc.Get(ctx, userID, created.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got.Status != "shipped" {
		t.Fatalf("expected shipped, got %s", got.Status)
	}

	err = svc.UpdateStatus(ctx, created.ID, "teleported")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	err = svc.UpdateStatus(ctx, uuid.New(), "paid")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
