package saveditems

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/threadline/threadline-backend/internal/products"
	"github.com/threadline/threadline-backend/pkg/db/models"
	"github.com/threadline/threadline-backend/pkg/enums"
	pkgerrors "github.com/threadline/threadline-backend/pkg/errors"
)

func newTestSavedItemsService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Product{}, &models.SavedItem{}); err != nil {
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

func seedProduct(t *testing.T, conn *gorm.DB, name string) *models.Product {
	t.Helper()
	record := &models.Product{
		ID:       uuid.New(),
		Name:     name,
		Category: enums.ProductCategoryCaps,
		Price:    decimal.RequireFromString("15.00"),
		Stock:    2,
		Image:    "https://cdn.example.com/cap.jpg",
	}
	if err := conn.Create(record).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return record
}

func TestSave_DuplicateIsConflict(t *testing.T) {
	svc, conn := newTestSavedItemsService(t)
	ctx := context.Background()
	userID := uuid.New()
	product := seedProduct(t, conn, "Harbor Cap")

	item, err := svc.Save(ctx, userID, product.ID)
	if err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if item.Name != "Harbor Cap" {
		t.Fatalf("unexpected item %+v", item)
	}

	_, err = svc.Save(ctx, userID, product.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict on duplicate save, got %v", err)
	}

	var count int64
	if err := conn.Model(&models.SavedItem{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one stored row, got %d", count)
	}
}

func TestSave_UnknownProduct(t *testing.T) {
	svc, _ := newTestSavedItemsService(t)
	_, err := svc.Save(context.Background(), uuid.New(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemoveAndList(t *testing.T) {
	svc, conn := newTestSavedItemsService(t)
	ctx := context.Background()
	userID := uuid.New()
	product := seedProduct(t, conn, "Harbor Cap")

	if _, err := svc.Save(ctx, userID, product.ID); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	items, err := svc.List(ctx, userID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != product.ID {
		t.Fatalf("unexpected list %+v", items)
	}

	if err := svc.Remove(ctx, userID, product.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	err = svc.Remove(ctx, userID, product.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on second remove, got %v", err)
	}
}
