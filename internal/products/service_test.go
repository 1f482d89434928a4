package products

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/threadline/threadline-backend/internal/catalog"
	"github.com/threadline/threadline-backend/pkg/db/models"
	pkgerrors "github.com/threadline/threadline-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	repo := NewRepository(conn)
	svc, err := NewService(ServiceParams{Repo: repo, LowStockThreshold: 5})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc, repo
}

func createInput(name, category, price string, stock int) CreateProductInput {
	return CreateProductInput{
		Name:     name,
		Category: category,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		Image:    "https://cdn.example.com/" + name + ".jpg",
	}
}

func mustCreate(t *testing.T, svc Service, input CreateProductInput) ProductDTO {
	t.Helper()
	dto, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("Create(%s) returned error: %v", input.Name, err)
	}
	return dto
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error with code %s, got %v", code, err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s", code, typed.Code())
	}
}

func TestCreate_FormValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateProductInput{Description: "no required fields"})
	assertCode(t, err, pkgerrors.CodeValidation)

	details, ok := pkgerrors.As(err).Details().(FormErrors)
	if !ok {
		t.Fatalf("expected FormErrors details, got %T", pkgerrors.As(err).Details())
	}
	if details["name"] == "" || details["image"] == "" {
		t.Fatalf("expected keyed field errors, got %v", details)
	}
}

func TestCreate_RejectsUnknownCategoryAndNegatives(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	input := createInput("Tee", "Sneakers", "10.00", 5)
	if _, err := svc.Create(ctx, input); err == nil {
		t.Fatal("expected unknown category to fail")
	}

	negativePrice := createInput("Tee", "T-Shirts", "10.00", 5)
	negativePrice.Price = decimal.RequireFromString("-1.00")
	_, err := svc.Create(ctx, negativePrice)
	assertCode(t, err, pkgerrors.CodeValidation)

	negativeStock := createInput("Tee", "T-Shirts", "10.00", -2)
	_, err = svc.Create(ctx, negativeStock)
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestCreate_NormalizesCategoryCasing(t *testing.T) {
	svc, _ := newTestService(t)

	dto := mustCreate(t, svc, createInput("Lower Tee", "t-shirts", "18.00", 4))
	if dto.Category != "T-Shirts" {
		t.Fatalf("expected canonical category casing, got %q", dto.Category)
	}
}

func TestGetUpdateDelete_Lifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created := mustCreate(t, svc, createInput("Harbor Hoodie", "Hoodies", "49.99", 12))

	fetched, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if fetched.Name != "Harbor Hoodie" || !fetched.InStock {
		t.Fatalf("unexpected product %+v", fetched)
	}

	newPrice := decimal.RequireFromString("39.99")
	updated, err := svc.Update(ctx, created.ID, UpdateProductInput{Price: &newPrice})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !updated.Price.Equal(newPrice) {
		t.Fatalf("price not updated: %s", updated.Price)
	}
	if updated.Name != "Harbor Hoodie" {
		t.Fatal("partial update must leave other fields untouched")
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	_, err = svc.Get(ctx, created.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateAndDelete_MissingProduct(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	missing := uuid.New()

	name := "New Name"
	_, err := svc.Update(ctx, missing, UpdateProductInput{Name: &name})
	assertCode(t, err, pkgerrors.CodeNotFound)

	err = svc.Delete(ctx, missing)
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestBulkDelete_ReportsMissingIDs(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first := mustCreate(t, svc, createInput("Tee One", "T-Shirts", "12.00", 3))
	second := mustCreate(t, svc, createInput("Tee Two", "T-Shirts", "14.00", 6))
	missing := uuid.New()

	result, err := svc.BulkDelete(ctx, []uuid.UUID{first.ID, missing, second.ID})
	if err != nil {
		t.Fatalf("BulkDelete returned error: %v", err)
	}
	if len(result.Deleted) != 2 {
		t.Fatalf("expected 2 deletions, got %v", result.Deleted)
	}
	if len(result.Missing) != 1 || result.Missing[0] != missing {
		t.Fatalf("expected missing id to be reported, got %v", result.Missing)
	}

	if _, err := svc.BulkDelete(ctx, nil); err == nil {
		t.Fatal("empty id list must be rejected")
	}
}

func TestSetFeatured(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created := mustCreate(t, svc, createInput("Feature Cap", "Caps", "15.00", 9))
	dto, err := svc.SetFeatured(ctx, created.ID, true)
	if err != nil {
		t.Fatalf("SetFeatured returned error: %v", err)
	}
	if !dto.ShowHome {
		t.Fatal("expected show_home to be set")
	}

	dto, err = svc.SetFeatured(ctx, created.ID, false)
	if err != nil {
		t.Fatalf("SetFeatured returned error: %v", err)
	}
	if dto.ShowHome {
		t.Fatal("expected show_home to be cleared")
	}
}

func TestAdjustStock(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created := mustCreate(t, svc, createInput("Stocked Shirt", "Shirts", "30.00", 5))

	dto, err := svc.AdjustStock(ctx, created.ID, -3)
	if err != nil {
		t.Fatalf("AdjustStock returned error: %v", err)
	}
	if dto.Stock != 2 {
		t.Fatalf("stock = %d, want 2", dto.Stock)
	}

	_, err = svc.AdjustStock(ctx, created.ID, -10)
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestList_AppliesCatalogRules(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mustCreate(t, svc, createInput("B Shirt", "Shirts", "20.00", 3))
	mustCreate(t, svc, createInput("A Cap", "Caps", "10.00", 0))

	inStock := true
	filters := catalog.DefaultFilters()
	filters.InStock = &inStock

	listed, err := svc.List(ctx, "", filters)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(listed) != 1 || listed[0].Name != "B Shirt" {
		t.Fatalf("expected only the in-stock shirt, got %+v", listed)
	}
}

func TestStats(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mustCreate(t, svc, createInput("B Shirt", "Shirts", "20.00", 3))
	mustCreate(t, svc, createInput("A Cap", "Caps", "10.00", 0))

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.TotalProducts != 2 || stats.TotalStock != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if !stats.TotalValue.Equal(decimal.RequireFromString("60")) {
		t.Fatalf("total value = %s, want 60", stats.TotalValue)
	}
	if stats.LowStockCount != 1 {
		t.Fatalf("low stock count = %d, want 1", stats.LowStockCount)
	}
}

func TestSuggest(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mustCreate(t, svc, createInput("Tee One", "T-Shirts", "10.00", 8))
	mustCreate(t, svc, createInput("Tee Two", "T-Shirts", "20.00", 8))

	lowStock := 2
	suggestion, err := svc.Suggest(ctx, SuggestInput{
		Name:        "New Black Tee",
		Description: "trending cotton",
		Stock:       &lowStock,
	})
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}
	if suggestion.Category != "T-Shirts" {
		t.Fatalf("expected auto category T-Shirts, got %q", suggestion.Category)
	}
	if suggestion.Price == nil || !suggestion.Price.Equal(decimal.RequireFromString("15")) {
		t.Fatalf("expected average price 15, got %v", suggestion.Price)
	}
	if len(suggestion.Tags) == 0 {
		t.Fatal("expected generated tags")
	}
	if suggestion.ReorderQuantity == nil || *suggestion.ReorderQuantity != 10 {
		t.Fatalf("expected reorder quantity 10, got %v", suggestion.ReorderQuantity)
	}
}
