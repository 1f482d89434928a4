package products

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/threadline/threadline-backend/internal/catalog"
	"github.com/threadline/threadline-backend/pkg/db/models"
	"github.com/threadline/threadline-backend/pkg/enums"
	pkgerrors "github.com/threadline/threadline-backend/pkg/errors"
)

// ServiceParams groups dependencies for the product service.
type ServiceParams struct {
	Repo              *Repository
	LowStockThreshold int
}

// Service exposes catalog management for the storefront and the back office.
type Service interface {
	List(ctx context.Context, search string, filters catalog.Filters) ([]ProductDTO, error)
	Get(ctx context.Context, id uuid.UUID) (ProductDTO, error)
	Create(ctx context.Context, input CreateProductInput) (ProductDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	BulkDelete(ctx context.Context, ids []uuid.UUID) (BulkDeleteResult, error)
	SetFeatured(ctx context.Context, id uuid.UUID, featured bool) (ProductDTO, error)
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (ProductDTO, error)
	Stats(ctx context.Context) (catalog.Stats, error)
	Suggest(ctx context.Context, input SuggestInput) (SuggestionDTO, error)
}

type service struct {
	repo              *Repository
	lowStockThreshold int
}

// NewService builds a product service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	threshold := params.LowStockThreshold
	if threshold <= 0 {
		threshold = catalog.DefaultLowStockThreshold
	}
	return &service{
		repo:              params.Repo,
		lowStockThreshold: threshold,
	}, nil
}

// List loads the catalog and applies the in-memory filter/sort rules.
func (s *service) List(ctx context.Context, search string, filters catalog.Filters) ([]ProductDTO, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return toDTOs(catalog.Query(records, search, filters)), nil
}

// Get returns a single listing.
func (s *service) Get(ctx context.Context, id uuid.UUID) (ProductDTO, error) {
	record, err := s.findProduct(ctx, id)
	if err != nil {
		return ProductDTO{}, err
	}
	return toDTO(record), nil
}

// Create validates the admin form and inserts a new listing.
func (s *service) Create(ctx context.Context, input CreateProductInput) (ProductDTO, error) {
	if formErrs := formFromCreateInput(input).Validate(); len(formErrs) > 0 {
		return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product form is incomplete").WithDetails(formErrs)
	}

	category, err := enums.ParseProductCategory(input.Category)
	if err != nil {
		return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}
	if input.Price.IsNegative() {
		return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if input.Stock < 0 {
		return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}

	record := models.Product{
		Name:        input.Name,
		Description: input.Description,
		Category:    category,
		Price:       input.Price,
		Stock:       input.Stock,
		Image:       input.Image,
		Images:      pq.StringArray(input.Images),
		Tags:        pq.StringArray(input.Tags),
		ShowHome:    input.ShowHome,
		Discount:    input.Discount,
		Dimensions:  input.Dimensions,
		Weight:      input.Weight,
		Color:       input.Color,
		Size:        input.Size,
	}
	if record.Discount != nil && (record.Discount.IsNegative() || record.Discount.GreaterThan(decimal.NewFromInt(100))) {
		return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "discount must be between 0 and 100")
	}
	if err := s.repo.Create(ctx, &record); err != nil {
		return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return toDTO(record), nil
}

// Update applies a partial edit to an existing listing.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (ProductDTO, error) {
	if id == uuid.Nil {
		return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	fields := map[string]any{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Category != nil {
		category, err := enums.ParseProductCategory(*input.Category)
		if err != nil {
			return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		fields["category"] = category
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
		}
		fields["price"] = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
		}
		fields["stock"] = *input.Stock
	}
	if input.Image != nil {
		fields["image"] = *input.Image
	}
	if input.Images != nil {
		fields["images"] = pq.StringArray(*input.Images)
	}
	if input.Tags != nil {
		fields["tags"] = pq.StringArray(*input.Tags)
	}
	if input.ShowHome != nil {
		fields["show_home"] = *input.ShowHome
	}
	if input.Discount != nil {
		if input.Discount.IsNegative() || input.Discount.GreaterThan(decimal.NewFromInt(100)) {
			return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "discount must be between 0 and 100")
		}
		fields["discount"] = *input.Discount
	}
	if input.Dimensions != nil {
		fields["dimensions"] = *input.Dimensions
	}
	if input.Weight != nil {
		fields["weight"] = *input.Weight
	}
	if input.Color != nil {
		fields["color"] = *input.Color
	}
	if input.Size != nil {
		fields["size"] = *input.Size
	}
	if len(fields) == 0 {
		return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	record, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return toDTO(record), nil
}

// Delete removes a listing permanently.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// BulkDelete removes each listing independently. Missing ids are reported in
// the result rather than aborting the batch; infrastructure failures abort.
func (s *service) BulkDelete(ctx context.Context, ids []uuid.UUID) (BulkDeleteResult, error) {
	if len(ids) == 0 {
		return BulkDeleteResult{}, pkgerrors.New(pkgerrors.CodeValidation, "at least one product id is required")
	}

	result := BulkDeleteResult{
		Deleted: []uuid.UUID{},
		Missing: []uuid.UUID{},
	}
	var combined error
	for _, id := range ids {
		err := s.repo.Delete(ctx, id)
		switch {
		case err == nil:
			result.Deleted = append(result.Deleted, id)
		case errors.Is(err, gorm.ErrRecordNotFound):
			result.Missing = append(result.Missing, id)
		default:
			combined = multierr.Append(combined, err)
		}
	}
	if combined != nil {
		return result, pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "bulk delete products")
	}
	return result, nil
}

// SetFeatured toggles the homepage flag.
func (s *service) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) (ProductDTO, error) {
	record, err := s.repo.Update(ctx, id, map[string]any{"show_home": featured})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set featured flag")
	}
	return toDTO(record), nil
}

// AdjustStock applies a signed delta to the stock level. The result may not
// drop below zero.
func (s *service) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (ProductDTO, error) {
	record, err := s.findProduct(ctx, id)
	if err != nil {
		return ProductDTO{}, err
	}

	next := record.Stock + delta
	if next < 0 {
		return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot drop below zero")
	}

	updated, err := s.repo.Update(ctx, id, map[string]any{"stock": next})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adjust stock")
	}
	return toDTO(updated), nil
}

// Stats aggregates the full catalog for the dashboard.
func (s *service) Stats(ctx context.Context) (catalog.Stats, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return catalog.Stats{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products for stats")
	}
	return catalog.Aggregate(records, s.lowStockThreshold), nil
}

// Suggest computes form-assist hints: category, price, tags and reorder quantity.
func (s *service) Suggest(ctx context.Context, input SuggestInput) (SuggestionDTO, error) {
	suggestion := SuggestionDTO{Tags: []string{}}

	category := input.Category
	if category == "" {
		if guessed := AutoCategorize(input.Name, input.Description); guessed != "" {
			category = string(guessed)
			suggestion.Category = category
		}
	}

	if category != "" {
		avg, ok, err := s.repo.AveragePriceByCategory(ctx, category)
		if err != nil {
			return SuggestionDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "average category price")
		}
		if ok {
			price := decimal.NewFromFloat(avg).Round(2)
			suggestion.Price = &price
		}
		suggestion.Tags = GenerateTags(input.Name, category, input.Description)
	}

	if input.Stock != nil {
		if qty, ok := SuggestReorderQuantity(*input.Stock, s.lowStockThreshold); ok {
			suggestion.ReorderQuantity = &qty
		}
	}
	return suggestion, nil
}

func (s *service) findProduct(ctx context.Context, id uuid.UUID) (models.Product, error) {
	if id == uuid.Nil {
		return models.Product{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return models.Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return record, nil
}
