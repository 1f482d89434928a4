package products

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormErrors maps a field name to its validation message.
type FormErrors map[string]string

// ProductForm holds the admin edit form fields subject to presence checks.
type ProductForm struct {
	Name     string
	Category string
	Price    decimal.Decimal
	Stock    *int
	Image    string
}

// Validate runs required-field checks only. Range checks (negative price or
// stock) are enforced separately at the request boundary.
func (f ProductForm) Validate() FormErrors {
	errs := FormErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(f.Category) == "" {
		errs["category"] = "Category is required"
	}
	if f.Price.IsZero() {
		errs["price"] = "Price is required"
	}
	if f.Stock == nil {
		errs["stock"] = "Stock is required"
	}
	if strings.TrimSpace(f.Image) == "" {
		errs["image"] = "Image is required"
	}
	return errs
}

func formFromCreateInput(input CreateProductInput) ProductForm {
	stock := input.Stock
	return ProductForm{
		Name:     input.Name,
		Category: input.Category,
		Price:    input.Price,
		Stock:    &stock,
		Image:    input.Image,
	}
}
