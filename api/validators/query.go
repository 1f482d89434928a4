package validators

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/threadline/threadline-backend/internal/catalog"
	"github.com/threadline/threadline-backend/pkg/enums"
	pkgerrors "github.com/threadline/threadline-backend/pkg/errors"
	"github.com/threadline/threadline-backend/pkg/pagination"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParsePathUUID reads a chi URL parameter as a UUID.
func ParsePathUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid id").WithDetails(map[string]any{"field": key})
	}
	return id, nil
}

// ParsePagination reads limit and cursor query parameters.
func ParsePagination(r *http.Request) (pagination.Params, error) {
	limit, err := ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{
		Limit:  limit,
		Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
	}, nil
}

// ParseCatalogQuery reads the storefront search, filter, and sort parameters.
// Unset parameters leave the matching constraint open.
func ParseCatalogQuery(r *http.Request) (string, catalog.Filters, error) {
	query := r.URL.Query()
	filters := catalog.DefaultFilters()

	filters.Category = strings.TrimSpace(query.Get("category"))

	featured, err := parseOptionalBool(query.Get("featured"), "featured")
	if err != nil {
		return "", catalog.Filters{}, err
	}
	filters.Featured = featured

	inStock, err := parseOptionalBool(query.Get("in_stock"), "in_stock")
	if err != nil {
		return "", catalog.Filters{}, err
	}
	filters.InStock = inStock

	minPrice, err := parseOptionalDecimal(query.Get("min_price"), "min_price")
	if err != nil {
		return "", catalog.Filters{}, err
	}
	filters.MinPrice = minPrice

	maxPrice, err := parseOptionalDecimal(query.Get("max_price"), "max_price")
	if err != nil {
		return "", catalog.Filters{}, err
	}
	filters.MaxPrice = maxPrice

	start, err := parseOptionalDate(query.Get("start_date"), "start_date")
	if err != nil {
		return "", catalog.Filters{}, err
	}
	filters.DateRange.Start = start

	end, err := parseOptionalDate(query.Get("end_date"), "end_date")
	if err != nil {
		return "", catalog.Filters{}, err
	}
	filters.DateRange.End = end

	if raw := strings.TrimSpace(query.Get("sort_by")); raw != "" {
		field, err := enums.ParseSortField(raw)
		if err != nil {
			return "", catalog.Filters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort field").WithDetails(map[string]any{"field": "sort_by"})
		}
		filters.SortBy = field
	}
	if raw := strings.TrimSpace(query.Get("sort_order")); raw != "" {
		order, err := enums.ParseSortOrder(raw)
		if err != nil {
			return "", catalog.Filters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort order").WithDetails(map[string]any{"field": "sort_order"})
		}
		filters.SortOrder = order
	}

	return strings.TrimSpace(query.Get("search")), filters, nil
}

func parseOptionalBool(raw, field string) (*bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a boolean").WithDetails(map[string]any{"field": field})
	}
	return &value, nil
}

func parseOptionalDecimal(raw, field string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": field})
	}
	return &value, nil
}

func parseOptionalDate(raw, field string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		if value, err = time.Parse("2006-01-02", raw); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a date").WithDetails(map[string]any{"field": field})
		}
	}
	return &value, nil
}
