package enums

import "fmt"

// SortField names a product attribute the catalog can sort by.
type SortField string

const (
	SortFieldName     SortField = "name"
	SortFieldPrice    SortField = "price"
	SortFieldStock    SortField = "stock"
	SortFieldCategory SortField = "category"
)

var validSortFields = []SortField{
	SortFieldName,
	SortFieldPrice,
	SortFieldStock,
	SortFieldCategory,
}

// String implements fmt.Stringer.
func (f SortField) String() string {
	return string(f)
}

// IsValid reports whether the value is a known SortField.
func (f SortField) IsValid() bool {
	for _, candidate := range validSortFields {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseSortField converts raw input into a SortField.
func ParseSortField(value string) (SortField, error) {
	for _, candidate := range validSortFields {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort field %q", value)
}

// SortOrder is the direction applied to a SortField.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

var validSortOrders = []SortOrder{
	SortOrderAsc,
	SortOrderDesc,
}

// String implements fmt.Stringer.
func (o SortOrder) String() string {
	return string(o)
}

// IsValid reports whether the value is a known SortOrder.
func (o SortOrder) IsValid() bool {
	for _, candidate := range validSortOrders {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseSortOrder converts raw input into a SortOrder.
func ParseSortOrder(value string) (SortOrder, error) {
	for _, candidate := range validSortOrders {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort order %q", value)
}
