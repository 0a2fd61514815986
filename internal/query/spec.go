package query

import (
	"math"
	"time"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// SortField is a sortable column of the sales table.
type SortField string

const (
	SortByDate         SortField = "date"
	SortByFinalAmount  SortField = "final_amount"
	SortByQuantity     SortField = "quantity"
	SortByCustomerName SortField = "customer_name"
)

var sortFields = map[string]SortField{
	string(SortByDate):         SortByDate,
	string(SortByFinalAmount):  SortByFinalAmount,
	string(SortByQuantity):     SortByQuantity,
	string(SortByCustomerName): SortByCustomerName,
}

// Column returns the column the field orders by.
func (f SortField) Column() string {
	return string(f)
}

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

type Sort struct {
	Field SortField
	Order SortOrder
}

// Filters holds the set-membership constraints. An empty slice means the
// column is not filtered.
type Filters struct {
	Regions        []string
	Genders        []string
	Categories     []string
	Tags           []string
	PaymentMethods []string
}

// Empty reports whether no multi-value filter is set.
func (f Filters) Empty() bool {
	return len(f.Regions) == 0 && len(f.Genders) == 0 && len(f.Categories) == 0 &&
		len(f.Tags) == 0 && len(f.PaymentMethods) == 0
}

// DateRange bounds are inclusive; nil means unbounded on that side.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Pagination is a 1-based page window. Both values are always >= 1.
type Pagination struct {
	Page  int
	Limit int
}

// Offset saturates at math.MaxInt instead of overflowing.
func (p Pagination) Offset() int {
	if p.Limit > 0 && p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Spec is the validated form of a list request.
type Spec struct {
	Search     string
	Filters    Filters
	DateRange  DateRange
	Sort       Sort
	Pagination Pagination
}

// Default is the Spec of a request without parameters.
func Default() Spec {
	return Spec{
		Sort:       Sort{Field: SortByDate, Order: Desc},
		Pagination: Pagination{Page: DefaultPage, Limit: DefaultLimit},
	}
}
