package models

import "math"

// FilterAll is the sentinel meaning "no constraint" for category and tier.
const FilterAll = "all"

// Filters is the value shape of a filter selection. The zero constraints
// given by DefaultFilters form the identity filter: applying them returns
// the collection unchanged.
type Filters struct {
	Category    string
	Tier        string
	MinPrice    float64
	MaxPrice    float64
	MinDiscount int
	MinRating   float64
	SearchQuery string
}

// DefaultFilters returns the identity filter selection.
func DefaultFilters() Filters {
	return Filters{
		Category: FilterAll,
		Tier:     FilterAll,
		MinPrice: 0,
		MaxPrice: math.Inf(1),
	}
}

// IsIdentity reports whether f constrains nothing.
func (f Filters) IsIdentity() bool {
	return f == DefaultFilters()
}

// SortKey selects a comparator for ordering query results.
type SortKey string

const (
	SortPriceAsc     SortKey = "price-asc"
	SortPriceDesc    SortKey = "price-desc"
	SortDiscountDesc SortKey = "discount-desc"
	SortSoldDesc     SortKey = "sold-desc"
	SortRatingDesc   SortKey = "rating-desc"
	SortRatingAsc    SortKey = "rating-asc"
	SortNameAsc      SortKey = "name-asc"
	SortNameDesc     SortKey = "name-desc"
)
