package query

import (
	"math"
	"net/url"
	"strconv"

	"github.com/lamvuong/go-shop-catalog/models"
)

// Query-string parameter names shared with the page front end.
const (
	paramCategory    = "category"
	paramTier        = "tier"
	paramMinPrice    = "minPrice"
	paramMaxPrice    = "maxPrice"
	paramMinDiscount = "minDiscount"
	paramSearch      = "search"
)

// FiltersFromQuery seeds a filter selection from URL query parameters.
// Absent or malformed parameters keep their identity defaults.
func FiltersFromQuery(values url.Values) models.Filters {
	f := models.DefaultFilters()

	if v := values.Get(paramCategory); v != "" {
		f.Category = v
	}
	if v := values.Get(paramTier); v != "" {
		f.Tier = v
	}
	if v := values.Get(paramMinPrice); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			f.MinPrice = parsed
		}
	}
	if v := values.Get(paramMaxPrice); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			f.MaxPrice = parsed
		}
	}
	if v := values.Get(paramMinDiscount); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			f.MinDiscount = parsed
		}
	}
	if v := values.Get(paramSearch); v != "" {
		f.SearchQuery = v
	}

	return f
}

// FiltersToQuery emits the query parameters for a selection, omitting every
// parameter whose value equals its identity default.
func FiltersToQuery(f models.Filters) url.Values {
	values := url.Values{}

	if f.Category != "" && f.Category != models.FilterAll {
		values.Set(paramCategory, f.Category)
	}
	if f.Tier != "" && f.Tier != models.FilterAll {
		values.Set(paramTier, f.Tier)
	}
	if f.MinPrice > 0 {
		values.Set(paramMinPrice, strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 && !math.IsInf(f.MaxPrice, 1) {
		values.Set(paramMaxPrice, strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.MinDiscount > 0 {
		values.Set(paramMinDiscount, strconv.Itoa(f.MinDiscount))
	}
	if f.SearchQuery != "" {
		values.Set(paramSearch, f.SearchQuery)
	}

	return values
}
