// Package query applies filter, sort and state operations over processed
// collections.
package query

import (
	"math"
	"strings"

	"github.com/lamvuong/go-shop-catalog/models"
	"github.com/lamvuong/go-shop-catalog/normalize"
)

// Apply returns the subsequence of collection.All passing every clause of f,
// in original order. The collection is never mutated; the identity filter
// returns a copy equal to All.
func Apply[T models.Record](collection *models.Collection[T], f models.Filters) []T {
	if collection == nil {
		return nil
	}

	maxPrice := f.MaxPrice
	if maxPrice <= 0 {
		maxPrice = math.Inf(1)
	}
	foldedQuery := ""
	if f.SearchQuery != "" {
		foldedQuery = normalize.Fold(f.SearchQuery)
	}

	result := make([]T, 0, len(collection.All))
	for _, record := range collection.All {
		if !passes(record, f, maxPrice, foldedQuery) {
			continue
		}
		result = append(result, record)
	}
	return result
}

func passes[T models.Record](record T, f models.Filters, maxPrice float64, foldedQuery string) bool {
	if f.Category != "" && f.Category != models.FilterAll && record.CategoryKey() != f.Category {
		return false
	}
	if f.Tier != "" && f.Tier != models.FilterAll && string(record.TierKey()) != f.Tier {
		return false
	}
	if price, ok := record.PriceValue(); ok {
		if price < f.MinPrice || price > maxPrice {
			return false
		}
	}
	if discount, ok := record.DiscountValue(); ok && discount < f.MinDiscount {
		return false
	}
	if rating, ok := record.RatingValue(); ok && rating < f.MinRating {
		return false
	}
	if foldedQuery != "" {
		if !strings.Contains(normalize.Fold(record.Label()), foldedQuery) {
			return false
		}
	}
	return true
}
