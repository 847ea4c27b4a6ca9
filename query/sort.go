package query

import (
	"sort"

	"github.com/lamvuong/go-shop-catalog/models"
	"github.com/lamvuong/go-shop-catalog/normalize"
)

// Sort returns a freshly ordered copy of records. Every comparator is
// stable; an unknown key returns the input order unchanged (still a copy).
// Records lacking the sorted field compare as zero.
func Sort[T models.Record](records []T, key models.SortKey) []T {
	out := make([]T, len(records))
	copy(out, records)

	var less func(a, b T) bool
	switch key {
	case models.SortPriceAsc:
		less = func(a, b T) bool { return price(a) < price(b) }
	case models.SortPriceDesc:
		less = func(a, b T) bool { return price(a) > price(b) }
	case models.SortDiscountDesc:
		less = func(a, b T) bool { return discount(a) > discount(b) }
	case models.SortSoldDesc:
		less = func(a, b T) bool { return sold(a) > sold(b) }
	case models.SortRatingDesc:
		less = func(a, b T) bool { return rating(a) > rating(b) }
	case models.SortRatingAsc:
		less = func(a, b T) bool { return rating(a) < rating(b) }
	case models.SortNameAsc:
		less = func(a, b T) bool { return normalize.CompareNames(a.Label(), b.Label()) < 0 }
	case models.SortNameDesc:
		less = func(a, b T) bool { return normalize.CompareNames(a.Label(), b.Label()) > 0 }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func price[T models.Record](r T) float64 {
	v, _ := r.PriceValue()
	return v
}

func discount[T models.Record](r T) int {
	v, _ := r.DiscountValue()
	return v
}

func sold[T models.Record](r T) int {
	v, _ := r.SoldValue()
	return v
}

func rating[T models.Record](r T) float64 {
	v, _ := r.RatingValue()
	return v
}
