package query

import (
	"math"
	"net/url"
	"testing"

	"github.com/lamvuong/go-shop-catalog/models"
)

func TestFiltersFromQuery(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		check func(t *testing.T, f models.Filters)
	}{
		{
			name: "all parameters",
			raw:  "category=thoi-trang&tier=n1&minPrice=100000&maxPrice=500000&minDiscount=20&search=giay",
			check: func(t *testing.T, f models.Filters) {
				if f.Category != "thoi-trang" || f.Tier != "n1" {
					t.Errorf("category/tier = %q/%q", f.Category, f.Tier)
				}
				if f.MinPrice != 100000 || f.MaxPrice != 500000 {
					t.Errorf("price range = %v..%v", f.MinPrice, f.MaxPrice)
				}
				if f.MinDiscount != 20 || f.SearchQuery != "giay" {
					t.Errorf("discount/search = %d/%q", f.MinDiscount, f.SearchQuery)
				}
			},
		},
		{
			name: "empty values keep identity",
			raw:  "",
			check: func(t *testing.T, f models.Filters) {
				if !f.IsIdentity() {
					t.Errorf("filters = %+v, want identity", f)
				}
			},
		},
		{
			name: "malformed numbers ignored",
			raw:  "minPrice=abc&maxPrice=-5&minDiscount=many",
			check: func(t *testing.T, f models.Filters) {
				if !f.IsIdentity() {
					t.Errorf("filters = %+v, want identity", f)
				}
			},
		},
		{
			name: "negative min price ignored",
			raw:  "minPrice=-100",
			check: func(t *testing.T, f models.Filters) {
				if f.MinPrice != 0 {
					t.Errorf("min price = %v, want 0", f.MinPrice)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.raw)
			if err != nil {
				t.Fatalf("ParseQuery: %v", err)
			}
			tt.check(t, FiltersFromQuery(values))
		})
	}
}

func TestFiltersToQueryOmitsDefaults(t *testing.T) {
	values := FiltersToQuery(models.DefaultFilters())
	if len(values) != 0 {
		t.Fatalf("identity filters emitted %v, want none", values)
	}
}

func TestFiltersToQueryOmitsInfiniteMaxPrice(t *testing.T) {
	f := models.DefaultFilters()
	f.MaxPrice = math.Inf(1)
	f.Category = "dien-tu"

	values := FiltersToQuery(f)
	if values.Has(paramMaxPrice) {
		t.Error("unbounded max price must be omitted")
	}
	if values.Get(paramCategory) != "dien-tu" {
		t.Errorf("category = %q, want %q", values.Get(paramCategory), "dien-tu")
	}
}

func TestFiltersQueryRoundTrip(t *testing.T) {
	f := models.DefaultFilters()
	f.Category = "gia-dung"
	f.Tier = "n2"
	f.MinPrice = 50000
	f.MaxPrice = 900000
	f.MinDiscount = 15
	f.SearchQuery = "nồi chiên"

	got := FiltersFromQuery(FiltersToQuery(f))
	if got != f {
		t.Fatalf("round trip = %+v, want %+v", got, f)
	}
}
