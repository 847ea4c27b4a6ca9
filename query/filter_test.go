package query

import (
	"testing"

	"github.com/lamvuong/go-shop-catalog/config"
	"github.com/lamvuong/go-shop-catalog/models"
	"github.com/lamvuong/go-shop-catalog/processor"
)

func productCollection(t *testing.T) *models.Collection[*models.CanonicalProduct] {
	t.Helper()
	p := processor.New(config.DefaultConfig())
	return p.Products([]models.RawRecord{
		{"id": "p1", "product_name": "Giày Nike", "category": "the-thao", "tier": "n1", "original_price": "1.500.000đ", "sale_price": "1.200.000đ", "sold_count": "2.5k"},
		{"id": "p2", "product_name": "Áo Thun Nam", "category": "thoi-trang", "tier": "n2", "original_price": "200.000đ", "sale_price": "99.000đ", "sold_count": "500"},
		{"id": "p3", "product_name": "Nồi Chiên", "category": "gia-dung", "tier": "n3", "sale_price": "850.000đ", "sold_count": "80"},
	})
}

func ids[T models.Record](records []T) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.RecordID())
	}
	return out
}

func TestApplyIdentityFilter(t *testing.T) {
	collection := productCollection(t)

	result := Apply(collection, models.DefaultFilters())
	if len(result) != collection.Len() {
		t.Fatalf("identity filter returned %d of %d records", len(result), collection.Len())
	}
	for i, record := range result {
		if record != collection.All[i] {
			t.Fatalf("identity filter changed order at %d", i)
		}
	}
}

func TestApplyClauses(t *testing.T) {
	collection := productCollection(t)

	tests := []struct {
		name    string
		mutate  func(*models.Filters)
		wantIDs []string
	}{
		{
			name:    "category",
			mutate:  func(f *models.Filters) { f.Category = "thoi-trang" },
			wantIDs: []string{"p2"},
		},
		{
			name:    "tier",
			mutate:  func(f *models.Filters) { f.Tier = "n1" },
			wantIDs: []string{"p1"},
		},
		{
			name:    "min price",
			mutate:  func(f *models.Filters) { f.MinPrice = 500000 },
			wantIDs: []string{"p1", "p3"},
		},
		{
			name:    "max price",
			mutate:  func(f *models.Filters) { f.MaxPrice = 100000 },
			wantIDs: []string{"p2"},
		},
		{
			name:    "min discount",
			mutate:  func(f *models.Filters) { f.MinDiscount = 30 },
			wantIDs: []string{"p2"},
		},
		{
			name:    "embedded search",
			mutate:  func(f *models.Filters) { f.SearchQuery = "ao" },
			wantIDs: []string{"p2"},
		},
		{
			name: "search composes with other clauses",
			mutate: func(f *models.Filters) {
				f.SearchQuery = "ao"
				f.MinPrice = 500000
			},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := models.DefaultFilters()
			tt.mutate(&f)
			got := ids(Apply(collection, f))
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("filtered ids = %v, want %v", got, tt.wantIDs)
			}
			for i := range tt.wantIDs {
				if got[i] != tt.wantIDs[i] {
					t.Fatalf("filtered ids = %v, want %v", got, tt.wantIDs)
				}
			}
		})
	}
}

func TestApplyMinRating(t *testing.T) {
	p := processor.New(config.DefaultConfig())
	shops := p.Shops([]models.RawRecord{
		{"id": "s1", "shop_name": "Shop A", "rating": "4.9"},
		{"id": "s2", "shop_name": "Shop B", "rating": "3.2"},
	})

	f := models.DefaultFilters()
	f.MinRating = 4.5
	got := ids(Apply(shops, f))
	if len(got) != 1 || got[0] != "s1" {
		t.Fatalf("filtered ids = %v, want [s1]", got)
	}
}

func TestApplyShopsSkipPriceClause(t *testing.T) {
	p := processor.New(config.DefaultConfig())
	shops := p.Shops([]models.RawRecord{
		{"id": "s1", "shop_name": "Shop A"},
	})

	// Shops carry no sale price, so a price window must not exclude them.
	f := models.DefaultFilters()
	f.MinPrice = 1000000
	if got := ids(Apply(shops, f)); len(got) != 1 {
		t.Fatalf("filtered ids = %v, want the shop to pass vacuously", got)
	}
}

func TestApplyNilCollection(t *testing.T) {
	if got := Apply[*models.CanonicalProduct](nil, models.DefaultFilters()); got != nil {
		t.Fatalf("expected nil result for nil collection, got %v", got)
	}
}
