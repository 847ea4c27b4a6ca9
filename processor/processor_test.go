package processor

import (
	"testing"

	"github.com/lamvuong/go-shop-catalog/config"
	"github.com/lamvuong/go-shop-catalog/models"
)

func newTestProcessor() *Processor {
	return New(config.DefaultConfig())
}

func TestProductsEndToEnd(t *testing.T) {
	p := newTestProcessor()

	raws := []models.RawRecord{
		{
			"product_name":   "Giày Nike",
			"original_price": "1.500.000đ",
			"sale_price":     "1.200.000đ",
			"sold_count":     "2.5k",
			"tier":           "n1",
			"category":       "the-thao",
		},
	}

	collection := p.Products(raws)
	if collection.Len() != 1 {
		t.Fatalf("expected 1 product, got %d", collection.Len())
	}

	item := collection.All[0]
	if item.Name != "Giày Nike" {
		t.Errorf("name = %q", item.Name)
	}
	if item.OriginalPrice != 1500000 {
		t.Errorf("original price = %v", item.OriginalPrice)
	}
	if item.SalePrice != 1200000 {
		t.Errorf("sale price = %v", item.SalePrice)
	}
	if item.Discount != 20 {
		t.Errorf("discount = %d", item.Discount)
	}
	if item.SoldCount != 2500 {
		t.Errorf("sold count = %d", item.SoldCount)
	}
	if item.Tier != models.TierHighEnd {
		t.Errorf("tier = %q", item.Tier)
	}

	if len(collection.HighEnd) != 1 || collection.HighEnd[0] != item {
		t.Error("expected product in high-end bucket")
	}
	if len(collection.ByTier[models.TierHighEnd]) != 1 {
		t.Error("expected product in byTier n1")
	}
	if len(collection.ByCategory["the-thao"]) != 1 {
		t.Error("expected product in byCategory the-thao")
	}
}

func TestProductDefaults(t *testing.T) {
	p := newTestProcessor()

	collection := p.Products([]models.RawRecord{{}})
	item := collection.All[0]

	if item.ID == "" {
		t.Error("expected generated id")
	}
	if item.Name != models.DefaultProductName {
		t.Errorf("name = %q, want %q", item.Name, models.DefaultProductName)
	}
	if item.Tier != models.TierMixed {
		t.Errorf("tier = %q, want %q", item.Tier, models.TierMixed)
	}
	if item.OriginalPrice != 0 || item.SalePrice != 0 || item.Discount != 0 {
		t.Error("expected zero prices and discount")
	}
	if item.Rating < 0 || item.Rating > 5 {
		t.Errorf("rating %v outside [0,5]", item.Rating)
	}
	if item.Image != models.DefaultImageURL {
		t.Errorf("image = %q", item.Image)
	}
	if item.Link != models.DefaultLink {
		t.Errorf("link = %q", item.Link)
	}
}

func TestPartitionInvariant(t *testing.T) {
	p := newTestProcessor()

	raws := []models.RawRecord{
		{"product_name": "A", "tier": "n1"},
		{"product_name": "B", "tier": "n2"},
		{"product_name": "C", "tier": "n3"},
		{"product_name": "D", "tier": "vip"},
		{"product_name": "E"},
	}

	collection := p.Products(raws)
	total := len(collection.HighEnd) + len(collection.Budget) + len(collection.Mixed)
	if total != collection.Len() {
		t.Fatalf("tier buckets sum to %d, want %d", total, collection.Len())
	}

	seen := make(map[string]int)
	for _, bucket := range [][]*models.CanonicalProduct{collection.HighEnd, collection.Budget, collection.Mixed} {
		for _, item := range bucket {
			seen[item.ID]++
		}
	}
	for _, item := range collection.All {
		if seen[item.ID] != 1 {
			t.Fatalf("record %q appears in %d tier buckets, want exactly 1", item.Name, seen[item.ID])
		}
	}

	// Unrecognised tiers land in mixed.
	if len(collection.Mixed) != 3 {
		t.Fatalf("mixed bucket = %d, want 3", len(collection.Mixed))
	}
}

func TestUnknownCategoryExcludedFromIndex(t *testing.T) {
	p := newTestProcessor()

	collection := p.Products([]models.RawRecord{
		{"product_name": "A", "category": "dien-tu"},
		{"product_name": "B", "category": "pokemon-cards"},
	})

	if collection.Len() != 2 {
		t.Fatalf("all = %d, want 2", collection.Len())
	}
	if len(collection.ByCategory["dien-tu"]) != 1 {
		t.Error("known category missing from index")
	}
	if _, ok := collection.ByCategory["pokemon-cards"]; ok {
		t.Error("unknown category should be excluded from index")
	}
	// The record keeps its key verbatim.
	if collection.All[1].Category != "pokemon-cards" {
		t.Errorf("category = %q, want preserved key", collection.All[1].Category)
	}
}

func TestBestSellers(t *testing.T) {
	p := newTestProcessor()

	collection := p.Products([]models.RawRecord{
		{"product_name": "low", "sold_count": "50"},
		{"product_name": "mid-first", "sold_count": "500"},
		{"product_name": "top", "sold_count": "2k"},
		{"product_name": "mid-second", "sold_count": "500"},
		{"product_name": "threshold", "sold_count": "100"},
	})

	names := make([]string, 0, len(collection.BestSellers))
	for _, item := range collection.BestSellers {
		names = append(names, item.Name)
	}

	want := []string{"top", "mid-first", "mid-second"}
	if len(names) != len(want) {
		t.Fatalf("best sellers = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("best sellers = %v, want %v (ties must keep input order)", names, want)
		}
	}
}

func TestShopsNormalization(t *testing.T) {
	p := newTestProcessor()

	collection := p.Shops([]models.RawRecord{
		{
			"shop_name":    "Shop Mẹ Bé",
			"category":     "me-be",
			"tier":         "n2",
			"rating":       "4.8",
			"rating_count": "1.2k",
			"followers":    "3m",
			"verified":     "true",
		},
		{},
	})

	shop := collection.All[0]
	if shop.Name != "Shop Mẹ Bé" {
		t.Errorf("name = %q", shop.Name)
	}
	if shop.Rating != 4.8 {
		t.Errorf("rating = %v", shop.Rating)
	}
	if shop.RatingCount != 1200 {
		t.Errorf("rating count = %d", shop.RatingCount)
	}
	if shop.Followers != 3000000 {
		t.Errorf("followers = %d", shop.Followers)
	}
	if !shop.Verified {
		t.Error("expected verified shop")
	}
	if len(collection.Budget) != 1 {
		t.Error("expected shop in budget bucket")
	}

	fallback := collection.All[1]
	if fallback.Name != models.DefaultShopName {
		t.Errorf("name = %q, want %q", fallback.Name, models.DefaultShopName)
	}
	if fallback.Type != models.DefaultShopType {
		t.Errorf("type = %q, want %q", fallback.Type, models.DefaultShopType)
	}
	if fallback.Rating != 5 {
		t.Errorf("rating = %v, want default 5", fallback.Rating)
	}
	if fallback.Tier != models.TierMixed {
		t.Errorf("tier = %q, want mixed", fallback.Tier)
	}
}

func TestProcessDoesNotMutateInput(t *testing.T) {
	p := newTestProcessor()

	raw := models.RawRecord{"product_name": "A", "sale_price": "10.000đ"}
	raws := []models.RawRecord{raw}
	p.Products(raws)

	if raw["product_name"] != "A" || raw["sale_price"] != "10.000đ" {
		t.Fatal("input record was mutated")
	}

	first := p.Products(raws)
	second := p.Products(raws)
	if first == second {
		t.Fatal("expected a fresh collection per call")
	}
}
