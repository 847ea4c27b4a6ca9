package store

import (
	"fmt"
	"testing"

	"github.com/lamvuong/go-shop-catalog/models"
)

func productCollection(id string) *models.Collection[*models.CanonicalProduct] {
	return &models.Collection[*models.CanonicalProduct]{
		All: []*models.CanonicalProduct{{ID: id, Name: "Áo Thun"}},
	}
}

func TestCollectionCacheHitAndMiss(t *testing.T) {
	cache, err := NewCollectionCache[*models.CanonicalProduct](4)
	if err != nil {
		t.Fatalf("NewCollectionCache: %v", err)
	}

	if _, ok := cache.Get("products.csv"); ok {
		t.Fatal("empty cache reported a hit")
	}

	cache.Put("products.csv", productCollection("p1"))

	got, ok := cache.Get("products.csv")
	if !ok {
		t.Fatal("cached source reported a miss")
	}
	if got.All[0].ID != "p1" {
		t.Errorf("cached id = %q, want %q", got.All[0].ID, "p1")
	}
}

func TestCollectionCachePutReplaces(t *testing.T) {
	cache, err := NewCollectionCache[*models.CanonicalProduct](4)
	if err != nil {
		t.Fatalf("NewCollectionCache: %v", err)
	}

	cache.Put("products.csv", productCollection("p1"))
	cache.Put("products.csv", productCollection("p2"))

	got, ok := cache.Get("products.csv")
	if !ok || got.All[0].ID != "p2" {
		t.Fatalf("cached id = %q, want replacement %q", got.All[0].ID, "p2")
	}
}

func TestCollectionCacheEvictsOldest(t *testing.T) {
	cache, err := NewCollectionCache[*models.CanonicalProduct](2)
	if err != nil {
		t.Fatalf("NewCollectionCache: %v", err)
	}

	for i := 1; i <= 3; i++ {
		source := fmt.Sprintf("source-%d.csv", i)
		cache.Put(source, productCollection(fmt.Sprintf("p%d", i)))
	}

	if _, ok := cache.Get("source-1.csv"); ok {
		t.Error("oldest source survived past capacity")
	}
	if _, ok := cache.Get("source-3.csv"); !ok {
		t.Error("newest source missing")
	}
}

func TestCollectionCachePurge(t *testing.T) {
	cache, err := NewCollectionCache[*models.CanonicalProduct](4)
	if err != nil {
		t.Fatalf("NewCollectionCache: %v", err)
	}

	cache.Put("products.csv", productCollection("p1"))
	cache.Purge()

	if _, ok := cache.Get("products.csv"); ok {
		t.Fatal("purged cache reported a hit")
	}
}
