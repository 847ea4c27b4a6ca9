// Package store provides the per-source collection cache and the persisted
// recent-search backends.
package store

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lamvuong/go-shop-catalog/models"
)

// CollectionCache caches processed collections keyed by source identifier.
// A Put replaces the cached collection wholesale; readers never observe a
// partially updated one.
type CollectionCache[T models.Record] struct {
	entries *lru.Cache[string, *models.Collection[T]]
}

// NewCollectionCache creates an LRU cache holding up to size sources.
func NewCollectionCache[T models.Record](size int) (*CollectionCache[T], error) {
	entries, err := lru.New[string, *models.Collection[T]](size)
	if err != nil {
		return nil, fmt.Errorf("create collection cache: %w", err)
	}
	return &CollectionCache[T]{entries: entries}, nil
}

// Get returns the cached collection for a source, if present.
func (c *CollectionCache[T]) Get(sourceID string) (*models.Collection[T], bool) {
	return c.entries.Get(sourceID)
}

// Put stores the collection for a source.
func (c *CollectionCache[T]) Put(sourceID string, collection *models.Collection[T]) {
	c.entries.Add(sourceID, collection)
}

// Purge drops every cached collection.
func (c *CollectionCache[T]) Purge() {
	c.entries.Purge()
}
