package store

import (
	"context"
	"sync"

	"github.com/lamvuong/go-shop-catalog/models"
	"github.com/lamvuong/go-shop-catalog/search"
)

// Verify interface compliance
var _ search.RecentStore = (*MemoryRecentStore)(nil)

// MemoryRecentStore keeps the recent-search list in memory. Used when no
// Redis address is configured.
type MemoryRecentStore struct {
	mu       sync.Mutex
	searches []models.RecentSearch
}

// NewMemoryRecentStore creates an empty in-memory store.
func NewMemoryRecentStore() *MemoryRecentStore {
	return &MemoryRecentStore{}
}

// Load returns the stored list.
func (s *MemoryRecentStore) Load(_ context.Context) ([]models.RecentSearch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.RecentSearch, len(s.searches))
	copy(out, s.searches)
	return out, nil
}

// Save replaces the stored list.
func (s *MemoryRecentStore) Save(_ context.Context, searches []models.RecentSearch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches = make([]models.RecentSearch, len(searches))
	copy(s.searches, searches)
	return nil
}
