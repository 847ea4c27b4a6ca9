package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/lamvuong/go-shop-catalog/models"
	"github.com/lamvuong/go-shop-catalog/search"
	"github.com/redis/go-redis/v9"
)

// Verify interface compliance
var _ search.RecentStore = (*RecentSearchStore)(nil)

const recentSearchesKey = "recent_searches"

// RecentSearchStore persists the recent-search list in Redis under a
// namespaced key, serialized as JSON.
type RecentSearchStore struct {
	client *redis.Client
	key    string
}

// NewRecentSearchStore creates a Redis-backed recent-search store namespaced
// under keyPrefix.
func NewRecentSearchStore(client *redis.Client, keyPrefix string) *RecentSearchStore {
	return &RecentSearchStore{
		client: client,
		key:    keyPrefix + ":" + recentSearchesKey,
	}
}

// Load returns the persisted list. A missing key yields an empty list;
// corrupt data is logged and also yields an empty list, never an error the
// caller must surface.
func (s *RecentSearchStore) Load(ctx context.Context) ([]models.RecentSearch, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recent searches: %w", err)
	}

	var searches []models.RecentSearch
	if err := json.Unmarshal(data, &searches); err != nil {
		slog.Warn("corrupt recent-search data, starting empty", slog.Any("error", err))
		return nil, nil
	}
	return searches, nil
}

// Save replaces the persisted list.
func (s *RecentSearchStore) Save(ctx context.Context, searches []models.RecentSearch) error {
	data, err := json.Marshal(searches)
	if err != nil {
		return fmt.Errorf("marshal recent searches: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set recent searches: %w", err)
	}
	return nil
}
