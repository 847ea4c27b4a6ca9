package search

import (
	"context"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/lamvuong/go-shop-catalog/models"
)

// RecentStore persists the recent-search list to a key/value backend.
// Implementations must treat absent data as an empty list.
type RecentStore interface {
	Load(ctx context.Context) ([]models.RecentSearch, error)
	Save(ctx context.Context, searches []models.RecentSearch) error
}

// History tracks the most recent search queries, newest first, deduplicated
// by exact query string with the latest occurrence winning. Storage failures
// are logged and otherwise ignored: a broken backend degrades to an empty,
// non-persistent history rather than an error.
type History struct {
	mu             sync.Mutex
	store          RecentStore
	max            int
	minQueryLength int
	entries        []models.RecentSearch
	now            func() time.Time
}

// NewHistory loads the persisted list from the store. A load failure starts
// the history empty.
func NewHistory(ctx context.Context, store RecentStore, max, minQueryLength int) *History {
	h := &History{
		store:          store,
		max:            max,
		minQueryLength: minQueryLength,
		now:            time.Now,
	}

	if store != nil {
		entries, err := store.Load(ctx)
		if err != nil {
			slog.Error("load recent searches", slog.Any("error", err))
		} else {
			if len(entries) > max {
				entries = entries[:max]
			}
			h.entries = entries
		}
	}
	return h
}

// Record remembers a query. Queries below the minimum length are ignored.
// The updated list is persisted as a side effect.
func (h *History) Record(ctx context.Context, queryText string) {
	if utf8.RuneCountInString(queryText) < h.minQueryLength {
		return
	}

	h.mu.Lock()
	entries := make([]models.RecentSearch, 0, len(h.entries)+1)
	entries = append(entries, models.RecentSearch{Query: queryText, SearchedAt: h.now()})
	for _, entry := range h.entries {
		if entry.Query == queryText {
			continue
		}
		entries = append(entries, entry)
	}
	if len(entries) > h.max {
		entries = entries[:h.max]
	}
	h.entries = entries
	snapshot := make([]models.RecentSearch, len(entries))
	copy(snapshot, entries)
	h.mu.Unlock()

	if h.store == nil {
		return
	}
	if err := h.store.Save(ctx, snapshot); err != nil {
		slog.Error("persist recent searches", slog.Any("error", err))
	}
}

// Recent returns the remembered queries, newest first.
func (h *History) Recent() []models.RecentSearch {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]models.RecentSearch, len(h.entries))
	copy(out, h.entries)
	return out
}
