package query

import (
	"log/slog"
	"sync"

	"github.com/lamvuong/go-shop-catalog/models"
)

// FilterState owns one session's filter selection. Every setter replaces the
// relevant field and synchronously notifies subscribers with a snapshot of
// the new selection. Subscriber panics are caught and logged; the remaining
// subscribers still run.
type FilterState struct {
	mu          sync.Mutex
	filters     models.Filters
	subscribers map[int]func(models.Filters)
	nextID      int
}

// NewFilterState starts at the identity filter.
func NewFilterState() *FilterState {
	return &FilterState{
		filters:     models.DefaultFilters(),
		subscribers: make(map[int]func(models.Filters)),
	}
}

// Filters returns the current selection.
func (s *FilterState) Filters() models.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Subscribe registers a change callback and returns its unsubscribe handle.
func (s *FilterState) Subscribe(fn func(models.Filters)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// SetCategory selects a category key; models.FilterAll clears the constraint.
func (s *FilterState) SetCategory(category string) {
	s.update(func(f *models.Filters) { f.Category = category })
}

// SetTier selects a tier key; models.FilterAll clears the constraint.
func (s *FilterState) SetTier(tier string) {
	s.update(func(f *models.Filters) { f.Tier = tier })
}

// SetPriceRange sets both price bounds at once.
func (s *FilterState) SetPriceRange(min, max float64) {
	s.update(func(f *models.Filters) {
		f.MinPrice = min
		f.MaxPrice = max
	})
}

// SetMinDiscount sets the minimum discount percent.
func (s *FilterState) SetMinDiscount(minDiscount int) {
	s.update(func(f *models.Filters) { f.MinDiscount = minDiscount })
}

// SetMinRating sets the minimum rating.
func (s *FilterState) SetMinRating(minRating float64) {
	s.update(func(f *models.Filters) { f.MinRating = minRating })
}

// SetSearchQuery sets the filter-embedded search text.
func (s *FilterState) SetSearchQuery(queryText string) {
	s.update(func(f *models.Filters) { f.SearchQuery = queryText })
}

// Reset restores the identity filter.
func (s *FilterState) Reset() {
	s.update(func(f *models.Filters) { *f = models.DefaultFilters() })
}

func (s *FilterState) update(mutate func(*models.Filters)) {
	s.mu.Lock()
	mutate(&s.filters)
	snapshot := s.filters
	callbacks := make([]func(models.Filters), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		callbacks = append(callbacks, fn)
	}
	s.mu.Unlock()

	for _, fn := range callbacks {
		notify(fn, snapshot)
	}
}

func notify(fn func(models.Filters), snapshot models.Filters) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("filter subscriber panicked", slog.Any("panic", r))
		}
	}()
	fn(snapshot)
}
