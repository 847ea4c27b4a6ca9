// Package catalog wires the loader, processor, query engine and search
// index into a per-session pipeline. Each page or CLI invocation owns its
// own Session; there is no process-wide shared state.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lamvuong/go-shop-catalog/config"
	"github.com/lamvuong/go-shop-catalog/loader"
	"github.com/lamvuong/go-shop-catalog/models"
	"github.com/lamvuong/go-shop-catalog/processor"
	"github.com/lamvuong/go-shop-catalog/query"
	"github.com/lamvuong/go-shop-catalog/search"
	"github.com/lamvuong/go-shop-catalog/store"
)

// Session holds one user session's collections, filter state and search
// index. Loads replace collections wholesale; filter mutations re-filter
// synchronously; a dedicated search supersedes filter results for display
// while the filter-embedded search query composes with the other clauses.
type Session struct {
	cfg       *config.Config
	loader    *loader.Loader
	processor *processor.Processor

	productCache *store.CollectionCache[*models.CanonicalProduct]
	shopCache    *store.CollectionCache[*models.CanonicalShop]

	filters   *query.FilterState
	index     *search.Index
	history   *search.History
	debouncer *search.Debouncer

	mu               sync.Mutex
	products         *models.Collection[*models.CanonicalProduct]
	shops            *models.Collection[*models.CanonicalShop]
	filteredProducts []*models.CanonicalProduct
	filteredShops    []*models.CanonicalShop
	sortKey          models.SortKey
	activeQuery      string
	searchResults    []models.ScoredEntry
}

// NewSession builds a session. recentStore may be nil to disable recent
// search persistence entirely.
func NewSession(ctx context.Context, cfg *config.Config, recentStore search.RecentStore) (*Session, error) {
	productCache, err := store.NewCollectionCache[*models.CanonicalProduct](cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	shopCache, err := store.NewCollectionCache[*models.CanonicalShop](cfg.CacheSize)
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:          cfg,
		loader:       loader.NewLoader(cfg),
		processor:    processor.New(cfg),
		productCache: productCache,
		shopCache:    shopCache,
		filters:      query.NewFilterState(),
		index:        search.NewIndex(cfg),
		history:      search.NewHistory(ctx, recentStore, cfg.MaxRecentSearches, cfg.MinQueryLength),
		debouncer:    search.NewDebouncer(cfg.DebounceWindow),
	}
	s.filters.Subscribe(s.onFiltersChanged)
	return s, nil
}

// Loader exposes the loader, mainly for its metrics registry.
func (s *Session) Loader() *loader.Loader {
	return s.loader
}

// FilterState returns the session's mutable filter selection.
func (s *Session) FilterState() *query.FilterState {
	return s.filters
}

// History returns the recent-search history.
func (s *Session) History() *search.History {
	return s.history
}

// LoadProducts loads, processes and caches the product source, then
// refreshes the search index. A cached collection for the same source is
// reused without refetching.
func (s *Session) LoadProducts(ctx context.Context, source string) error {
	if collection, ok := s.productCache.Get(source); ok {
		s.installProducts(collection)
		return nil
	}

	raws, err := s.loader.Load(ctx, source)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	collection := s.processor.Products(raws)
	s.productCache.Put(source, collection)
	s.installProducts(collection)

	slog.Info("products loaded",
		slog.String("source", source),
		slog.Int("count", collection.Len()),
		slog.Int("best_sellers", len(collection.BestSellers)),
	)
	return nil
}

// LoadShops loads, processes and caches the shop source, then refreshes the
// search index.
func (s *Session) LoadShops(ctx context.Context, source string) error {
	if collection, ok := s.shopCache.Get(source); ok {
		s.installShops(collection)
		return nil
	}

	raws, err := s.loader.Load(ctx, source)
	if err != nil {
		return fmt.Errorf("load shops: %w", err)
	}
	collection := s.processor.Shops(raws)
	s.shopCache.Put(source, collection)
	s.installShops(collection)

	slog.Info("shops loaded",
		slog.String("source", source),
		slog.Int("count", collection.Len()),
	)
	return nil
}

// Products returns the current product collection, nil before the first load.
func (s *Session) Products() *models.Collection[*models.CanonicalProduct] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products
}

// Shops returns the current shop collection, nil before the first load.
func (s *Session) Shops() *models.Collection[*models.CanonicalShop] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shops
}

// FilteredProducts returns the product rows passing the current filters, in
// collection order.
func (s *Session) FilteredProducts() []*models.CanonicalProduct {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filteredProducts
}

// FilteredShops returns the shop rows passing the current filters.
func (s *Session) FilteredShops() []*models.CanonicalShop {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filteredShops
}

// SortBy sets the comparator applied to Results.
func (s *Session) SortBy(key models.SortKey) {
	s.mu.Lock()
	s.sortKey = key
	s.mu.Unlock()
}

// Search runs the dedicated scored search immediately, records the query in
// the history, and makes its results supersede filtered output until
// ClearSearch. Queries below the minimum length clear the active search.
func (s *Session) Search(ctx context.Context, queryText string) []models.ScoredEntry {
	results := s.index.Search(queryText)
	if results == nil {
		s.ClearSearch()
		return nil
	}
	s.history.Record(ctx, queryText)

	s.mu.Lock()
	s.activeQuery = queryText
	s.searchResults = results
	s.mu.Unlock()
	return results
}

// SearchDebounced schedules a dedicated search after the configured window;
// rapid successive calls collapse to the last query.
func (s *Session) SearchDebounced(ctx context.Context, queryText string, deliver func([]models.ScoredEntry)) {
	s.debouncer.Trigger(func() {
		results := s.Search(ctx, queryText)
		if deliver != nil {
			deliver(results)
		}
	})
}

// ClearSearch returns the presentation to filter-based results.
func (s *Session) ClearSearch() {
	s.mu.Lock()
	s.activeQuery = ""
	s.searchResults = nil
	s.mu.Unlock()
}

// Results returns the rows to present. An active dedicated search bypasses
// the filter selection entirely; otherwise filtered products and shops are
// returned, ordered by the session sort key.
func (s *Session) Results() []models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeQuery != "" {
		records := make([]models.Record, 0, len(s.searchResults))
		for _, scored := range s.searchResults {
			records = append(records, scored.Entry.Original)
		}
		return records
	}

	products := query.Sort(s.filteredProducts, s.sortKey)
	shops := query.Sort(s.filteredShops, s.sortKey)
	records := make([]models.Record, 0, len(products)+len(shops))
	for _, p := range products {
		records = append(records, p)
	}
	for _, sh := range shops {
		records = append(records, sh)
	}
	return records
}

// Close releases pending timers.
func (s *Session) Close() {
	s.debouncer.Stop()
}

func (s *Session) installProducts(collection *models.Collection[*models.CanonicalProduct]) {
	s.mu.Lock()
	s.products = collection
	s.filteredProducts = nil
	s.mu.Unlock()
	s.refilter()
	s.rebuildIndex()
}

func (s *Session) installShops(collection *models.Collection[*models.CanonicalShop]) {
	s.mu.Lock()
	s.shops = collection
	s.filteredShops = nil
	s.mu.Unlock()
	s.refilter()
	s.rebuildIndex()
}

func (s *Session) onFiltersChanged(models.Filters) {
	s.refilter()
}

// refilter always runs from the full collections, never from a previous
// filtered slice.
func (s *Session) refilter() {
	filters := s.filters.Filters()

	s.mu.Lock()
	products, shops := s.products, s.shops
	s.mu.Unlock()

	filteredProducts := query.Apply(products, filters)
	filteredShops := query.Apply(shops, filters)

	s.mu.Lock()
	s.filteredProducts = filteredProducts
	s.filteredShops = filteredShops
	s.mu.Unlock()
}

func (s *Session) rebuildIndex() {
	s.mu.Lock()
	products, shops := s.products, s.shops
	s.mu.Unlock()

	var records []models.Record
	if products != nil {
		for _, p := range products.All {
			records = append(records, p)
		}
	}
	if shops != nil {
		for _, sh := range shops.All {
			records = append(records, sh)
		}
	}
	s.index.Rebuild(records)
}
