// Package search provides the scored multi-field search over canonical
// records, plus debounced triggering and recent-query history.
package search

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/lamvuong/go-shop-catalog/config"
	"github.com/lamvuong/go-shop-catalog/models"
	"github.com/lamvuong/go-shop-catalog/normalize"
)

// Score bonuses, additive per entry.
const (
	scoreExactName    = 100
	scoreNamePrefix   = 50
	scoreNameContains = 30
	scoreTextContains = 15
	scoreTokenPrefix  = 10
)

// Index holds the precomputed normalised projections of one collection
// load. Rebuild replaces the entries wholesale; Search never mutates them.
type Index struct {
	mu             sync.RWMutex
	entries        []*models.SearchIndexEntry
	minQueryLength int
	maxResults     int
}

// NewIndex builds an empty index with the configured query limits.
func NewIndex(cfg *config.Config) *Index {
	return &Index{
		minQueryLength: cfg.MinQueryLength,
		maxResults:     cfg.MaxSearchResults,
	}
}

// Rebuild replaces the index contents with projections of the given records,
// preserving their order for stable tie-breaking.
func (ix *Index) Rebuild(records []models.Record) {
	entries := make([]*models.SearchIndexEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, buildEntry(record))
	}

	ix.mu.Lock()
	ix.entries = entries
	ix.mu.Unlock()
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// MinQueryLength returns the shortest query the index will score.
func (ix *Index) MinQueryLength() int {
	return ix.minQueryLength
}

// Search scores every entry against the query and returns the survivors in
// descending score order, capped at the configured maximum. Queries shorter
// than the minimum length return nil. Scoring is deterministic; equal scores
// keep index build order.
func (ix *Index) Search(queryText string) []models.ScoredEntry {
	trimmed := strings.TrimSpace(queryText)
	if utf8.RuneCountInString(trimmed) < ix.minQueryLength {
		return nil
	}
	folded := normalize.Fold(trimmed)
	if folded == "" {
		return nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	scored := make([]models.ScoredEntry, 0, len(ix.entries))
	for _, entry := range ix.entries {
		if score := scoreEntry(entry, folded); score > 0 {
			scored = append(scored, models.ScoredEntry{Entry: entry, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > ix.maxResults {
		scored = scored[:ix.maxResults]
	}
	return scored
}

func scoreEntry(entry *models.SearchIndexEntry, folded string) int {
	score := 0
	if entry.NormalizedName == folded {
		score += scoreExactName
	}
	if strings.HasPrefix(entry.NormalizedName, folded) {
		score += scoreNamePrefix
	}
	if strings.Contains(entry.NormalizedName, folded) {
		score += scoreNameContains
	}
	if strings.Contains(entry.SearchText, folded) {
		score += scoreTextContains
	}
	for _, token := range strings.Fields(entry.SearchText) {
		if strings.HasPrefix(token, folded) {
			score += scoreTokenPrefix
		}
	}
	return score
}

func buildEntry(record models.Record) *models.SearchIndexEntry {
	name := record.Label()
	category := record.CategoryKey()
	return &models.SearchIndexEntry{
		ID:                 record.RecordID(),
		Kind:               record.RecordKind(),
		Name:               name,
		Category:           category,
		NormalizedName:     normalize.Fold(name),
		NormalizedCategory: normalize.Fold(category),
		Original:           record,
		SearchText:         normalize.Fold(strings.Join(record.SearchFields(), " ")),
	}
}
