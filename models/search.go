package models

import "time"

// SearchIndexEntry is a precomputed normalised-text projection of one
// canonical record. Entries are built once per collection load and replaced
// wholesale on the next index build.
type SearchIndexEntry struct {
	ID                 string
	Kind               Kind
	Name               string
	Category           string
	NormalizedName     string
	NormalizedCategory string
	// Original points back at the source record for display.
	Original Record
	// SearchText is the folded lowercase concatenation of all searchable
	// fields.
	SearchText string
}

// ScoredEntry pairs an index entry with its relevance score for one query.
type ScoredEntry struct {
	Entry *SearchIndexEntry
	Score int
}

// RecentSearch is one remembered query, persisted to the key/value store.
type RecentSearch struct {
	Query      string    `json:"query"`
	SearchedAt time.Time `json:"searched_at"`
}
