package models

// Collection is a processed, partitioned view over canonical records.
// All preserves input order. HighEnd, Budget and Mixed are disjoint
// subsequences of All keyed by tier; every element of All sits in exactly
// one of them (unknown tiers land in Mixed). ByCategory indexes only known
// category keys; records with an unrecognised category stay in All but are
// absent from the index. BestSellers is populated for products only.
//
// A Collection is built once per raw load and treated as immutable by every
// downstream consumer; a reload replaces it wholesale.
type Collection[T Record] struct {
	All []T

	HighEnd []T
	Budget  []T
	Mixed   []T

	ByCategory map[string][]T
	ByTier     map[Tier][]T

	BestSellers []T
}

// Len returns the number of records in the collection.
func (c *Collection[T]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.All)
}
