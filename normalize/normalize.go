// Package normalize converts raw delimited-text fields into canonical typed
// values. Every function is total: malformed input degrades to a documented
// default, never an error.
package normalize

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/lamvuong/go-shop-catalog/models"
)

// ParsePrice strips every non-digit rune and parses the remainder as a
// non-negative amount. "150.000đ" parses as 150000. Empty or digit-free
// input yields 0.
func ParsePrice(raw string) float64 {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	value, err := strconv.ParseFloat(digits.String(), 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// ParseCount parses abbreviated counts used for sold totals, rating counts
// and follower numbers. "1.2k" expands to 1200, "3m" to 3000000; anything
// else is a digit-strip integer parse. Failures yield 0.
func ParseCount(raw string) int {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if lowered == "" {
		return 0
	}
	if idx := strings.IndexByte(lowered, 'k'); idx >= 0 {
		return scaleCount(lowered[:idx], 1_000)
	}
	if idx := strings.IndexByte(lowered, 'm'); idx >= 0 {
		return scaleCount(lowered[:idx], 1_000_000)
	}
	var digits strings.Builder
	for _, r := range lowered {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	value, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return value
}

// scaleCount parses the leading numeric portion of prefix and multiplies it
// by factor, rounding to the nearest integer.
func scaleCount(prefix string, factor int) int {
	var lead strings.Builder
	for _, r := range strings.TrimSpace(prefix) {
		if (r >= '0' && r <= '9') || r == '.' {
			lead.WriteRune(r)
			continue
		}
		break
	}
	if lead.Len() == 0 {
		return 0
	}
	value, err := strconv.ParseFloat(lead.String(), 64)
	if err != nil || value < 0 {
		return 0
	}
	return int(math.Round(value * float64(factor)))
}

// ParseRating parses a shop rating as a float clamped to [0,5]. Absent or
// unparsable input defaults to 5.
func ParseRating(raw string) float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 5
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 5
	}
	return math.Min(5, math.Max(0, value))
}

// ProductRating returns a synthetic rating in [3.5, 5.0] with one decimal.
// The product feeds carry no rating column, so every normalization call
// draws a fresh value.
//
// TODO: confirm with the feed owner whether a real rating column is planned
// before replacing this synthetic value.
func ProductRating() float64 {
	return math.Round((3.5+rand.Float64()*1.5)*10) / 10
}

// CalculateDiscount derives the integer discount percent from the original
// and sale prices. Zero when the original price is missing or non-positive,
// or the sale price is missing. A sale price above the original yields a
// negative discount, preserved as-is.
func CalculateDiscount(original, sale float64) int {
	if original <= 0 || sale == 0 {
		return 0
	}
	return int(math.Round(100 * (original - sale) / original))
}

// Key lowercases and trims a category or tier key.
func Key(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// TierKey maps a raw tier value onto one of the three known buckets.
// Unrecognised or missing values land in the mixed bucket.
func TierKey(raw string) models.Tier {
	tier := models.Tier(Key(raw))
	if models.KnownTier(tier) {
		return tier
	}
	return models.TierMixed
}

// Flag parses loosely-typed boolean text fields.
func Flag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}
