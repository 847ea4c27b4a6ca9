package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes text and removes combining diacritical marks, so
// "Áo Sơ Mi" folds to "Ao So Mi". đ/Đ have no decomposition and pass
// through unchanged, matching how the source feeds are searched.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold produces the canonical search form of text: diacritics stripped,
// lowercased, trimmed. Folding is idempotent.
func Fold(text string) string {
	folded, _, err := transform.String(stripMarks, text)
	if err != nil {
		// Transform only fails on invalid UTF-8; fall back to the raw text
		// so search still sees something.
		folded = text
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

var (
	collatorMu sync.Mutex
	collator   = collate.New(language.Vietnamese)
)

// CompareNames orders two display names with Vietnamese collation, so
// diacritic variants sort next to their base letters.
func CompareNames(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}
