// Package models defines data structures for the catalog core.
package models

// Kind distinguishes the two record families loaded from delimited sources.
type Kind string

const (
	KindProduct Kind = "product"
	KindShop    Kind = "shop"
)

// Tier segments records by quality/price bucket.
type Tier string

const (
	TierHighEnd Tier = "n1"
	TierBudget  Tier = "n2"
	TierMixed   Tier = "n3"
)

// KnownTier reports whether t is one of the three recognised buckets.
func KnownTier(t Tier) bool {
	return t == TierHighEnd || t == TierBudget || t == TierMixed
}

// Default values substituted for missing or unparsable fields.
const (
	DefaultProductName = "Unknown Product"
	DefaultShopName    = "Unknown Shop"
	DefaultShopType    = "Cửa hàng chính thức"
	DefaultImageURL    = "https://placehold.co/300x300?text=No+Image"
	DefaultLink        = "#"
)

// RawRecord is a loose string-keyed record produced by the delimited-file
// loader. Keys are normalised headers (snake_case); values are trimmed field
// text. No shape guarantees: fields may be absent or malformed.
type RawRecord map[string]string

// Field returns the first non-empty value among the given keys.
func (r RawRecord) Field(keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := r[key]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// Record is the read surface shared by canonical products and shops.
// Optional accessors return ok=false when the record family does not carry
// the field, so filters and sorts can skip the clause instead of comparing
// against a default.
type Record interface {
	RecordID() string
	RecordKind() Kind
	Label() string
	CategoryKey() string
	TierKey() Tier
	PriceValue() (float64, bool)
	DiscountValue() (int, bool)
	RatingValue() (float64, bool)
	SoldValue() (int, bool)
	// SearchFields lists the text fields folded into the search index,
	// primary name first.
	SearchFields() []string
}

// CanonicalProduct is a fully-normalised product row, safe for filtering,
// sorting and rendering. Every field is default-filled; none can be missing.
type CanonicalProduct struct {
	ID            string  `json:"id" csv:"id"`
	Name          string  `json:"name" csv:"name"`
	Category      string  `json:"category" csv:"category"`
	Tier          Tier    `json:"tier" csv:"tier"`
	OriginalPrice float64 `json:"original_price" csv:"original_price"`
	SalePrice     float64 `json:"sale_price" csv:"sale_price"`
	Discount      int     `json:"discount" csv:"discount"`
	SoldCount     int     `json:"sold_count" csv:"sold_count"`
	Rating        float64 `json:"rating" csv:"rating"`
	Image         string  `json:"image" csv:"image"`
	Link          string  `json:"link" csv:"link"`
	ShopName      string  `json:"shop_name" csv:"shop_name"`
	Description   string  `json:"description" csv:"description"`
}

func (p *CanonicalProduct) RecordID() string { return p.ID }
func (p *CanonicalProduct) RecordKind() Kind { return KindProduct }
func (p *CanonicalProduct) Label() string { return p.Name }
func (p *CanonicalProduct) CategoryKey() string { return p.Category }
func (p *CanonicalProduct) TierKey() Tier { return p.Tier }

func (p *CanonicalProduct) PriceValue() (float64, bool) { return p.SalePrice, true }
func (p *CanonicalProduct) DiscountValue() (int, bool) { return p.Discount, true }
func (p *CanonicalProduct) RatingValue() (float64, bool) { return p.Rating, true }
func (p *CanonicalProduct) SoldValue() (int, bool) { return p.SoldCount, true }

func (p *CanonicalProduct) SearchFields() []string {
	return []string{p.Name, p.Category, p.ShopName, p.Description}
}

// CanonicalShop is a fully-normalised shop row. Shops carry no price,
// discount or sold count, so those accessors report absent.
type CanonicalShop struct {
	ID          string  `json:"id" csv:"id"`
	Name        string  `json:"name" csv:"name"`
	Category    string  `json:"category" csv:"category"`
	Tier        Tier    `json:"tier" csv:"tier"`
	Type        string  `json:"type" csv:"type"`
	Rating      float64 `json:"rating" csv:"rating"`
	RatingCount int     `json:"rating_count" csv:"rating_count"`
	Followers   int     `json:"followers" csv:"followers"`
	Logo        string  `json:"logo" csv:"logo"`
	Link        string  `json:"link" csv:"link"`
	Verified    bool    `json:"verified" csv:"verified"`
	Description string  `json:"description" csv:"description"`
}

func (s *CanonicalShop) RecordID() string { return s.ID }
func (s *CanonicalShop) RecordKind() Kind { return KindShop }
func (s *CanonicalShop) Label() string { return s.Name }
func (s *CanonicalShop) CategoryKey() string { return s.Category }
func (s *CanonicalShop) TierKey() Tier { return s.Tier }

func (s *CanonicalShop) PriceValue() (float64, bool) { return 0, false }
func (s *CanonicalShop) DiscountValue() (int, bool) { return 0, false }
func (s *CanonicalShop) RatingValue() (float64, bool) { return s.Rating, true }
func (s *CanonicalShop) SoldValue() (int, bool) { return 0, false }

func (s *CanonicalShop) SearchFields() []string {
	return []string{s.Name, s.Category, s.Type, s.Description}
}
