// Package processor turns raw loose records into partitioned canonical
// collections.
package processor

import (
	"sort"

	"github.com/google/uuid"
	"github.com/lamvuong/go-shop-catalog/config"
	"github.com/lamvuong/go-shop-catalog/models"
	"github.com/lamvuong/go-shop-catalog/normalize"
)

// Processor builds canonical collections from raw records. It never mutates
// its input and returns a fresh collection on every call; caching a result
// per source is the caller's job.
type Processor struct {
	knownCategories     map[string]struct{}
	bestSellerThreshold int
}

// New builds a Processor from configuration.
func New(cfg *config.Config) *Processor {
	known := make(map[string]struct{}, len(cfg.KnownCategories))
	for _, key := range cfg.KnownCategories {
		known[normalize.Key(key)] = struct{}{}
	}
	return &Processor{
		knownCategories:     known,
		bestSellerThreshold: cfg.BestSellerThreshold,
	}
}

// Products normalises raw product rows and partitions them by tier and
// category. BestSellers holds the rows whose sold count exceeds the
// configured threshold, ordered descending; ties keep input order.
func (p *Processor) Products(raws []models.RawRecord) *models.Collection[*models.CanonicalProduct] {
	items := make([]*models.CanonicalProduct, 0, len(raws))
	for _, raw := range raws {
		items = append(items, p.product(raw))
	}

	collection := partition(items, p.knownCategories)

	for _, item := range items {
		if item.SoldCount > p.bestSellerThreshold {
			collection.BestSellers = append(collection.BestSellers, item)
		}
	}
	sort.SliceStable(collection.BestSellers, func(i, j int) bool {
		return collection.BestSellers[i].SoldCount > collection.BestSellers[j].SoldCount
	})

	return collection
}

// Shops normalises raw shop rows and partitions them by tier and category.
func (p *Processor) Shops(raws []models.RawRecord) *models.Collection[*models.CanonicalShop] {
	items := make([]*models.CanonicalShop, 0, len(raws))
	for _, raw := range raws {
		items = append(items, p.shop(raw))
	}
	return partition(items, p.knownCategories)
}

func (p *Processor) product(raw models.RawRecord) *models.CanonicalProduct {
	originalPrice := 0.0
	if v, ok := raw.Field("original_price", "old_price"); ok {
		originalPrice = normalize.ParsePrice(v)
	}
	salePrice := 0.0
	if v, ok := raw.Field("sale_price", "price"); ok {
		salePrice = normalize.ParsePrice(v)
	}

	item := &models.CanonicalProduct{
		ID:            fieldOr(raw, uuid.NewString(), "id", "product_id"),
		Name:          fieldOr(raw, models.DefaultProductName, "product_name", "name"),
		Category:      normalize.Key(fieldOr(raw, "", "category")),
		Tier:          normalize.TierKey(fieldOr(raw, "", "tier")),
		OriginalPrice: originalPrice,
		SalePrice:     salePrice,
		Discount:      normalize.CalculateDiscount(originalPrice, salePrice),
		SoldCount:     normalize.ParseCount(fieldOr(raw, "", "sold_count", "sold")),
		Rating:        normalize.ProductRating(),
		Image:         fieldOr(raw, models.DefaultImageURL, "image", "image_url"),
		Link:          fieldOr(raw, models.DefaultLink, "link", "url"),
		ShopName:      fieldOr(raw, "", "shop_name", "shop"),
		Description:   fieldOr(raw, "", "description"),
	}
	return item
}

func (p *Processor) shop(raw models.RawRecord) *models.CanonicalShop {
	return &models.CanonicalShop{
		ID:          fieldOr(raw, uuid.NewString(), "id", "shop_id"),
		Name:        fieldOr(raw, models.DefaultShopName, "shop_name", "name"),
		Category:    normalize.Key(fieldOr(raw, "", "category")),
		Tier:        normalize.TierKey(fieldOr(raw, "", "tier")),
		Type:        fieldOr(raw, models.DefaultShopType, "type", "shop_type"),
		Rating:      normalize.ParseRating(fieldOr(raw, "", "rating")),
		RatingCount: normalize.ParseCount(fieldOr(raw, "", "rating_count", "reviews")),
		Followers:   normalize.ParseCount(fieldOr(raw, "", "followers")),
		Logo:        fieldOr(raw, models.DefaultImageURL, "logo", "image"),
		Link:        fieldOr(raw, models.DefaultLink, "link", "url"),
		Verified:    normalize.Flag(fieldOr(raw, "", "verified")),
		Description: fieldOr(raw, "", "description"),
	}
}

// partition appends every item to All and to exactly one tier bucket, and
// indexes known categories. Unknown category keys stay on the record but are
// left out of ByCategory.
func partition[T models.Record](items []T, known map[string]struct{}) *models.Collection[T] {
	collection := &models.Collection[T]{
		All:        items,
		ByCategory: make(map[string][]T),
		ByTier:     make(map[models.Tier][]T),
	}

	for _, item := range items {
		switch item.TierKey() {
		case models.TierHighEnd:
			collection.HighEnd = append(collection.HighEnd, item)
		case models.TierBudget:
			collection.Budget = append(collection.Budget, item)
		default:
			collection.Mixed = append(collection.Mixed, item)
		}

		if _, ok := known[item.CategoryKey()]; ok {
			collection.ByCategory[item.CategoryKey()] = append(collection.ByCategory[item.CategoryKey()], item)
		}
	}

	collection.ByTier[models.TierHighEnd] = collection.HighEnd
	collection.ByTier[models.TierBudget] = collection.Budget
	collection.ByTier[models.TierMixed] = collection.Mixed

	return collection
}

func fieldOr(raw models.RawRecord, fallback string, keys ...string) string {
	if v, ok := raw.Field(keys...); ok {
		return v
	}
	return fallback
}
