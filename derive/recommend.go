package derive

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
)

const (
	TitleSimilar        = "Similar Items"
	TitleRecommended    = "Recommended For You"
	RecommendationLimit = 5
)

// CatalogSource is the part of the backend client the recommender reads.
type CatalogSource interface {
	ProductsByCategory(ctx context.Context, category string) ([]models.Product, error)
	Products(ctx context.Context) ([]models.Product, error)
}

// RecommendOptions configures a Recommend call
type RecommendOptions struct {
	Category  string
	ExcludeID string     // product being viewed, never recommended to itself
	Rand      *rand.Rand // nil uses the global source
}

// Recommend picks up to RecommendationLimit products from the target
// category, falling back to the whole catalog when the category has nothing
// to offer. With no category it returns an empty result without fetching.
func Recommend(ctx context.Context, src CatalogSource, opts RecommendOptions) (models.Recommendation, error) {
	rec := models.Recommendation{Products: []models.Product{}}
	if opts.Category == "" {
		return rec, nil
	}

	products, err := src.ProductsByCategory(ctx, opts.Category)
	if err != nil {
		return rec, fmt.Errorf("fetch category %q: %w", opts.Category, err)
	}
	products = without(products, opts.ExcludeID)
	rec.Title = TitleSimilar

	if len(products) == 0 {
		products, err = src.Products(ctx)
		if err != nil {
			return rec, fmt.Errorf("fetch catalog: %w", err)
		}
		products = without(products, opts.ExcludeID)
		rec.Title = TitleRecommended
	}

	shuffle(products, opts.Rand)
	if len(products) > RecommendationLimit {
		products = products[:RecommendationLimit]
	}
	rec.Products = products
	return rec, nil
}

// without returns a copy of products minus the one with id; the caller's
// slice is never reordered.
func without(products []models.Product, id string) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if id != "" && p.ID == id {
			continue
		}
		out = append(out, p)
	}
	return out
}

// shuffle is a uniform Fisher-Yates shuffle.
func shuffle(products []models.Product, r *rand.Rand) {
	swap := func(i, j int) { products[i], products[j] = products[j], products[i] }
	if r != nil {
		r.Shuffle(len(products), swap)
		return
	}
	rand.Shuffle(len(products), swap)
}
