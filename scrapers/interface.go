package scrapers

import (
	"context"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
)

// Scraper turns a supplier product page into a draft for the seller form
type Scraper interface {
	// CanScrape checks if the scraper can handle the given URL
	CanScrape(url string) bool
	// ScrapeProduct scrapes the product details from the given URL
	ScrapeProduct(ctx context.Context, url string) (*models.ProductDraft, error)
}
