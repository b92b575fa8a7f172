package scrapers

import (
	"context"
	"fmt"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/scrapers/shopify"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/scrapers/structured"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/utils"
)

// DefaultScrapers is the registration order; the structured-data scraper
// accepts any http(s) URL and must stay last.
func DefaultScrapers() []Scraper {
	return []Scraper{
		shopify.NewShopifyScraper(),
		structured.NewStructuredScraper(),
	}
}

// GetScraper returns the appropriate scraper and the resolved URL
func GetScraper(ctx context.Context, url string) (Scraper, string, error) {
	// Resolve shortened URLs (e.g., bit.ly)
	resolvedURL, err := utils.ResolveShortenedURL(ctx, url)
	if err != nil {
		return nil, url, fmt.Errorf("error resolving url: %w", err)
	}

	s, err := Select(DefaultScrapers(), resolvedURL)
	return s, resolvedURL, err
}

// Select picks the first scraper that accepts url.
func Select(scrapers []Scraper, url string) (Scraper, error) {
	for _, s := range scrapers {
		if s.CanScrape(url) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("no scraper found for url: %s", url)
}
