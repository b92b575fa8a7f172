package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/scrapers/base"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/scrapers/structured"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/utils"
)

var productPath = regexp.MustCompile(`^(?:/collections/[^/]+)?/products/([^/?#.]+)`)

// ShopifyScraper reads Shopify storefronts through the public product JSON
// endpoint (/products/<handle>.js), which needs no page rendering.
type ShopifyScraper struct {
	*base.BaseScraper
}

func NewShopifyScraper() *ShopifyScraper {
	return &ShopifyScraper{
		BaseScraper: base.NewBaseScraper(),
	}
}

func (s *ShopifyScraper) CanScrape(rawURL string) bool {
	_, ok := productEndpoint(rawURL)
	return ok
}

// productJSON is the subset of the storefront product payload we use. Prices
// are in minor units.
type productJSON struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Type           string   `json:"type"`
	Price          int64    `json:"price"`
	CompareAtPrice *int64   `json:"compare_at_price"`
	Images         []string `json:"images"`
}

func (s *ShopifyScraper) ScrapeProduct(ctx context.Context, rawURL string) (*models.ProductDraft, error) {
	endpoint, ok := productEndpoint(rawURL)
	if !ok {
		return nil, fmt.Errorf("not a Shopify product url: %s", rawURL)
	}

	product, err := s.fetchProduct(ctx, endpoint)
	if err != nil {
		// /products/ paths are common outside Shopify too
		fmt.Printf("[ShopifyScraper] JSON endpoint failed (%v), reading page metadata\n", err)
		doc, err := s.FetchDocument(ctx, rawURL, func(*goquery.Document) bool { return true })
		if err != nil {
			return nil, err
		}
		return structured.Parse(doc, rawURL)
	}

	draft := &models.ProductDraft{
		SourceURL:   rawURL,
		ProductName: strings.TrimSpace(product.Title),
		Description: utils.PlainText(product.Description),
		Category:    strings.TrimSpace(product.Type),
		Price:       float64(product.Price) / 100,
		Images:      []string{},
	}
	if product.CompareAtPrice != nil && *product.CompareAtPrice > product.Price {
		sale := draft.Price
		draft.Price = float64(*product.CompareAtPrice) / 100
		draft.DiscountedPrice = &sale
	}
	for _, img := range product.Images {
		if abs := base.ResolveImage(rawURL, img); abs != "" {
			draft.Images = append(draft.Images, abs)
		}
		if len(draft.Images) == structured.MaxImages {
			break
		}
	}
	if draft.ProductName == "" {
		return nil, fmt.Errorf("%w: %s", structured.ErrNoProduct, rawURL)
	}
	return draft, nil
}

func (s *ShopifyScraper) fetchProduct(ctx context.Context, endpoint string) (*productJSON, error) {
	req, err := base.NewRequest(ctx, endpoint, "application/json")
	if err != nil {
		return nil, err
	}

	res, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: %d %s", res.StatusCode, res.Status)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, 2<<20))
	if err != nil {
		return nil, err
	}
	var product productJSON
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("failed to decode product json: %w", err)
	}
	return &product, nil
}

// productEndpoint maps a product page URL to its JSON endpoint.
func productEndpoint(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}
	m := productPath.FindStringSubmatch(u.Path)
	if m == nil {
		return "", false
	}
	return fmt.Sprintf("%s://%s/products/%s.js", u.Scheme, u.Host, m[1]), true
}
