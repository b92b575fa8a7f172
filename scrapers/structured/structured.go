// Package structured reads product pages through the metadata most shops
// publish for search engines: schema.org JSON-LD and OpenGraph tags.
package structured

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/scrapers/base"
)

// MaxImages caps the images taken from one page.
const MaxImages = 8

// ErrNoProduct means the page carries no recognisable product data.
var ErrNoProduct = errors.New("no product data found on page")

type StructuredScraper struct {
	*base.BaseScraper
}

func NewStructuredScraper() *StructuredScraper {
	return &StructuredScraper{
		BaseScraper: base.NewBaseScraper(),
	}
}

func (s *StructuredScraper) CanScrape(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

func (s *StructuredScraper) ScrapeProduct(ctx context.Context, url string) (*models.ProductDraft, error) {
	doc, err := s.FetchDocument(ctx, url, hasProductData)
	if err != nil {
		return nil, err
	}
	return Parse(doc, url)
}

func hasProductData(doc *goquery.Document) bool {
	return findJSONLDProduct(doc) != nil || metaContent(doc, "og:title") != ""
}

// Parse builds a draft from an already fetched page. JSON-LD wins over
// OpenGraph, which wins over plain markup.
func Parse(doc *goquery.Document, pageURL string) (*models.ProductDraft, error) {
	draft := &models.ProductDraft{SourceURL: pageURL, Images: []string{}}
	var images []string

	if node := findJSONLDProduct(doc); node != nil {
		draft.ProductName = str(node["name"])
		draft.Description = str(node["description"])
		draft.Category = str(node["category"])
		images = append(images, imageList(node["image"])...)

		price, currency := offerPrice(node["offers"])
		draft.Price = price
		draft.Currency = currency
	}

	// 1. Title
	if draft.ProductName == "" {
		draft.ProductName = metaContent(doc, "og:title")
	}
	if draft.ProductName == "" {
		draft.ProductName = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if draft.ProductName == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoProduct, pageURL)
	}

	// 2. Price
	if draft.Price == 0 {
		for _, prop := range []string{"product:price:amount", "og:price:amount"} {
			if v, ok := base.ParsePrice(metaContent(doc, prop)); ok {
				draft.Price = v
				break
			}
		}
	}
	if draft.Currency == "" {
		draft.Currency = firstNonEmpty(metaContent(doc, "product:price:currency"), metaContent(doc, "og:price:currency"))
	}
	if sale, ok := base.ParsePrice(metaContent(doc, "product:sale_price:amount")); ok && sale > 0 && sale < draft.Price {
		draft.DiscountedPrice = &sale
	}

	// 3. Description
	if draft.Description == "" {
		draft.Description = firstNonEmpty(metaContent(doc, "og:description"), metaContent(doc, "description"))
	}

	// 4. Images
	doc.Find("meta[property='og:image']").Each(func(i int, sel *goquery.Selection) {
		images = append(images, sel.AttrOr("content", ""))
	})

	seen := make(map[string]struct{})
	for _, img := range images {
		abs := base.ResolveImage(pageURL, img)
		if abs == "" {
			continue
		}
		if _, dup := seen[abs]; dup {
			continue
		}
		seen[abs] = struct{}{}
		draft.Images = append(draft.Images, abs)
		if len(draft.Images) == MaxImages {
			break
		}
	}

	return draft, nil
}

// findJSONLDProduct returns the first schema.org Product node on the page.
func findJSONLDProduct(doc *goquery.Document) map[string]interface{} {
	var found map[string]interface{}
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		var data interface{}
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			return true
		}
		found = productNode(data)
		return found == nil
	})
	return found
}

func productNode(data interface{}) map[string]interface{} {
	switch v := data.(type) {
	case []interface{}:
		for _, item := range v {
			if n := productNode(item); n != nil {
				return n
			}
		}
	case map[string]interface{}:
		if isProductType(v["@type"]) {
			return v
		}
		if graph, ok := v["@graph"]; ok {
			return productNode(graph)
		}
	}
	return nil
}

func isProductType(t interface{}) bool {
	switch v := t.(type) {
	case string:
		return v == "Product" || v == "ProductGroup"
	case []interface{}:
		for _, item := range v {
			if isProductType(item) {
				return true
			}
		}
	}
	return false
}

func offerPrice(offers interface{}) (float64, string) {
	switch v := offers.(type) {
	case []interface{}:
		for _, item := range v {
			if price, currency := offerPrice(item); price > 0 {
				return price, currency
			}
		}
	case map[string]interface{}:
		currency := str(v["priceCurrency"])
		for _, key := range []string{"price", "lowPrice"} {
			if price, ok := number(v[key]); ok && price > 0 {
				return price, currency
			}
		}
		if nested, ok := v["offers"]; ok {
			return offerPrice(nested)
		}
	}
	return 0, ""
}

func imageList(img interface{}) []string {
	switch v := img.(type) {
	case string:
		return []string{v}
	case []interface{}:
		var out []string
		for _, item := range v {
			out = append(out, imageList(item)...)
		}
		return out
	case map[string]interface{}:
		if u := str(v["url"]); u != "" {
			return []string{u}
		}
		return []string{str(v["contentUrl"])}
	}
	return nil
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		return base.ParsePrice(n)
	}
	return 0, false
}

func str(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func metaContent(doc *goquery.Document, name string) string {
	sel := doc.Find(fmt.Sprintf(`meta[property=%q]`, name))
	if sel.Length() == 0 {
		sel = doc.Find(fmt.Sprintf(`meta[name=%q]`, name))
	}
	return strings.TrimSpace(sel.First().AttrOr("content", ""))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
