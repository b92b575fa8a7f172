package structured

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonLDPage = `<html><head><title>Jute Rug</title>
<script type="application/ld+json">{"@context":"https://schema.org","@graph":[
 {"@type":"BreadcrumbList","itemListElement":[]},
 {"@type":["Product"],"name":"Braided Jute Rug","description":"Hand braided natural jute.",
  "category":"Rugs","image":["/img/rug-1.jpg",{"url":"https://cdn.shop.test/rug-2.jpg"}],
  "offers":[{"@type":"Offer","price":"1,299.00","priceCurrency":"PKR"}]}
]}</script>
<meta property="og:image" content="https://cdn.shop.test/rug-2.jpg">
</head><body><h1>Braided Jute Rug</h1></body></html>`

const openGraphPage = `<html><head><title>Brass Candle Holder</title>
<meta property="og:title" content="Brass Candle Holder">
<meta property="og:description" content="Set of two.">
<meta property="og:image" content="//cdn.shop.test/candle.jpg">
<meta property="product:price:amount" content="45.00">
<meta property="product:price:currency" content="USD">
<meta property="product:sale_price:amount" content="39.50">
</head><body></body></html>`

func parse(t *testing.T, html, pageURL string) (*goquery.Document, string) {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc, pageURL
}

func TestParse_JSONLD(t *testing.T) {
	draft, err := Parse(parse(t, jsonLDPage, "https://shop.test/rugs/jute"))
	require.NoError(t, err)

	assert.Equal(t, "Braided Jute Rug", draft.ProductName)
	assert.Equal(t, "Hand braided natural jute.", draft.Description)
	assert.Equal(t, "Rugs", draft.Category)
	assert.Equal(t, 1299.0, draft.Price)
	assert.Equal(t, "PKR", draft.Currency)
	assert.Nil(t, draft.DiscountedPrice)
	assert.Equal(t, []string{"https://shop.test/img/rug-1.jpg", "https://cdn.shop.test/rug-2.jpg"}, draft.Images)
}

func TestParse_OpenGraph(t *testing.T) {
	draft, err := Parse(parse(t, openGraphPage, "https://shop.test/p/candle"))
	require.NoError(t, err)

	assert.Equal(t, "Brass Candle Holder", draft.ProductName)
	assert.Equal(t, "Set of two.", draft.Description)
	assert.Equal(t, 45.0, draft.Price)
	require.NotNil(t, draft.DiscountedPrice)
	assert.Equal(t, 39.5, *draft.DiscountedPrice)
	assert.Equal(t, "USD", draft.Currency)
	assert.Equal(t, []string{"https://cdn.shop.test/candle.jpg"}, draft.Images)
}

func TestParse_NoProduct(t *testing.T) {
	_, err := Parse(parse(t, "<html><body><p>hello</p></body></html>", "https://shop.test/"))
	assert.ErrorIs(t, err, ErrNoProduct)
}

func TestStructuredScraper_ScrapeProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(openGraphPage))
	}))
	defer srv.Close()

	s := NewStructuredScraper()
	s.Headless = false
	assert.True(t, s.CanScrape(srv.URL))
	assert.False(t, s.CanScrape("ftp://shop.test/x"))

	draft, err := s.ScrapeProduct(context.Background(), srv.URL+"/p/candle")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/p/candle", draft.SourceURL)
	assert.Equal(t, "Brass Candle Holder", draft.ProductName)
}

func TestStructuredScraper_BlockedPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Robot Check</title><meta property="og:title" content="x"></head></html>`))
	}))
	defer srv.Close()

	s := NewStructuredScraper()
	s.Headless = false
	_, err := s.ScrapeProduct(context.Background(), srv.URL)
	assert.Error(t, err)
}
