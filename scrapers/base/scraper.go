package base

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// BaseScraper handles common scraping logic
type BaseScraper struct {
	Client *http.Client
	// Headless enables the ChromeDP fallback for script-rendered pages
	Headless bool
}

// NewBaseScraper creates a new BaseScraper instance
func NewBaseScraper() *BaseScraper {
	return &BaseScraper{
		Client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				ForceAttemptHTTP2:     false,
				TLSNextProto:          make(map[string]func(string, *tls.Conn) http.RoundTripper),
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		Headless: true,
	}
}

// FetchDocument fetches the URL over HTTP and falls back to a headless browser
// when the page fails validator.
func (b *BaseScraper) FetchDocument(ctx context.Context, url string, validator func(*goquery.Document) bool) (*goquery.Document, error) {
	// Strategy 1: HTTP Client (Fastest)
	doc, err := b.FetchDocumentHTTP(ctx, url)
	if err == nil {
		if validator(doc) && IsValidDocument(doc) {
			fmt.Printf("[BaseScraper] HTTP Success: %s\n", url)
			return doc, nil
		}
		fmt.Printf("[BaseScraper] HTTP yielded invalid content (validator failed), trying fallbacks...\n")
	} else {
		fmt.Printf("[BaseScraper] HTTP Failed: %v\n", err)
	}

	if !b.Headless {
		return nil, fmt.Errorf("no usable product page at %s", url)
	}

	// Strategy 2: ChromeDP (Headless)
	fmt.Printf("[BaseScraper] Trying ChromeDP: %s\n", url)
	doc, err = b.FetchDocumentChromeDP(ctx, url)
	if err == nil && validator(doc) {
		fmt.Printf("[BaseScraper] ChromeDP Success\n")
		return doc, nil
	}
	if err != nil {
		fmt.Printf("[BaseScraper] ChromeDP Failed: %v\n", err)
	}

	return nil, fmt.Errorf("all strategies failed for %s", url)
}

// IsValidDocument rejects bot-check pages.
func IsValidDocument(doc *goquery.Document) bool {
	lowerTitle := strings.ToLower(strings.TrimSpace(doc.Find("title").Text()))
	if strings.Contains(lowerTitle, "robot check") ||
		strings.Contains(lowerTitle, "captcha") ||
		strings.Contains(lowerTitle, "access denied") ||
		strings.Contains(lowerTitle, "just a moment") {
		return false
	}
	return true
}

// NewRequest builds a GET request with browser-like headers.
func NewRequest(ctx context.Context, url, accept string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	// Common headers to mimic a real browser
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	return req, nil
}

// FetchDocumentHTTP fetches the URL and returns a GoQuery document via standard HTTP
func (b *BaseScraper) FetchDocumentHTTP(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := NewRequest(ctx, url, "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	if err != nil {
		return nil, err
	}

	res, err := b.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: %d %s", res.StatusCode, res.Status)
	}

	return goquery.NewDocumentFromReader(res.Body)
}
