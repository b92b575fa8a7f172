package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/scrapers"
)

// import_preview prints the product draft the importer would produce for
// each supplier URL given on the command line.
func main() {
	timeout := flag.Duration("timeout", 2*time.Minute, "per-URL timeout")
	flag.Parse()

	urls := flag.Args()
	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "usage: import_preview [-timeout 2m] <product_url>...")
		os.Exit(2)
	}

	for _, u := range urls {
		fmt.Printf("Testing URL: %s\n", u)
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)

		scraper, resolved, err := scrapers.GetScraper(ctx, u)
		if err != nil {
			log.Printf("Failed to get scraper for %s: %v\n", u, err)
			cancel()
			continue
		}
		fmt.Printf("Resolved URL: %s\n", resolved)
		fmt.Printf("Scraper: %T\n", scraper)

		draft, err := scraper.ScrapeProduct(ctx, resolved)
		cancel()
		if err != nil {
			log.Printf("Failed to scrape product: %v\n", err)
			continue
		}

		b, _ := json.MarshalIndent(draft, "", "  ")
		fmt.Printf("Draft: %s\n", string(b))
		fmt.Println("--------------------------------------------------")
	}
}
