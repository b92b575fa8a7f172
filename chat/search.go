package chat

import (
	"sort"
	"strings"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
)

// SearchLimit is the most products a reply carries.
const SearchLimit = 5

// Search ranks products by how many keywords they contain. A name hit counts
// twice. Products with no hit are left out; ties keep catalog order.
func Search(products []models.Product, keywords []string, limit int) []models.Product {
	if len(products) == 0 || len(keywords) == 0 || limit <= 0 {
		return []models.Product{}
	}

	type scored struct {
		product models.Product
		score   int
	}
	var hits []scored
	for _, p := range products {
		name := strings.ToLower(p.ProductName)
		category := strings.ToLower(p.Category)
		description := strings.ToLower(descriptions.plain(p))

		score := 0
		for _, kw := range keywords {
			if strings.Contains(name, kw) {
				score += 2
			}
			if strings.Contains(category, kw) {
				score++
			}
			if strings.Contains(description, kw) {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, scored{product: p, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]models.Product, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.product)
	}
	return out
}
