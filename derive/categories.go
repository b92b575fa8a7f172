package derive

import (
	"strings"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
)

// UncategorizedLabel is the category used for products without one.
const UncategorizedLabel = "Uncategorized"

// CategoryName returns the product's category, or UncategorizedLabel when it is empty.
func CategoryName(p models.Product) string {
	if p.Category == "" {
		return UncategorizedLabel
	}
	return p.Category
}

// Slugify lowercases a category name and replaces spaces with hyphens.
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// Categories groups products by category in first-seen order. The first
// product of each category supplies the summary image. Every product lands in
// exactly one summary.
func Categories(products []models.Product) []models.CategorySummary {
	summaries := []models.CategorySummary{}
	index := make(map[string]int)

	for _, p := range products {
		name := CategoryName(p)
		i, ok := index[name]
		if !ok {
			i = len(summaries)
			index[name] = i
			summaries = append(summaries, models.CategorySummary{
				Name:  name,
				Slug:  Slugify(name),
				Image: p.PrimaryImage(),
			})
		}
		summaries[i].Products = append(summaries[i].Products, p)
	}
	return summaries
}
