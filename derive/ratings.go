package derive

import (
	"math"
	"sort"
	"strconv"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
)

// TopRatedLimit caps the most-reviewed widget.
const TopRatedLimit = 5

// TopRated ranks products by number of reviews (not by average) and returns
// the first TopRatedLimit. Ties keep the product collection's order.
func TopRated(products []models.Product, comments []models.Comment) []models.TopRatedProduct {
	rows := []models.TopRatedProduct{}
	if len(products) == 0 || len(comments) == 0 {
		return rows
	}

	type agg struct {
		sum   int
		count int
	}
	byProduct := make(map[string]*agg)
	for _, c := range comments {
		a, ok := byProduct[c.ProductID]
		if !ok {
			a = &agg{}
			byProduct[c.ProductID] = a
		}
		a.sum += c.Rating
		a.count++
	}

	for _, p := range products {
		avg, count := 0.0, 0
		if a, ok := byProduct[p.ID]; ok {
			count = a.count
			avg = float64(a.sum) / float64(a.count)
		}
		rows = append(rows, models.TopRatedProduct{
			Name:   p.ProductName,
			Rating: formatRating(avg),
			Count:  count,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })
	if len(rows) > TopRatedLimit {
		rows = rows[:TopRatedLimit]
	}
	return rows
}

// formatRating renders one decimal from the exact binary value of avg. Exact
// halves, which only occur at quarters, round up.
func formatRating(avg float64) string {
	if math.Mod(avg*4, 2) == 1 {
		return strconv.FormatFloat(math.Ceil(avg*10)/10, 'f', 1, 64)
	}
	return strconv.FormatFloat(avg, 'f', 1, 64)
}
