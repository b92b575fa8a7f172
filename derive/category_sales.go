package derive

import "github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"

type categoryTotals struct {
	count int
	sales int
}

// CategorySales sums quantity sold per category. Categories are seeded from
// the products, so a category with products but no sales reports 0. Line
// items whose product is not in the collection are skipped.
//
// The result is empty (not zero-filled) when either input is empty or when
// nothing was sold at all; callers substitute a fallback dataset then.
func CategorySales(products []models.Product, orders []models.Order) models.ChartData {
	empty := models.ChartData{Labels: []string{}, Data: []float64{}}
	if len(products) == 0 || len(orders) == 0 {
		return empty
	}

	var names []string
	totals := make(map[string]*categoryTotals)
	productCategory := make(map[string]string, len(products))

	for _, p := range products {
		name := CategoryName(p)
		t, ok := totals[name]
		if !ok {
			t = &categoryTotals{}
			totals[name] = t
			names = append(names, name)
		}
		t.count++
		productCategory[p.ID] = name
	}

	totalSales := 0
	for _, o := range orders {
		for _, item := range o.Items {
			name, ok := productCategory[item.Product.ID]
			if !ok {
				continue
			}
			totals[name].sales += item.Quantity
			totalSales += item.Quantity
		}
	}
	if totalSales == 0 {
		return empty
	}

	chart := models.ChartData{
		Labels: make([]string, len(names)),
		Data:   make([]float64, len(names)),
	}
	for i, name := range names {
		chart.Labels[i] = name
		chart.Data[i] = float64(totals[name].sales)
	}
	return chart
}
