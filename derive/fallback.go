package derive

import "github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"

// Demo datasets shown instead of empty dashboard widgets.

// FallbackTimeline returns the static chart for a period.
func FallbackTimeline(period Period) models.ChartData {
	switch period {
	case PeriodMonth:
		return models.ChartData{
			Labels: []string{"Week 1", "Week 2", "Week 3", "Week 4", "Week 5"},
			Data:   []float64{65, 59, 80, 81, 56},
		}
	case PeriodYear:
		return models.ChartData{
			Labels: []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
			Data:   []float64{30, 45, 38, 52, 61, 49, 70, 66, 58, 73, 90, 110},
		}
	default:
		return models.ChartData{
			Labels: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
			Data:   []float64{12, 19, 8, 15, 22, 30, 25},
		}
	}
}

// FallbackCategorySales is the demo category sales chart.
func FallbackCategorySales() models.ChartData {
	return models.ChartData{
		Labels: []string{"Living Room", "Bedroom", "Kitchen", "Wall Decor", "Lighting"},
		Data:   []float64{42, 28, 19, 35, 23},
	}
}

// FallbackTopRated is the demo most-reviewed list.
func FallbackTopRated() []models.TopRatedProduct {
	return []models.TopRatedProduct{
		{Name: "Rattan Pendant Lamp", Rating: "4.8", Count: 64},
		{Name: "Velvet Accent Chair", Rating: "4.6", Count: 51},
		{Name: "Ceramic Vase Set", Rating: "4.7", Count: 47},
		{Name: "Jute Area Rug", Rating: "4.4", Count: 39},
		{Name: "Oak Floating Shelf", Rating: "4.5", Count: 33},
	}
}
