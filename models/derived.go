package models

// CategorySummary groups the catalog by category for the category pages
type CategorySummary struct {
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	Products []Product `json:"products"`
	Image    string    `json:"image"`
}

// TimeBucket is one slot of a period chart
type TimeBucket struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Sum   float64 `json:"sum,omitempty"`
}

// ChartData is the labels/data pair the dashboard charts consume.
// len(Labels) == len(Data) always holds.
type ChartData struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// TopRatedProduct is a row of the most-reviewed widget
type TopRatedProduct struct {
	Name   string `json:"name"`
	Rating string `json:"rating"`
	Count  int    `json:"count"`
}

// Recommendation is the "similar items" widget content
type Recommendation struct {
	Title    string    `json:"title"`
	Products []Product `json:"products"`
}
