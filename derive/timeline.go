package derive

import (
	"fmt"
	"strings"
	"time"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
)

// Period selects the span of an order timeline
type Period string

const (
	PeriodWeek  Period = "week"  // 7 days ending today
	PeriodMonth Period = "month" // 5 trailing 7-day windows
	PeriodYear  Period = "year"  // 12 trailing calendar months
)

// ParsePeriod validates a period query value. Empty means week.
func ParsePeriod(s string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case "", PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	case PeriodYear:
		return PeriodYear, nil
	}
	return "", fmt.Errorf("%w: unknown period %q", models.ErrValidation, s)
}

// BucketCount is the fixed number of buckets for the period.
func (p Period) BucketCount() int {
	switch p {
	case PeriodMonth:
		return 5
	case PeriodYear:
		return 12
	default:
		return 7
	}
}

// Metric selects what a timeline bucket reports
type Metric string

const (
	MetricCount   Metric = "count"
	MetricRevenue Metric = "revenue"
)

// ParseMetric validates a metric query value. Empty means count.
func ParseMetric(s string) (Metric, error) {
	switch Metric(strings.ToLower(strings.TrimSpace(s))) {
	case "", MetricCount:
		return MetricCount, nil
	case MetricRevenue:
		return MetricRevenue, nil
	}
	return "", fmt.Errorf("%w: unknown metric %q", models.ErrValidation, s)
}

type window struct {
	label      string
	start, end time.Time // [start, end)
}

// OrderTimeline buckets orders for the period ending at now. Buckets are
// always present and zero-filled. Calendar matching uses now's location.
func OrderTimeline(orders []models.Order, period Period, now time.Time) []models.TimeBucket {
	windows := periodWindows(period, now)
	buckets := make([]models.TimeBucket, len(windows))
	for i, w := range windows {
		buckets[i].Label = w.label
	}

	loc := now.Location()
	for _, o := range orders {
		if o.CreatedAt.IsZero() {
			continue
		}
		t := o.CreatedAt.In(loc)
		for i, w := range windows {
			if !t.Before(w.start) && t.Before(w.end) {
				buckets[i].Count++
				buckets[i].Sum += o.TotalAmount
			}
		}
	}
	return buckets
}

// Chart flattens buckets into chart data for the metric.
func Chart(buckets []models.TimeBucket, metric Metric) models.ChartData {
	chart := models.ChartData{
		Labels: make([]string, len(buckets)),
		Data:   make([]float64, len(buckets)),
	}
	for i, b := range buckets {
		chart.Labels[i] = b.Label
		if metric == MetricRevenue {
			chart.Data[i] = b.Sum
		} else {
			chart.Data[i] = float64(b.Count)
		}
	}
	return chart
}

func periodWindows(period Period, now time.Time) []window {
	today := startOfDay(now)
	var windows []window

	switch period {
	case PeriodMonth:
		// Windows are anchored on today, not on calendar weeks.
		for i := 4; i >= 0; i-- {
			end := today.AddDate(0, 0, -i*7)
			start := end.AddDate(0, 0, -6)
			windows = append(windows, window{
				label: fmt.Sprintf("%d/%d - %d/%d", start.Day(), int(start.Month()), end.Day(), int(end.Month())),
				start: start,
				end:   end.AddDate(0, 0, 1),
			})
		}
	case PeriodYear:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		for i := 11; i >= 0; i-- {
			m := first.AddDate(0, -i, 0)
			windows = append(windows, window{
				label: m.Format("Jan"),
				start: m,
				end:   m.AddDate(0, 1, 0),
			})
		}
	default:
		for i := 6; i >= 0; i-- {
			day := today.AddDate(0, 0, -i)
			windows = append(windows, window{
				label: day.Format("Mon"),
				start: day,
				end:   day.AddDate(0, 0, 1),
			})
		}
	}
	return windows
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
