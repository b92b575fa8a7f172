package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
)

func ids(orders []models.Order) []string {
	out := []string{}
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func TestFilterOrders_StatusAndSearchAreANDed(t *testing.T) {
	orders := []models.Order{
		{ID: "A1", Status: models.StatusPending},
		{ID: "B1", Status: models.StatusDelivered},
	}

	assert.Equal(t, []string{"A1"}, ids(FilterOrders(orders, OrderCriteria{Status: "Pending"})))
	assert.Empty(t, FilterOrders(orders, OrderCriteria{Status: "Pending", SearchText: "B1"}))
}

func TestFilterOrders_Search(t *testing.T) {
	orders := []models.Order{
		{ID: "ord-100", User: models.UserRef{Name: "Amira Khan"}},
		{ID: "ord-200", ShippingDetails: models.ShippingDetails{Address: "12 Maple Street"}},
		{ID: "ord-300", ShippingDetails: models.ShippingDetails{FullName: "Jonas Berg"}},
	}

	tests := []struct {
		search string
		want   []string
	}{
		{"", []string{"ord-100", "ord-200", "ord-300"}},
		{"ORD-2", []string{"ord-200"}},
		{"amira", []string{"ord-100"}},
		{"maple", []string{"ord-200"}},
		{"berg", []string{"ord-300"}},
		{"nobody", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterOrders(orders, OrderCriteria{SearchText: tt.search, Status: StatusAll})))
		})
	}
}

func TestFilterOrders_DateRangeIsStrict(t *testing.T) {
	start := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.October, 10, 0, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{ID: "at-start", CreatedAt: start},
		{ID: "inside", CreatedAt: start.Add(time.Hour)},
		{ID: "at-end", CreatedAt: end},
		{ID: "after", CreatedAt: end.Add(time.Hour)},
	}

	got := FilterOrders(orders, OrderCriteria{DateRange: &DateRange{Start: start, End: end}})
	assert.Equal(t, []string{"inside"}, ids(got))
}

func TestFilterOrders_Tab(t *testing.T) {
	orders := []models.Order{
		{ID: "1", Status: models.StatusShipped},
		{ID: "2", Status: models.StatusCancelled},
		{ID: "3", Status: models.StatusShipped},
	}

	assert.Equal(t, []string{"1", "3"}, ids(FilterOrders(orders, OrderCriteria{Tab: TabShipped})))
	assert.Equal(t, []string{"1", "2", "3"}, ids(FilterOrders(orders, OrderCriteria{Tab: TabAll})))
	assert.Empty(t, FilterOrders(orders, OrderCriteria{Tab: TabShipped, Status: "Cancelled"}))
}

func TestTab_Valid(t *testing.T) {
	assert.True(t, TabAll.Valid())
	assert.True(t, TabDelivered.Valid())
	assert.False(t, Tab("refunded").Valid())
}
