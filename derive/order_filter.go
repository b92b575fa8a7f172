package derive

import (
	"strings"
	"time"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
)

// StatusAll disables the status filter.
const StatusAll = "all"

// Tab is the order table tab selected in the back-office
type Tab string

const (
	TabAll        Tab = "all"
	TabPending    Tab = "pending"
	TabProcessing Tab = "processing"
	TabShipped    Tab = "shipped"
	TabDelivered  Tab = "delivered"
	TabCancelled  Tab = "cancelled"
)

var tabStatus = map[Tab]models.OrderStatus{
	TabPending:    models.StatusPending,
	TabProcessing: models.StatusProcessing,
	TabShipped:    models.StatusShipped,
	TabDelivered:  models.StatusDelivered,
	TabCancelled:  models.StatusCancelled,
}

// Status returns the status literal a tab selects; ok is false for "all"
// and unknown tabs.
func (t Tab) Status() (models.OrderStatus, bool) {
	s, ok := tabStatus[t]
	return s, ok
}

// Valid reports whether t is one of the known tabs.
func (t Tab) Valid() bool {
	_, ok := tabStatus[t]
	return ok || t == TabAll
}

// DateRange is an open interval: both bounds are exclusive.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// OrderCriteria holds the back-office order table filters
type OrderCriteria struct {
	SearchText string
	Status     string // StatusAll, "" or an exact status literal
	DateRange  *DateRange
	Tab        Tab
}

// FilterOrders keeps the orders matching every criterion, in input order.
func FilterOrders(orders []models.Order, c OrderCriteria) []models.Order {
	search := strings.ToLower(strings.TrimSpace(c.SearchText))
	out := []models.Order{}
	for _, o := range orders {
		if matchesSearch(o, search) && matchesStatus(o, c.Status) &&
			matchesRange(o, c.DateRange) && matchesTab(o, c.Tab) {
			out = append(out, o)
		}
	}
	return out
}

func matchesSearch(o models.Order, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(o.ID), search) ||
		strings.Contains(strings.ToLower(o.CustomerName()), search) ||
		strings.Contains(strings.ToLower(o.ShippingDetails.Address), search)
}

func matchesStatus(o models.Order, status string) bool {
	return status == "" || status == StatusAll || string(o.Status) == status
}

func matchesRange(o models.Order, r *DateRange) bool {
	if r == nil {
		return true
	}
	return o.CreatedAt.After(r.Start) && o.CreatedAt.Before(r.End)
}

func matchesTab(o models.Order, tab Tab) bool {
	status, ok := tab.Status()
	if !ok {
		return true
	}
	return o.Status == status
}
