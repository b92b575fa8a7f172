package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/client"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/derive"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/utils"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// OrderListResponse represents the response structure for the order table
type OrderListResponse struct {
	Orders      []models.Order `json:"orders"`
	Total       int            `json:"total"`
	CurrentPage int            `json:"current_page"`
	TotalPages  int            `json:"total_pages"`
}

// ListOrdersHandler filters, searches and paginates the back-office order table
func (h *Handler) ListOrdersHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[List Orders API]")

	scope, ok := orderScope(w, r, &logMessageBuilder)
	if !ok {
		return
	}
	criteria, err := parseOrderCriteria(r)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}

	// Parse Pagination Parameters
	page := 1
	limit := defaultPageLimit
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = min(l, maxPageLimit)
	}

	orders, err := h.backend(r).Orders(r.Context(), scope)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to fetch orders: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to load orders", backendStatus(err))
		return
	}

	filtered := derive.FilterOrders(orders, criteria)
	total := len(filtered)

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	start := min((page-1)*limit, total)
	end := min(start+limit, total)
	pageOrders := filtered[start:end]

	// Ensure empty slice is returned as [] instead of null
	if pageOrders == nil {
		pageOrders = []models.Order{}
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("scope=%s %d/%d orders match, page %d/%d", scope, total, len(orders), page, totalPages))
	utils.RespondJSON(w, http.StatusOK, OrderListResponse{
		Orders:      pageOrders,
		Total:       total,
		CurrentPage: page,
		TotalPages:  totalPages,
	})
}

// parseOrderCriteria reads search, status, from/to (RFC 3339 or YYYY-MM-DD)
// and tab from the query string.
func parseOrderCriteria(r *http.Request) (derive.OrderCriteria, error) {
	q := r.URL.Query()
	c := derive.OrderCriteria{
		SearchText: strings.TrimSpace(q.Get("search")),
		Status:     derive.StatusAll,
		Tab:        derive.TabAll,
	}

	if s := q.Get("status"); s != "" && !strings.EqualFold(s, derive.StatusAll) {
		st, err := models.ParseOrderStatus(s)
		if err != nil {
			return c, err
		}
		c.Status = string(st)
	}

	if t := q.Get("tab"); t != "" {
		tab := derive.Tab(strings.ToLower(t))
		if !tab.Valid() {
			return c, fmt.Errorf("%w: unknown tab %q", models.ErrValidation, t)
		}
		c.Tab = tab
	}

	from, to := q.Get("from"), q.Get("to")
	if from != "" || to != "" {
		if from == "" || to == "" {
			return c, fmt.Errorf("%w: from and to must be given together", models.ErrValidation)
		}
		start, err := parseDate(from)
		if err != nil {
			return c, err
		}
		end, err := parseDate(to)
		if err != nil {
			return c, err
		}
		c.DateRange = &derive.DateRange{Start: start, End: end}
	}
	return c, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", models.ErrValidation, s)
}

// UpdateOrderStatusHandler validates a status change and forwards it to the backend
func (h *Handler) UpdateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Update Order Status API]")

	orderID := mux.Vars(r)["id"]
	if !hasRole(r.Context(), models.RoleSeller, models.RoleAdmin) {
		utils.RespondError(w, &logMessageBuilder, "Seller access required", http.StatusForbidden)
		return
	}
	scope, ok := orderScope(w, r, &logMessageBuilder)
	if !ok {
		return
	}

	var req struct {
		Status       string `json:"status"`
		TrackingInfo string `json:"trackingInfo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}
	next, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Order %s -> %s", orderID, next))

	backend := h.backend(r)
	orders, err := backend.Orders(r.Context(), scope)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to fetch orders: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to update order", backendStatus(err))
		return
	}
	current, found := findOrder(orders, orderID)
	if !found {
		utils.RespondError(w, &logMessageBuilder, "Order not found", http.StatusNotFound)
		return
	}
	if !current.Status.CanTransition(next) {
		err := fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, current.Status, next)
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}

	update := models.StatusUpdate{Status: next, TrackingInfo: strings.TrimSpace(req.TrackingInfo)}
	if err := backend.UpdateOrderStatus(r.Context(), orderID, update); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Backend rejected update: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to update order", backendStatus(err))
		return
	}

	current.Status = next
	if update.TrackingInfo != "" {
		current.TrackingInfo = update.TrackingInfo
	}
	utils.AddToLogMessage(&logMessageBuilder, "Order updated")
	utils.RespondJSON(w, http.StatusOK, current)
}

// CancelOrderHandler cancels one of the caller's own orders
func (h *Handler) CancelOrderHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Cancel Order API]")

	orderID := mux.Vars(r)["id"]
	backend := h.backend(r)

	orders, err := backend.Orders(r.Context(), client.ScopeUser)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to fetch orders: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to cancel order", backendStatus(err))
		return
	}
	current, found := findOrder(orders, orderID)
	if !found {
		utils.RespondError(w, &logMessageBuilder, "Order not found", http.StatusNotFound)
		return
	}
	if !current.Status.CanTransition(models.StatusCancelled) {
		err := fmt.Errorf("%w: %s orders cannot be cancelled", models.ErrInvalidTransition, current.Status)
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}

	if err := backend.CancelOrder(r.Context(), orderID); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Backend rejected cancel: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to cancel order", backendStatus(err))
		return
	}

	current.Status = models.StatusCancelled
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Order %s cancelled", orderID))
	utils.RespondJSON(w, http.StatusOK, current)
}

func findOrder(orders []models.Order, id string) (models.Order, bool) {
	for _, o := range orders {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}
