package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/client"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/derive"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/utils"
)

const fallbackWarning = "Live data unavailable, showing sample data"

// ChartResponse is a dashboard chart. Fallback marks sample data shown in
// place of an empty or unavailable collection.
type ChartResponse struct {
	Labels   []string  `json:"labels"`
	Data     []float64 `json:"data"`
	Fallback bool      `json:"fallback"`
	Warning  string    `json:"warning,omitempty"`
}

// TopRatedResponse lists the most reviewed products
type TopRatedResponse struct {
	Products []models.TopRatedProduct `json:"products"`
	Fallback bool                     `json:"fallback"`
	Warning  string                   `json:"warning,omitempty"`
}

func chartResponse(c models.ChartData, fallback bool, warning string) ChartResponse {
	return ChartResponse{Labels: c.Labels, Data: c.Data, Fallback: fallback, Warning: warning}
}

// authFailure reports whether the backend rejected the caller. Those are
// passed through instead of hidden behind sample data.
func authFailure(err error) bool {
	var httpErr *client.HTTPError
	return errors.As(err, &httpErr) &&
		(httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden)
}

func orderScope(w http.ResponseWriter, r *http.Request, logger *strings.Builder) (client.OrderScope, bool) {
	scope, err := client.ParseOrderScope(r.URL.Query().Get("scope"))
	if err != nil {
		utils.RespondError(w, logger, err.Error(), http.StatusBadRequest)
		return "", false
	}
	if scope == client.ScopeAdmin && !hasRole(r.Context(), models.RoleAdmin) {
		utils.RespondError(w, logger, "Admin access required", http.StatusForbidden)
		return "", false
	}
	return scope, true
}

// OrdersChartHandler buckets orders by day, week, or month for the dashboard chart
func (h *Handler) OrdersChartHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Orders Chart API]")

	query := r.URL.Query()
	period, err := derive.ParsePeriod(query.Get("period"))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}
	metric, err := derive.ParseMetric(query.Get("metric"))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}
	scope, ok := orderScope(w, r, &logMessageBuilder)
	if !ok {
		return
	}

	orders, err := h.backend(r).Orders(r.Context(), scope)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to fetch orders: %v", err))
		if authFailure(err) {
			utils.RespondError(w, &logMessageBuilder, "Failed to load orders", backendStatus(err))
			return
		}
		utils.RespondJSON(w, http.StatusOK, chartResponse(derive.FallbackTimeline(period), true, fallbackWarning))
		return
	}

	if len(orders) == 0 {
		utils.AddToLogMessage(&logMessageBuilder, "No orders, serving sample data")
		utils.RespondJSON(w, http.StatusOK, chartResponse(derive.FallbackTimeline(period), true, ""))
		return
	}

	buckets := derive.OrderTimeline(orders, period, h.Now())
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("%d orders, period=%s metric=%s", len(orders), period, metric))
	utils.RespondJSON(w, http.StatusOK, chartResponse(derive.Chart(buckets, metric), false, ""))
}

// CategorySalesHandler reports units sold per category
func (h *Handler) CategorySalesHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Category Sales API]")

	scope, ok := orderScope(w, r, &logMessageBuilder)
	if !ok {
		return
	}

	backend := h.backend(r)
	var products []models.Product
	var orders []models.Order

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		products, err = backend.Products(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = backend.Orders(ctx, scope)
		return err
	})
	if err := g.Wait(); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to fetch sales data: %v", err))
		if authFailure(err) {
			utils.RespondError(w, &logMessageBuilder, "Failed to load sales", backendStatus(err))
			return
		}
		utils.RespondJSON(w, http.StatusOK, chartResponse(derive.FallbackCategorySales(), true, fallbackWarning))
		return
	}

	sales := derive.CategorySales(products, orders)
	if len(sales.Labels) == 0 {
		utils.AddToLogMessage(&logMessageBuilder, "No sales, serving sample data")
		utils.RespondJSON(w, http.StatusOK, chartResponse(derive.FallbackCategorySales(), true, ""))
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("%d products, %d orders, %d categories", len(products), len(orders), len(sales.Labels)))
	utils.RespondJSON(w, http.StatusOK, chartResponse(sales, false, ""))
}

// TopRatedHandler ranks a seller's products by review count
func (h *Handler) TopRatedHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Top Rated API]")

	sellerID := r.URL.Query().Get("sellerid")
	if sellerID == "" {
		if id, err := GetUserIDFromContext(r.Context()); err == nil {
			sellerID = id
		}
	}

	backend := h.backend(r)
	products, err := backend.QueryProducts(r.Context(), client.ProductQuery{SellerID: sellerID})
	var comments []models.Comment
	if err == nil {
		comments, err = backend.CommentsForProducts(r.Context(), products)
	}
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to fetch ratings: %v", err))
		if authFailure(err) {
			utils.RespondError(w, &logMessageBuilder, "Failed to load ratings", backendStatus(err))
			return
		}
		utils.RespondJSON(w, http.StatusOK, TopRatedResponse{Products: derive.FallbackTopRated(), Fallback: true, Warning: fallbackWarning})
		return
	}

	top := derive.TopRated(products, comments)
	if len(top) == 0 {
		utils.AddToLogMessage(&logMessageBuilder, "No reviews, serving sample data")
		utils.RespondJSON(w, http.StatusOK, TopRatedResponse{Products: derive.FallbackTopRated(), Fallback: true})
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("seller=%q %d products, %d comments", sellerID, len(products), len(comments)))
	utils.RespondJSON(w, http.StatusOK, TopRatedResponse{Products: top})
}
