package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/utils"
)

// Router mounts every endpoint behind CORS and latency logging.
func (h *Handler) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(AuthMiddleware(h.JWTSecret))

	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)

	r.HandleFunc("/categories", h.CategoriesHandler).Methods(http.MethodGet)
	r.HandleFunc("/recommendations", h.RecommendationsHandler).Methods(http.MethodGet)

	r.HandleFunc("/dashboard/orders", h.OrdersChartHandler).Methods(http.MethodGet)
	r.HandleFunc("/dashboard/category-sales", h.CategorySalesHandler).Methods(http.MethodGet)
	r.HandleFunc("/dashboard/top-rated", h.TopRatedHandler).Methods(http.MethodGet)

	r.HandleFunc("/orders", h.ListOrdersHandler).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}/status", h.UpdateOrderStatusHandler).Methods(http.MethodPut)
	r.HandleFunc("/orders/{id}/cancel", h.CancelOrderHandler).Methods(http.MethodPut)

	r.HandleFunc("/notifications", h.NotificationsHandler).Methods(http.MethodGet)
	r.HandleFunc("/chat", h.ChatHandler).Methods(http.MethodPost)
	r.HandleFunc("/products/import", h.ImportProductHandler).Methods(http.MethodPost)

	r.HandleFunc("/session", h.CreateSessionHandler).Methods(http.MethodPost)
	r.HandleFunc("/session/{id}", h.GetSessionHandler).Methods(http.MethodGet)
	r.HandleFunc("/session/{id}/actions", h.DispatchHandler).Methods(http.MethodPost)
	r.HandleFunc("/session/{id}", h.DeleteSessionHandler).Methods(http.MethodDelete)

	return utils.CORSMiddleware(utils.LatencyMiddleware(r))
}
