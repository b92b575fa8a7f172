package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/derive"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/utils"
)

// HealthHandler reports liveness
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CategoriesHandler lists the catalog's categories with a representative image each
func (h *Handler) CategoriesHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Categories API]")

	products, err := h.backend(r).Products(r.Context())
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to fetch products: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to load categories", backendStatus(err))
		return
	}

	categories := derive.Categories(products)
	for i := range categories {
		categories[i].Image = utils.PresignImageURLs(r.Context(), []string{categories[i].Image})[0]
		utils.PresignProducts(r.Context(), categories[i].Products)
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("%d products, %d categories", len(products), len(categories)))
	utils.RespondJSON(w, http.StatusOK, categories)
}

// RecommendationsHandler picks similar products for the product page
func (h *Handler) RecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Recommendations API]")

	opts := derive.RecommendOptions{
		Category:  r.URL.Query().Get("category"),
		ExcludeID: r.URL.Query().Get("exclude"),
		Rand:      h.Rand,
	}
	rec, err := derive.Recommend(r.Context(), h.backend(r), opts)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Recommendation failed: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to load recommendations", backendStatus(err))
		return
	}

	if len(rec.Products) == 0 {
		utils.AddToLogMessage(&logMessageBuilder, "Nothing to recommend")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	utils.PresignProducts(r.Context(), rec.Products)
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("%s: %d products", rec.Title, len(rec.Products)))
	utils.RespondJSON(w, http.StatusOK, rec)
}
