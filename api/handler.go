package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/utils"
)

const importFolder = "product_images/imported"

// ImportProductHandler scrapes a supplier product page into a draft for the
// seller's product form. Images are mirrored into our bucket and returned
// presigned; the draft itself is not saved, the seller submits it to the backend.
func (h *Handler) ImportProductHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Import Product API]")

	if !hasRole(r.Context(), models.RoleSeller, models.RoleAdmin) {
		utils.RespondError(w, &logMessageBuilder, "Seller access required", http.StatusForbidden)
		return
	}

	// Support both Query Params and JSON Body
	productURL := r.URL.Query().Get("url")
	if productURL == "" {
		var req struct {
			URL string `json:"url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			productURL = strings.TrimSpace(req.URL)
		}
	}
	if productURL == "" {
		utils.RespondError(w, &logMessageBuilder, "Please provide a 'url' query parameter or JSON body", http.StatusBadRequest)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Importing URL: %s", productURL))

	draft, err := h.Import(r.Context(), productURL)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Import failed: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Could not read a product from that page", http.StatusUnprocessableEntity)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Scraped %q with %d images", draft.ProductName, len(draft.Images)))

	// Deduplicate
	seen := make(map[string]bool)
	var images []string
	for _, img := range draft.Images {
		if !seen[img] {
			seen[img] = true
			images = append(images, img)
		}
	}

	folder := importFolder
	if userID, err := GetUserIDFromContext(r.Context()); err == nil {
		folder = importFolder + "/" + userID
	}

	// Replace supplier URLs with our object keys, keeping the URL when mirroring failed
	urlToKey := map[string]string{}
	if h.MirrorImages != nil && len(images) > 0 {
		urlToKey = h.MirrorImages(r.Context(), images, folder)
	}
	keys := make([]string, 0, len(images))
	for _, img := range images {
		if key, ok := urlToKey[img]; ok {
			keys = append(keys, key)
		} else {
			keys = append(keys, img)
		}
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Mirrored %d/%d images", len(urlToKey), len(images)))

	draft.Images = utils.PresignImageURLs(r.Context(), keys)
	utils.RespondJSON(w, http.StatusOK, draft)
}
