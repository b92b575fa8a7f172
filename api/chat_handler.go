package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/utils"
)

// ChatHandler answers a shopper's message with matching products
func (h *Handler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Chat API]")

	if h.Bot == nil {
		utils.RespondError(w, &logMessageBuilder, "Chat is not available", http.StatusServiceUnavailable)
		return
	}

	var req struct {
		SessionID string `json:"session_id"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}

	reply, err := h.Bot.Respond(r.Context(), req.SessionID, req.Message)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
			return
		}
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Chat failed: %v", err))
		utils.RespondError(w, &logMessageBuilder, "The assistant is unavailable right now", http.StatusBadGateway)
		return
	}

	utils.PresignProducts(r.Context(), reply.Products)
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("session=%s %d products", reply.SessionID, len(reply.Products)))
	utils.RespondJSON(w, http.StatusOK, reply)
}
