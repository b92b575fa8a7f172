package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/store"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/utils"
)

// SessionResponse carries a session id with its state
type SessionResponse struct {
	ID    string      `json:"id"`
	State store.State `json:"state"`
}

func (h *Handler) sessionError(w http.ResponseWriter, logger *strings.Builder, err error) {
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		utils.RespondError(w, logger, "Session not found", http.StatusNotFound)
	case errors.Is(err, models.ErrValidation):
		utils.RespondError(w, logger, err.Error(), http.StatusBadRequest)
	default:
		utils.AddToLogMessage(logger, fmt.Sprintf("Session store error: %v", err))
		utils.RespondError(w, logger, "Session store unavailable", http.StatusInternalServerError)
	}
}

// CreateSessionHandler starts a session. A request carrying a valid token
// starts signed in.
func (h *Handler) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Create Session API]")

	id, state, err := h.Sessions.Create(r.Context())
	if err != nil {
		h.sessionError(w, &logMessageBuilder, err)
		return
	}

	if claims, ok := ClaimsFromContext(r.Context()); ok {
		state, err = h.Sessions.Dispatch(r.Context(), id, store.LoginSucceeded(bearerToken(r), sessionUser(claims)))
		if err != nil {
			h.sessionError(w, &logMessageBuilder, err)
			return
		}
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Session %s created (authenticated=%t)", id, state.Auth.IsAuthenticated))
	utils.RespondJSON(w, http.StatusCreated, SessionResponse{ID: id, State: state})
}

// GetSessionHandler returns the current session state
func (h *Handler) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Get Session API]")

	id := mux.Vars(r)["id"]
	state, err := h.Sessions.Get(r.Context(), id)
	if err != nil {
		h.sessionError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, SessionResponse{ID: id, State: state})
}

// DispatchHandler applies one action to a session. Login actions take the
// token from the Authorization header, never from the body.
func (h *Handler) DispatchHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Dispatch API]")

	id := mux.Vars(r)["id"]
	var action store.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid action", http.StatusBadRequest)
		return
	}

	if action.Type == store.ActionLoginSucceeded {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			utils.RespondError(w, &logMessageBuilder, "Login requires a bearer token", http.StatusUnauthorized)
			return
		}
		action = store.LoginSucceeded(bearerToken(r), sessionUser(claims))
	}

	state, err := h.Sessions.Dispatch(r.Context(), id, action)
	if err != nil {
		h.sessionError(w, &logMessageBuilder, err)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Session %s: %s, %d cart items", id, action.Type, state.Cart.Count()))
	utils.RespondJSON(w, http.StatusOK, SessionResponse{ID: id, State: state})
}

// DeleteSessionHandler logs out and tears the session down
func (h *Handler) DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Delete Session API]")

	id := mux.Vars(r)["id"]
	if _, err := h.Sessions.Dispatch(r.Context(), id, store.LoggedOut()); err != nil {
		h.sessionError(w, &logMessageBuilder, err)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Session %s removed", id))
	w.WriteHeader(http.StatusNoContent)
}
