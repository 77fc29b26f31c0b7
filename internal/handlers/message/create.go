package message

import (
	"encoding/json"
	"net/http"
	"strings"

	"messagely/internal/middleware"
	"messagely/internal/store"
	"messagely/internal/utils"
	"messagely/internal/ws"
)

type CreateHandler struct {
	Messages store.Messages
	Hub      *ws.Hub
}

type CreateRequest struct {
	ToUsername string `json:"to_username"`
	Body       string `json:"body"`
}

// ServeHTTP handles POST /messages. The sender is always the caller.
func (h *CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerUsername(r)
	if caller == "" {
		utils.JSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "unauthorized"})
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}
	if req.ToUsername == "" || req.Body == "" {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "to_username and body are required"})
		return
	}

	m, err := h.Messages.Create(r.Context(), caller, strings.ToLower(req.ToUsername), req.Body)
	if err != nil {
		utils.Error(w, err)
		return
	}

	if h.Hub != nil {
		h.Hub.Publish(m.ToUsername, m)
	}

	utils.JSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Message sent", Data: m})
}
