package message

import (
	"net/http"

	"messagely/internal/store"
	"messagely/internal/utils"
)

type GetHandler struct {
	Messages store.Messages
}

// ServeHTTP handles GET /messages/{id} — either party may view.
func (h *GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := authorizeParty(w, r, h.Messages, anyParty)
	if !ok {
		return
	}
	d, err := h.Messages.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "message fetched", Data: d})
}
