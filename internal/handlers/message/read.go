package message

import (
	"net/http"
	"time"

	"messagely/internal/store"
	"messagely/internal/utils"
)

type ReadHandler struct {
	Messages store.Messages
}

type ReadResponse struct {
	ID     int64     `json:"id"`
	ReadAt time.Time `json:"read_at"`
}

// ServeHTTP handles POST /messages/{id}/read — recipient only. Marking
// an already-read message returns its original read_at unchanged.
func (h *ReadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := authorizeParty(w, r, h.Messages, recipientOnly)
	if !ok {
		return
	}
	readAt, err := h.Messages.MarkRead(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "message read", Data: ReadResponse{ID: id, ReadAt: readAt}})
}
