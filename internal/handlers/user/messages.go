package user

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"messagely/internal/models"
	"messagely/internal/store"
	"messagely/internal/utils"
)

// MessagesHandler serves a user's inbound or outbound message listing.
// Inbound selects messages addressed to the user, outbound the ones
// they sent; each entry carries the counterpart's public fields.
type MessagesHandler struct {
	Users   store.Users
	Inbound bool
}

// ServeHTTP handles GET /users/{username}/to and /users/{username}/from.
func (h *MessagesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	username := strings.ToLower(chi.URLParam(r, "username"))

	var (
		entries []models.InboxEntry
		err     error
	)
	if h.Inbound {
		entries, err = h.Users.MessagesTo(r.Context(), username)
	} else {
		entries, err = h.Users.MessagesFrom(r.Context(), username)
	}
	if err != nil {
		utils.Error(w, err)
		return
	}
	if entries == nil {
		entries = []models.InboxEntry{}
	}
	utils.JSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "messages fetched", Data: entries})
}
