package user

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"messagely/internal/store"
	"messagely/internal/utils"
)

type GetHandler struct {
	Users store.Users
}

// ServeHTTP handles GET /users/{username}. The self-only guard has
// already matched the caller against the path.
func (h *GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	username := strings.ToLower(chi.URLParam(r, "username"))
	u, err := h.Users.Get(r.Context(), username)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "user fetched", Data: u})
}
