package user

import (
	"net/http"

	"messagely/internal/store"
	"messagely/internal/utils"
)

type ListHandler struct {
	Users store.Users
}

// ServeHTTP handles GET /users — public summaries only.
func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.All(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "users fetched", Data: users})
}
