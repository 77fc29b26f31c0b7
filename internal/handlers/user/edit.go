package user

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"messagely/internal/models"
	"messagely/internal/phone"
	"messagely/internal/store"
	"messagely/internal/utils"
)

type EditHandler struct {
	Users        store.Users
	PhoneRegions []string
}

// ServeHTTP handles POST /users/{username}/edit.
//
// Fields absent from the body keep their stored value; a field that is
// present, even as "", overwrites. A non-empty phone is normalized
// before it is stored.
func (h *EditHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	username := strings.ToLower(chi.URLParam(r, "username"))

	var upd models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if upd.Phone != nil && *upd.Phone != "" {
		normalized, err := phone.Normalize(*upd.Phone, h.PhoneRegions)
		if err != nil {
			utils.JSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "invalid phone number"})
			return
		}
		upd.Phone = &normalized
	}

	u, err := h.Users.UpdateProfile(r.Context(), username, upd)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "profile updated", Data: u})
}
