package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"messagely/internal/auth"
	"messagely/internal/phone"
	"messagely/internal/store"
	"messagely/internal/utils"
)

type RegisterHandler struct {
	Users        store.Users
	Issuer       *auth.TokenIssuer
	BcryptCost   int
	PhoneRegions []string
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// ServeHTTP handles POST /register. Registration logs the user in and
// returns a token, like login does.
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "username and password are required"})
		return
	}
	username := strings.ToLower(req.Username)

	normalized := ""
	if req.Phone != "" {
		var err error
		normalized, err = phone.Normalize(req.Phone, h.PhoneRegions)
		if err != nil {
			utils.JSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "invalid phone number"})
			return
		}
	}

	hash, err := auth.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to hash password"})
		return
	}

	if _, err := h.Users.Create(r.Context(), username, hash, req.FirstName, req.LastName, normalized); err != nil {
		utils.Error(w, err)
		return
	}

	token, err := h.Issuer.Issue(username)
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to generate token"})
		return
	}

	if err := h.Users.TouchLogin(r.Context(), username); err != nil {
		logrus.WithError(err).WithField("username", username).Warn("touch login failed")
	}

	utils.JSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "User created successfully",
		Data:    TokenResponse{Token: token},
	})
}
