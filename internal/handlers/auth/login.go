package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"messagely/internal/auth"
	"messagely/internal/store"
	"messagely/internal/utils"
)

type LoginHandler struct {
	Users  store.Users
	Issuer *auth.TokenIssuer
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// ServeHTTP handles POST /login
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "username and password are required"})
		return
	}
	username := strings.ToLower(req.Username)

	hash, err := h.Users.GetHash(r.Context(), username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.JSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Invalid username or password"})
			return
		}
		utils.Error(w, err)
		return
	}
	if !auth.CheckPassword(hash, req.Password) {
		utils.JSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Invalid username or password"})
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

	utils.JSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Login successful",
		Data:    TokenResponse{Token: token},
	})
}
