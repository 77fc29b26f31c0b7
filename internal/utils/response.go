package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"messagely/internal/store"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func JSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// Error maps store errors to an HTTP status and writes the envelope.
// Unknown errors become a 500 without leaking their text.
func Error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		JSON(w, http.StatusNotFound, APIResponse{Success: false, Message: "not found"})
	case errors.Is(err, store.ErrDuplicateUser):
		JSON(w, http.StatusConflict, APIResponse{Success: false, Message: "username taken"})
	default:
		JSON(w, http.StatusInternalServerError, APIResponse{Success: false, Message: "internal error"})
	}
}
