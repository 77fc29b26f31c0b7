// Package middleware carries the request guards: bearer-token
// authentication and the self-only resource check. Authentication always
// runs first; resource checks assume an identity is already in context.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"messagely/internal/auth"
	"messagely/internal/utils"
)

type contextKey string

// UsernameKey holds the verified caller identity in the request context.
const UsernameKey contextKey = "username"

// CallerUsername returns the verified identity, or "" when the request
// did not pass through Auth.
func CallerUsername(r *http.Request) string {
	if v, ok := r.Context().Value(UsernameKey).(string); ok {
		return v
	}
	return ""
}

// Auth verifies the bearer token and stores the caller username in the
// request context. Missing or invalid tokens get 401.
func Auth(issuer *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				utils.JSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "missing bearer token"})
				return
			}
			tokenStr := strings.TrimSpace(authz[len("Bearer "):])
			username, err := issuer.Verify(tokenStr)
			if err != nil {
				utils.JSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "invalid token"})
				return
			}
			ctx := context.WithValue(r.Context(), UsernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSelf rejects callers whose identity differs from the {username}
// path parameter. Must be mounted after Auth.
func RequireSelf(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := CallerUsername(r)
		if caller == "" {
			utils.JSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "unauthorized"})
			return
		}
		target := strings.ToLower(chi.URLParam(r, "username"))
		if caller != target {
			utils.JSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "forbidden"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
