package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	coreauth "messagely/internal/auth"
	authh "messagely/internal/handlers/auth"
	"messagely/internal/store/storetest"
)

func newHandlers(t *testing.T) (*authh.RegisterHandler, *authh.LoginHandler, *coreauth.TokenIssuer) {
	t.Helper()
	st := storetest.New()
	issuer := coreauth.NewTokenIssuer("test-secret", time.Hour)
	reg := &authh.RegisterHandler{
		Users:        st.Users(),
		Issuer:       issuer,
		BcryptCost:   bcrypt.MinCost,
		PhoneRegions: []string{"US"},
	}
	login := &authh.LoginHandler{Users: st.Users(), Issuer: issuer}
	return reg, login, issuer
}

func post(h http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func tokenFrom(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func TestRegister_ReturnsVerifiableToken(t *testing.T) {
	reg, _, issuer := newHandlers(t)

	w := post(reg, "/register", map[string]string{
		"username": "Alice", "password": "pw1",
		"first_name": "Alice", "last_name": "A", "phone": "415-555-2671",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	username, err := issuer.Verify(tokenFrom(t, w))
	require.NoError(t, err)
	assert.Equal(t, "alice", username, "username is lowercased at registration")
}

func TestRegister_DuplicateUser(t *testing.T) {
	reg, _, _ := newHandlers(t)

	w := post(reg, "/register", map[string]string{"username": "bob", "password": "pw"})
	require.Equal(t, http.StatusCreated, w.Code)

	// same name with different casing is still the same user
	w = post(reg, "/register", map[string]string{"username": "Bob", "password": "pw"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_Validation(t *testing.T) {
	reg, _, _ := newHandlers(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing password", map[string]string{"username": "x"}},
		{"missing username", map[string]string{"password": "x"}},
		{"invalid phone", map[string]string{"username": "x", "password": "x", "phone": "garbage"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(reg, "/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	reg, login, issuer := newHandlers(t)
	w := post(reg, "/register", map[string]string{"username": "Bob", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("correct password", func(t *testing.T) {
		w := post(login, "/login", map[string]string{"username": "bob", "password": "secret1"})
		require.Equal(t, http.StatusOK, w.Code)
		username, err := issuer.Verify(tokenFrom(t, w))
		require.NoError(t, err)
		assert.Equal(t, "bob", username)
	})

	t.Run("case-insensitive username", func(t *testing.T) {
		w := post(login, "/login", map[string]string{"username": "BOB", "password": "secret1"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := post(login, "/login", map[string]string{"username": "bob", "password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := post(login, "/login", map[string]string{"username": "ghost", "password": "secret1"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
