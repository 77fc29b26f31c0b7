package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"messagely/internal/auth"
	"messagely/internal/config"
	"messagely/internal/models"
	"messagely/internal/sms"
	"messagely/internal/store/storetest"
	"messagely/internal/ws"
)

func testServer(t *testing.T) (*chi.Mux, *sms.MockGateway) {
	t.Helper()
	cfg := &config.Config{
		Port:          "0",
		JWTSecret:     "test-secret",
		JWTTTLMinutes: 60,
		BcryptCost:    bcrypt.MinCost,
		PhoneRegions:  []string{"US"},
		Env:           "dev",
	}
	st := storetest.New()
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	gateway := &sms.MockGateway{}
	srv := NewServer(":0", cfg, st.Users(), st.Messages(), issuer, gateway, ws.NewHub())
	return srv.Router(), gateway
}

func request(r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, r http.Handler, username, password string) string {
	t.Helper()
	w := request(r, http.MethodPost, "/register", "", map[string]string{
		"username": username, "password": password,
		"first_name": username, "phone": "415-555-2671",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = request(r, http.MethodPost, "/login", "", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data.Token
}

func TestHealth(t *testing.T) {
	r, _ := testServer(t)
	w := request(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUsersRequireAuth(t *testing.T) {
	r, _ := testServer(t)
	w := request(r, http.MethodGet, "/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// End-to-end walk of the direct-message flow: alice messages bob, bob
// can view and mark read, carol can do neither.
func TestMessageFlow(t *testing.T) {
	r, gateway := testServer(t)

	alice := registerAndLogin(t, r, "alice", "pw1")
	bob := registerAndLogin(t, r, "bob", "pw2")
	carol := registerAndLogin(t, r, "carol", "pw3")

	// alice sends to bob
	w := request(r, http.MethodPost, "/messages", alice, map[string]string{
		"to_username": "bob", "body": "hi",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Data models.Message `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.False(t, created.Data.SentAt.IsZero())
	assert.Nil(t, created.Data.ReadAt)

	// bob can view, carol cannot
	w = request(r, http.MethodGet, "/messages/1", bob, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = request(r, http.MethodGet, "/messages/1", carol, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// only bob can mark read
	w = request(r, http.MethodPost, "/messages/1/read", alice, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = request(r, http.MethodPost, "/messages/1/read", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// only alice can relay by sms
	w = request(r, http.MethodPost, "/messages/1/sms", bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = request(r, http.MethodPost, "/messages/1/sms", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, gateway.Sent, 1)
	assert.Equal(t, "hi", gateway.Sent[0].Body)

	// message listings are self-only
	w = request(r, http.MethodGet, "/users/bob/to", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var inbox struct {
		Data []models.InboxEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inbox))
	require.Len(t, inbox.Data, 1)
	assert.Equal(t, "alice", inbox.Data[0].Counterpart.Username)
	assert.NotNil(t, inbox.Data[0].ReadAt)

	w = request(r, http.MethodGet, "/users/bob/to", alice, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// profiles are self-only
	w = request(r, http.MethodGet, "/users/alice", alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = request(r, http.MethodGet, "/users/alice", bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// the public listing hides phone numbers
	w = request(r, http.MethodGet, "/users", carol, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "+1415555")
}

func TestExpiredTokenRejected(t *testing.T) {
	r, _ := testServer(t)
	registerAndLogin(t, r, "alice", "pw1")

	expired := auth.NewTokenIssuer("test-secret", -time.Minute)
	token, err := expired.Issue("alice")
	require.NoError(t, err)

	w := request(r, http.MethodGet, "/users/alice", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
