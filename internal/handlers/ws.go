package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"messagely/internal/auth"
	"messagely/internal/ws"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Stream upgrades GET /ws to a websocket and registers the caller for
// live delivery of messages addressed to them. The token travels as a
// query parameter since browsers cannot set headers on a ws dial.
func Stream(issuer *auth.TokenIssuer, hub *ws.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "token required", http.StatusUnauthorized)
			return
		}
		username, err := issuer.Verify(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		c := &ws.Connection{Conn: conn, Send: make(chan []byte, 16), Username: username}
		hub.Register(c)
		go c.StartWrite()
		go c.StartRead(hub)
	}
}
