// Package ws pushes newly persisted messages to connected recipients.
// The stream is purely a notification channel: messages live in the
// store regardless of whether anyone is connected.
package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Connection is one open websocket for a user.
type Connection struct {
	Conn     *websocket.Conn
	Send     chan []byte
	Username string
}

// Hub tracks open connections per username and fans incoming messages
// out to the recipient's connections.
type Hub struct {
	mu    sync.Mutex
	conns map[string]map[*Connection]bool
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]map[*Connection]bool)}
}

func (h *Hub) Register(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[c.Username] == nil {
		h.conns[c.Username] = make(map[*Connection]bool)
	}
	h.conns[c.Username][c] = true
	logrus.WithField("username", c.Username).Debug("ws connected")
}

func (h *Hub) Unregister(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.conns[c.Username]; ok {
		if set[c] {
			delete(set, c)
			close(c.Send)
		}
		if len(set) == 0 {
			delete(h.conns, c.Username)
		}
	}
}

// Publish delivers v to every connection of username. Connections with
// a full send buffer are dropped rather than blocking the caller.
func (h *Hub) Publish(username string, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns[username] {
		select {
		case c.Send <- b:
		default:
			delete(h.conns[username], c)
			close(c.Send)
		}
	}
}

// StartRead drains the connection until the client goes away, then
// unregisters. Client frames are ignored; the stream is one-way.
func (c *Connection) StartRead(hub *Hub) {
	defer func() {
		hub.Unregister(c)
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

// StartWrite writes messages from the Send channel to the websocket.
func (c *Connection) StartWrite() {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
