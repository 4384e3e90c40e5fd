package server

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// wsConn pairs a connection with a write mutex. Gorilla connections do
// not allow concurrent writers, so every write must hold the lock.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Hub tracks live-reload websocket connections and broadcasts to them.
type Hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]*wsConn
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]*wsConn)}
}

// Add registers a connection.
func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = &wsConn{conn: conn}
}

// Remove unregisters a connection.
func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Broadcast sends a text message to every connected client. Dead
// connections are dropped along the way.
func (h *Hub) Broadcast(message string) {
	h.mu.RLock()
	conns := make([]*wsConn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		c.mu.Lock()
		err := c.conn.WriteMessage(websocket.TextMessage, []byte(message))
		c.mu.Unlock()
		if err != nil {
			log.Printf("server: dropping websocket client: %v", err)
			h.Remove(c.conn)
			c.conn.Close()
		}
	}
}
