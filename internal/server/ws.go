package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/arjunmn/mudra/internal/pointer"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// StateHub fans published interaction states out to WebSocket clients.
// It never touches the camera or detector; the frame pump feeds it
// through Publish.
type StateHub struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewStateHub creates an empty hub.
func NewStateHub() *StateHub {
	return &StateHub{
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *StateHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// stateMessage is the wire format for one published snapshot.
type stateMessage struct {
	pointer.State
	Timestamp int64 `json:"timestamp"`
}

// Publish sends the state to every connected client. Write failures
// are left to the per-connection read loop to clean up.
func (h *StateHub) Publish(state pointer.State) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.clients) == 0 {
		return
	}

	msg, err := json.Marshal(stateMessage{
		State:     state,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		return
	}

	for conn := range h.clients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
}

// ClientCount returns the number of connected clients.
func (h *StateHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
