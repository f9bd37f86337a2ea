package socket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks the dashboard WebSocket connections, keyed by user id, and
// pushes transfer lifecycle events so open list views can refresh.
type Hub struct {
	clients map[int64]*websocket.Conn
	mu      sync.RWMutex
}

// TransferEvent is broadcast after every successful lifecycle operation.
type TransferEvent struct {
	Type       string `json:"type"` // TRANSFER_CREATED, TRANSFER_UPDATED, TRANSFER_ACCEPTED, TRANSFER_CANCELLED
	TransferID int64  `json:"transferId"`
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]*websocket.Conn),
	}
}

// Register adds a client connection to the hub.
func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[userID] = conn
	log.Printf("WebSocket client registered: %d", userID)
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(userID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[userID]; ok {
		delete(h.clients, userID)
		log.Printf("WebSocket client unregistered: %d", userID)
	}
}

// Broadcast sends the event to every connected client. Write failures are
// logged and skipped; the read loop will clean the connection up.
func (h *Hub) Broadcast(event TransferEvent) {
	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal transfer event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for userID, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("Failed to push event to client %d: %v", userID, err)
		}
	}
}
