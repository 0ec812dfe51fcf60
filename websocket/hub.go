package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Event is the wire format for realtime events. Every connected client
// receives every event; relevance filtering is a client responsibility.
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub manages all WebSocket connections and fans events out to them.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Outbound events to all clients
	broadcast chan *Event

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	mu sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("🔌 Client registered: user=%d role=%s", client.UserID, client.Role)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			log.Printf("🔌 Client unregistered: user=%d role=%s", client.UserID, client.Role)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// Publish queues an event for broadcast to all connected clients. It never
// blocks the caller: when the broadcast queue is full the event is dropped
// with a log line. Callers must complete their persistence side effects
// before publishing, so a client reacting to an event sees committed state.
func (h *Hub) Publish(eventType string, payload interface{}) {
	event := &Event{
		Type:      eventType,
		Data:      payload,
		Timestamp: time.Now(),
	}

	select {
	case h.broadcast <- event:
	default:
		log.Printf("⚠️ Broadcast queue full, dropping %s event", eventType)
	}
}

// broadcastEvent sends an event to every connected client. Clients whose
// send buffer is full are disconnected rather than allowed to stall the hub.
func (h *Hub) broadcastEvent(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("❌ Error marshaling event: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

// ClientCount returns the number of currently connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
