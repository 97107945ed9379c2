package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Session binds a websocket connection to the tenant it authenticated as.
type Session struct {
	Conn     *websocket.Conn
	TenantID uuid.UUID
}

// Event is delivered only to connections of the owning tenant.
type Event struct {
	TenantID uuid.UUID
	Message  []byte
}

type Hub struct {
	clients    map[*websocket.Conn]uuid.UUID
	Register   chan Session
	Unregister chan *websocket.Conn
	Broadcast  chan Event
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]uuid.UUID),
		Register:   make(chan Session),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan Event),
	}
}

// Publish marshals the payload and queues it for the tenant's connections.
func (h *Hub) Publish(tenantID uuid.UUID, payload interface{}) {
	msg, err := json.Marshal(payload)
	if err != nil {
		log.Println("ws: failed to marshal event:", err)
		return
	}
	h.Broadcast <- Event{TenantID: tenantID, Message: msg}
}

func (h *Hub) Run() {
	for {
		select {
		case session := <-h.Register:
			h.mutex.Lock()
			h.clients[session.Conn] = session.TenantID
			h.mutex.Unlock()
			log.Println("New WS client connected for tenant", session.TenantID)

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case event := <-h.Broadcast:
			h.mutex.Lock()
			for conn, tenantID := range h.clients {
				if tenantID != event.TenantID {
					continue
				}
				if err := conn.WriteMessage(websocket.TextMessage, event.Message); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
