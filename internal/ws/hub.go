package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"

	"tasktracker/internal/models"
)

// Event is pushed to a task owner's open connections whenever one of their
// tasks changes.
type Event struct {
	Action string      `json:"action"` // created, updated, deleted
	Task   models.Task `json:"task"`
}

// conn is the subset of *websocket.Conn the hub writes to.
type conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client represents one authenticated WebSocket connection.
type Client struct {
	userID int
	conn   conn
	mu     sync.Mutex
}

func NewClient(userID int, c *websocket.Conn) *Client {
	return &Client{userID: userID, conn: c}
}

type envelope struct {
	userID int
	data   []byte
}

// Hub manages WebSocket connections. Events are delivered only to
// connections belonging to the event's owner, so the ownership invariant
// holds on the push path as well.
type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	events     chan envelope
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		events:     make(chan envelope, 64),
	}
}

// Publish queues an event for ownerID's connections. Delivery is best
// effort: if the queue is full the event is dropped rather than blocking
// the request that produced it.
func (h *Hub) Publish(ownerID int, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	select {
	case h.events <- envelope{userID: ownerID, data: data}:
	default:
	}
}

// Run owns the client map; it is the only goroutine that touches it.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				client.conn.Close()
			}
		case ev := <-h.events:
			for client := range h.Clients {
				if client.userID != ev.userID {
					continue
				}
				client.mu.Lock()
				err := client.conn.WriteMessage(websocket.TextMessage, ev.data)
				client.mu.Unlock()
				if err != nil {
					delete(h.Clients, client)
					client.conn.Close()
				}
			}
		}
	}
}
