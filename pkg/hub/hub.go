package hub

import (
	"encoding/json"
	"sync"

	"github.com/trioptic/go-skull/internal/log"
)

// Hub tracks connected clients for one stream and broadcasts to all of
// them. A single goroutine owns the client set; everything else talks to
// it over channels.
type Hub struct {
	// name identifies the stream in logs ("state", "frames/left", ...).
	name string

	clients    map[string]*Client
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu       sync.RWMutex
	stopOnce sync.Once
}

// New creates a hub for the named stream.
func New(name string) *Hub {
	return &Hub{
		name:       name,
		clients:    make(map[string]*Client),
		broadcast:  make(chan Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run owns the client set until Stop. Call it in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for id, c := range h.clients {
				close(c.send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.id] = c
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("client connected", "stream", h.name, "client", c.id, "total", count)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c.id]; ok {
				delete(h.clients, c.id)
				close(c.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("client disconnected", "stream", h.name, "client", c.id, "total", count)

		case msg := <-h.broadcast:
			h.mu.Lock()
			for id, c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow consumer. Drop the client, not the frame rate.
					close(c.send)
					delete(h.clients, id)
					log.Warn("dropped slow client", "stream", h.name, "client", id)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Stop shuts down the hub and disconnects all clients.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Broadcast queues a message for all clients. Drops the message if the
// broadcast buffer is full.
func (h *Hub) Broadcast(msg Message) {
	select {
	case h.broadcast <- msg:
	default:
		log.Warn("broadcast buffer full, dropping message", "stream", h.name)
	}
}

// BroadcastJSON encodes and broadcasts v.
func (h *Hub) BroadcastJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Broadcast(NewJSONMessage(data))
	return nil
}

// BroadcastBinary broadcasts raw bytes, e.g. a JPEG eye frame.
func (h *Hub) BroadcastBinary(data []byte) {
	h.Broadcast(NewBinaryMessage(data))
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
