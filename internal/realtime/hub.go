// Package realtime fans order-board snapshots out to kitchen, bar and waiter
// displays over WebSocket. Subscribers are grouped into per-restaurant rooms;
// every publish is a full-state snapshot, so a slow or reconnecting display
// only ever needs the latest message.
package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Event is a single broadcast message.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type restaurantEvent struct {
	restaurantID uuid.UUID
	event        Event
}

// Hub maintains the set of connected clients and routes events to the room
// of the restaurant they belong to.
type Hub struct {
	rooms map[uuid.UUID]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *restaurantEvent

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *restaurantEvent, 256),
	}
}

// Run processes registrations and broadcasts until ctx is cancelled.
// Call as a goroutine: go hub.Run(ctx)
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.restaurantID] == nil {
				h.rooms[client.restaurantID] = make(map[*Client]bool)
			}
			h.rooms[client.restaurantID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.dropLocked(client.restaurantID, client)
			h.mu.Unlock()

		case ev := <-h.broadcast:
			message, err := json.Marshal(ev.event)
			if err != nil {
				log.Error().Err(err).Str("type", ev.event.Type).Msg("hub: failed to marshal event")
				continue
			}

			h.mu.Lock()
			for client := range h.rooms[ev.restaurantID] {
				select {
				case client.send <- message:
				default:
					// Client's send buffer is full — drop the connection
					h.dropLocked(ev.restaurantID, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// dropLocked removes a client and cleans up its room when empty.
// Callers must hold h.mu.
func (h *Hub) dropLocked(restaurantID uuid.UUID, client *Client) {
	clients, ok := h.rooms[restaurantID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.rooms, restaurantID)
	}
}

// Broadcast sends an event to every client subscribed to the restaurant.
func (h *Hub) Broadcast(restaurantID uuid.UUID, event Event) {
	h.broadcast <- &restaurantEvent{restaurantID: restaurantID, event: event}
}
