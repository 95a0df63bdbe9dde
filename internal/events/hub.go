// Package events is the real-time fan-out layer: a hub of SSE clients
// grouped into rooms keyed by board id. Delivery is best-effort,
// at-most-once: sends never block, slow clients lose events, and there is
// no replay for reconnecting clients.
package events

import (
	"sync"
	"time"

	"github.com/borda-dev/borda/internal/logger"
	"github.com/google/uuid"
)

const (
	GroupsUpdated     = "groupsUpdated"
	ActivitiesUpdated = "activitiesUpdated"
)

// Event is the broadcast envelope. UserId tags the originating user so
// its own client can suppress a redundant self-refresh.
type Event struct {
	Type   string `json:"type"`
	Data   any    `json:"data"`
	UserId string `json:"userId"`
	Room   string `json:"room"`
}

// Client is one connected subscriber.
type Client struct {
	Id          string
	Room        string
	Events      chan Event
	Done        chan struct{}
	ConnectedAt time.Time
}

type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Client]struct{})}
}

// Connect registers a subscriber on the given room.
func (h *Hub) Connect(room string) *Client {
	client := &Client{
		Id:          uuid.NewString(),
		Room:        room,
		Events:      make(chan Event, 64),
		Done:        make(chan struct{}),
		ConnectedAt: time.Now(),
	}

	h.mu.Lock()
	clients, ok := h.rooms[room]
	if !ok {
		clients = make(map[*Client]struct{})
		h.rooms[room] = clients
	}
	clients[client] = struct{}{}
	total := len(clients)
	h.mu.Unlock()

	logger.Log.Info("sse client connected", "client_id", client.Id, "room", room, "room_clients", total)
	return client
}

// Disconnect removes the client and closes its channels. Safe to call once.
func (h *Hub) Disconnect(client *Client) {
	h.mu.Lock()
	clients, ok := h.rooms[client.Room]
	if ok {
		if _, member := clients[client]; !member {
			ok = false
		}
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.rooms, client.Room)
		}
	}
	h.mu.Unlock()

	if !ok {
		return
	}
	close(client.Done)
	close(client.Events)
	logger.Log.Info("sse client disconnected", "client_id", client.Id, "room", client.Room)
}

// Broadcast delivers the event to every subscriber of its room.
// Non-blocking sends: a client with a full buffer drops the event.
func (h *Hub) Broadcast(event Event) {
	var delivered, dropped int

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[event.Room] {
		select {
		case client.Events <- event:
			delivered++
		default:
			dropped++
			logger.Log.Warn("dropped event for slow client",
				"client_id", client.Id, "event_type", event.Type)
		}
	}

	logger.Log.Debug("event broadcast",
		"event_type", event.Type, "room", event.Room,
		"delivered", delivered, "dropped", dropped)
}

// RoomSize reports the current subscriber count of a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
