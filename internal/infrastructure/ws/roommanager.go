package ws

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/parleychat/parley/internal/infrastructure/metrics"
)

// RoomManager is the room-to-connection registry used for broadcast fan-out.
// It knows nothing about room state; it only tracks which live connections
// belong to which delivery group.
type RoomManager struct {
	mu       sync.RWMutex
	rooms    map[string]map[*Client]struct{}
	upgrader websocket.Upgrader
}

func NewRoomManager() *RoomManager {
	return &RoomManager{
		rooms: make(map[string]map[*Client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // CORS policy is enforced by the HTTP middleware
			},
		},
	}
}

func (rm *RoomManager) Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return rm.upgrader.Upgrade(w, r, nil)
}

// AddClient joins the client to its room's delivery group.
func (rm *RoomManager) AddClient(c *Client) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	group, ok := rm.rooms[c.Room]
	if !ok {
		group = make(map[*Client]struct{})
		rm.rooms[c.Room] = group
	}
	group[c] = struct{}{}

	metrics.LiveConnections.Inc()
}

// RemoveClient drops the client from its delivery group and closes its send
// channel. Safe to call for clients that never joined.
func (rm *RoomManager) RemoveClient(c *Client) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	group, ok := rm.rooms[c.Room]
	if !ok {
		return
	}
	if _, joined := group[c]; !joined {
		return
	}

	delete(group, c)
	if len(group) == 0 {
		delete(rm.rooms, c.Room)
	}
	c.CloseSend()

	metrics.LiveConnections.Dec()
}

// Broadcast delivers the event to every connection in its room. Delivery is
// synchronous with respect to queueing: once Broadcast returns, the event
// sits behind any deliveries already queued per client, so each connection
// observes events in the order they were issued.
func (rm *RoomManager) Broadcast(ev *Event) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	for c := range rm.rooms[ev.RoomID] {
		c.Deliver(ev)
	}
}

// ClientCount reports the number of live connections in a room.
func (rm *RoomManager) ClientCount(room string) int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	return len(rm.rooms[room])
}
