package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one live connection bound to a (room, name) session. Direct
// deliveries go through the buffered Send channel; WriteMessage drains it
// onto the wire.
type Client struct {
	conn      *websocket.Conn
	Send      chan *Event
	closeOnce sync.Once
	ID        string `json:"id"`
	Room      string `json:"room"`
	Name      string `json:"name"`
}

func NewClient(conn *websocket.Conn, id, room, name string) *Client {
	return &Client{
		conn: conn,
		Send: make(chan *Event, 64), // buffered to avoid dead-locks on slow clients
		ID:   id,
		Room: room,
		Name: name,
	}
}

// Deliver queues an event for this connection only. Drops the event when the
// buffer is full rather than blocking a broadcast on one slow client.
func (c *Client) Deliver(ev *Event) {
	select {
	case c.Send <- ev:
	default:
		log.Printf("ws send buffer full (client %s), dropping %s", c.ID, ev.Type)
	}
}

// CloseSend shuts the delivery channel; WriteMessage drains what is left and
// exits. Idempotent.
func (c *Client) CloseSend() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}

// ReadMessage pumps inbound frames into onText until the connection dies,
// then invokes onClose exactly once.
func (c *Client) ReadMessage(onText func(text string), onClose func()) {
	defer func() {
		onClose()
		_ = c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws read error (client %s): %v", c.ID, err)
			}
			break
		}

		// Frames are either {"data": "..."} or bare text.
		var in Inbound
		if err := json.Unmarshal(raw, &in); err != nil {
			in.Data = string(raw)
		}

		onText(in.Data)
	}
}

func (c *Client) WriteMessage() {
	defer func() {
		_ = c.conn.Close()
	}()

	for msg := range c.Send {
		if err := c.conn.WriteJSON(msg); err != nil {
			log.Printf("ws write error (client %s): %v", c.ID, err)
			break
		}
	}
}
