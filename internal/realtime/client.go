package realtime

import (
	"github.com/gorilla/websocket"
)

// Client represents a single open websocket connection for a user.
type Client struct {
	userID   uint
	registry *Registry
	conn     *websocket.Conn
	send     chan []byte
}

// readPump consumes inbound frames until the connection drops for any reason,
// then deregisters the client. The channel is push-only; inbound payloads are
// discarded, but reading is what surfaces close and ping/pong traffic.
func (c *Client) readPump() {
	defer func() {
		c.registry.remove(c.userID, c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(1 << 16)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) writePump() {
	defer func() { _ = c.conn.Close() }()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}
