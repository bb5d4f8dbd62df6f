package websocket

import (
	"sync"

	gorilla "github.com/gorilla/websocket"
)

// Conn wraps a gorilla connection with a write lock. Gorilla allows only
// one concurrent writer per connection.
type Conn struct {
	mu sync.Mutex
	ws *gorilla.Conn
}

// NewConn wraps an upgraded connection.
func NewConn(ws *gorilla.Conn) *Conn {
	return &Conn{ws: ws}
}

// ReadMessage reads and decodes the next client frame.
func (c *Conn) ReadMessage() (*ClientMessage, error) {
	var msg ClientMessage
	if err := c.ws.ReadJSON(&msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// WriteEvent sends a typed event frame.
func (c *Conn) WriteEvent(event string, data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(ServerMessage{Event: event, Data: data})
}

// WriteError sends an error frame without closing the connection.
func (c *Conn) WriteError(message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(ServerMessage{Event: EventError, Error: message})
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.ws.Close()
}
