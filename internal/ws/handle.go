package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Handle is a live bidirectional connection to one connected client instance.
// A push may fail at any moment once the peer goes away; callers treat such
// failures as best-effort delivery losses, never as request errors.
type Handle interface {
	WriteJSON(v any) error
	Close() error
}

const writeWait = 10 * time.Second

// Conn wraps a gorilla websocket connection with a write lock so presence
// broadcasts and message delivery can push from different goroutines.
type Conn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

var _ Handle = (*Conn)(nil)

func (c *Conn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(v)
}

func (c *Conn) Close() error {
	return c.ws.Close()
}
