// Package push maintains the client side of the server's push channel: a
// single websocket connection carrying named events ("newAlert",
// "cameraStatusUpdated") as JSON envelopes.
package push

import (
	"encoding/json"
	"net/url"
	"strings"
	"sync"

	"github.com/cyclopcam/logs"
	"github.com/gorilla/websocket"
)

// Handler receives the raw payload of one push event.
type Handler func(data json.RawMessage)

// envelope is the wire format: one JSON object per websocket text message.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Channel holds at most one live connection to the push endpoint and
// dispatches incoming events to handlers registered by name.
//
// There is deliberately no reconnect policy and no buffering: if the
// connection drops, handlers simply stop firing until Connect is called
// again. Whatever delivery guarantees exist come from the transport itself.
type Channel struct {
	log logs.Log
	url string

	mu       sync.Mutex
	conn     *websocket.Conn
	handlers map[string]Handler
}

// New builds a channel for the API at baseURL. The http(s) scheme is swapped
// for ws(s); the push endpoint lives at /ws.
func New(log logs.Log, baseURL string) *Channel {
	return &Channel{
		log:      log,
		url:      wsURL(baseURL),
		handlers: map[string]Handler{},
	}
}

func wsURL(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}
	if u.Scheme == "https" {
		u.Scheme = "wss"
	} else {
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	return u.String()
}

// Connect opens the websocket connection if one is not already open. Calling
// Connect on a live channel returns the existing connection unchanged.
func (c *Channel) Connect() (*websocket.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return c.conn, nil
	}

	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.log.Infof("Push channel connected to %v", c.url)

	go c.readLoop(conn)
	return conn, nil
}

// Disconnect tears down and discards the connection. A later Connect dials a
// fresh one.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return
	}
	c.conn.Close()
	c.conn = nil
	c.log.Infof("Push channel disconnected")
}

// On registers the handler for a named event, replacing any previous one.
func (c *Channel) On(event string, handler Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = handler
}

// Off removes the handler for a named event.
func (c *Channel) Off(event string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.handlers, event)
}

// Emit sends one message up the channel. When disconnected this is a silent
// no-op, matching the at-most-one-connection contract.
func (c *Channel) Emit(event string, payload any) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return conn.WriteJSON(envelope{Event: event, Data: data})
}

// readLoop dispatches incoming envelopes until the connection dies. It only
// clears c.conn if it still owns it; a Disconnect/Connect cycle may already
// have replaced it.
func (c *Channel) readLoop(conn *websocket.Conn) {
	for {
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			c.mu.Lock()
			if c.conn == conn {
				c.conn = nil
			}
			c.mu.Unlock()
			c.log.Infof("Push channel closed: %v", err)
			return
		}

		c.mu.Lock()
		handler := c.handlers[env.Event]
		c.mu.Unlock()

		// Events nobody subscribed to are dropped.
		if handler != nil {
			handler(env.Data)
		}
	}
}
