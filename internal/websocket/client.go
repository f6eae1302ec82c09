package websocket

import (
	"context"
	"encoding/json"
	"time"

	ws "github.com/coder/websocket"
)

const pingInterval = 30 * time.Second

// Client bridges one WebSocket connection to a household subscription.
type Client struct {
	hub  *Hub
	conn *ws.Conn
}

// NewClient creates a Client for the given hub and connection.
func NewClient(hub *Hub, conn *ws.Conn) *Client {
	return &Client{hub: hub, conn: conn}
}

// Run subscribes to the household and pumps events to the connection until
// the connection drops, the subscription is pruned, or ctx is cancelled.
func (c *Client) Run(ctx context.Context, householdID int64) {
	sub := c.hub.Subscribe(householdID)
	defer sub.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go c.readPump(ctx, cancel)
	c.writePump(ctx, sub)
}

// readPump reads and discards incoming messages; the stream is one-way.
// It cancels the client on connection close.
func (c *Client) readPump(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := c.conn.Read(ctx); err != nil {
			return
		}
	}
}

// writePump drains the subscription and writes events to the WebSocket,
// pinging periodically to detect stale connections.
func (c *Client) writePump(ctx context.Context, sub *Subscription) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				// Hub dropped us; the client must reconnect and re-fetch.
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			if err := c.conn.Write(ctx, ws.MessageText, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.Ping(ctx); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
