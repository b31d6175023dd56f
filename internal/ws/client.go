package ws

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"lending_backend/internal/domain"
	"lending_backend/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 30 * time.Second
	pingPeriod   = 25 * time.Second
	snapshotWait = 10 * time.Second
)

// Client is one live dashboard connection
type Client struct {
	User *domain.User
	Conn *websocket.Conn
	Hub  *Hub

	done chan struct{}
	last []byte
}

func NewClient(user *domain.User, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		User: user,
		Conn: conn,
		Hub:  hub,
		done: make(chan struct{}),
	}
}

// Run serves the connection until the peer leaves or the hub shuts down
func (c *Client) Run(ctx context.Context) {
	if !c.Hub.register(c) {
		c.closeWith(websocket.CloseGoingAway)
		return
	}
	defer c.Hub.unregister(c)

	go c.readPump()
	c.writePump(ctx)
}

// read: clients only send control frames, anything else is discarded
func (c *Client) readPump() {
	defer close(c.done)

	c.Conn.SetReadLimit(4096)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

// write
func (c *Client) writePump(ctx context.Context) {
	log := logger.WithContext(ctx).With("user_id", c.User.ID)
	push := time.NewTicker(c.Hub.interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		push.Stop()
		ping.Stop()
		_ = c.Conn.Close()
	}()

	if err := c.push(ctx); err != nil {
		log.Debug("ws write failed", "error", err)
		return
	}

	for {
		select {
		case <-push.C:
			if err := c.push(ctx); err != nil {
				log.Debug("ws write failed", "error", err)
				return
			}
		case <-ping.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		case <-c.Hub.done:
			c.closeWith(websocket.CloseGoingAway)
			return
		}
	}
}

// push sends the current snapshot unless it equals the last one sent.
// A failed snapshot is reported to the client and the connection stays open.
func (c *Client) push(ctx context.Context) error {
	sctx, cancel := context.WithTimeout(ctx, snapshotWait)
	frame, err := c.Hub.snapshotFrame(sctx, c.User)
	cancel()
	if err != nil {
		logger.WithContext(ctx).Warn("dashboard snapshot for ws failed", "user_id", c.User.ID, "error", err)
		msg, _ := json.Marshal(Message{Type: MsgError, Data: ErrorPayload{Message: "dashboard unavailable"}})
		return c.write(msg)
	}
	if bytes.Equal(frame, c.last) {
		return nil
	}
	if err := c.write(frame); err != nil {
		return err
	}
	c.last = frame
	FramesSent.Inc()
	return nil
}

func (c *Client) write(msg []byte) error {
	c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.Conn.WriteMessage(websocket.TextMessage, msg)
}

func (c *Client) closeWith(code int) {
	msg := websocket.FormatCloseMessage(code, "")
	_ = c.Conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	_ = c.Conn.Close()
}
