package ws

import (
	"encoding/json"
	"time"

	"eventomir_backend/internal/logger"

	"github.com/gorilla/websocket"
)

type IncomingMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type JoinPayload struct {
	UserID string `json:"user_id"`
}

type ErrorEvent struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

// Client is one websocket connection. UserID comes from the authenticated
// session, never from the wire.
type Client struct {
	ID     string
	UserID string
	Conn   *websocket.Conn
	Send   chan interface{}

	Manager      *Manager
	pingInterval time.Duration
	readLimit    int64
}

func (c *Client) readPump() {
	defer func() {
		c.Manager.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.readLimit)
	c.Conn.SetReadDeadline(time.Now().Add(c.pingInterval * 2))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.pingInterval * 2))
		return nil
	})

	for {
		_, msgBytes, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("websocket read error", "conn_id", c.ID, "error", err)
			}
			break
		}

		var msg IncomingMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			logger.Debug("malformed websocket message", "conn_id", c.ID, "error", err)
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(c.pingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(msg); err != nil {
				logger.Debug("websocket write error", "conn_id", c.ID, "error", err)
				return
			}
		case <-ticker.C:
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg IncomingMessage) {
	switch msg.Action {

	case "join":
		var payload JoinPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			logger.Debug("invalid join payload", "conn_id", c.ID, "error", err)
			return
		}
		// A connection may only join its own room.
		if payload.UserID != c.UserID {
			c.trySend(&ErrorEvent{Event: "error", Message: "cannot join another user's room"})
			return
		}
		c.Manager.Join(c)

	default:
		logger.Debug("unhandled websocket action", "conn_id", c.ID, "action", msg.Action)
	}
}

func (c *Client) trySend(event interface{}) {
	select {
	case c.Send <- event:
	default:
	}
}
