package notifyclient

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

type joinMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type pushEnvelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Feed keeps a websocket connection to the realtime gateway and folds
// incoming notification events into the context. When the connection drops
// it reconnects, rejoins the user's room, and refreshes the context to
// recover anything missed while offline. Without a reachable gateway the
// context still works in pull-only mode via Refresh.
type Feed struct {
	URL     string // ws:// or wss:// endpoint
	Token   string
	UserID  string
	Context *Context

	// ReconnectDelay is the pause between dial attempts. Zero means 5s.
	ReconnectDelay time.Duration

	refreshFailures atomic.Uint64
}

func NewFeed(url, token, userID string, notificationContext *Context) *Feed {
	return &Feed{
		URL:     url,
		Token:   token,
		UserID:  userID,
		Context: notificationContext,
	}
}

// Run blocks until ctx is cancelled, maintaining the connection.
func (f *Feed) Run(ctx context.Context) {
	delay := f.ReconnectDelay
	if delay <= 0 {
		delay = 5 * time.Second
	}

	for {
		if ctx.Err() != nil {
			return
		}

		if err := f.connectAndRead(ctx); err != nil && ctx.Err() != nil {
			return
		}

		// After any disconnect the durable store may hold events the
		// connection missed.
		if err := f.Context.Refresh(ctx); err != nil && ctx.Err() == nil {
			f.refreshFailures.Add(1)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// RefreshFailures counts post-disconnect refreshes that failed. A growing
// value means reconnects are not recovering events missed while offline and
// the context may be stale.
func (f *Feed) RefreshFailures() uint64 {
	return f.refreshFailures.Load()
}

func (f *Feed) connectAndRead(ctx context.Context) error {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+f.Token)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, f.URL, header)
	if err != nil {
		return err
	}
	defer conn.Close()

	joinData, err := json.Marshal(map[string]string{"user_id": f.UserID})
	if err != nil {
		return err
	}
	if err := conn.WriteJSON(joinMessage{Action: "join", Data: joinData}); err != nil {
		return err
	}

	// The watcher must not outlive this connection; done releases it so a
	// long session does not accumulate one blocked goroutine per reconnect.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var envelope pushEnvelope
		if err := conn.ReadJSON(&envelope); err != nil {
			return err
		}
		if envelope.Event != "notification" {
			continue
		}

		var n Notification
		if err := json.Unmarshal(envelope.Payload, &n); err != nil {
			continue
		}
		f.Context.HandlePush(n)
	}
}
