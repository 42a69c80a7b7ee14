package notifyclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// testGateway upgrades every request and hands the connection to serve. A
// serve that returns immediately drops the connection, forcing a reconnect.
func testGateway(t *testing.T, serve func(conn *websocket.Conn)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		serve(conn)
	}))
}

func gatewayURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met within " + timeout.String())
}

func TestFeedDeliversPushesToContext(t *testing.T) {
	payload, err := json.Marshal(Notification{ID: "n1", UserID: "user-1", Type: "system", Title: "live"})
	require.NoError(t, err)

	server := testGateway(t, func(conn *websocket.Conn) {
		var join joinMessage
		if err := conn.ReadJSON(&join); err != nil {
			return
		}
		if err := conn.WriteJSON(pushEnvelope{Event: "notification", Payload: payload}); err != nil {
			return
		}
		// Hold the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
	defer server.Close()

	c := readyContext(t, &fakeStore{})
	feed := NewFeed(gatewayURL(server), "token", "user-1", c)
	feed.ReconnectDelay = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go feed.Run(ctx)

	waitFor(t, 3*time.Second, func() bool { return c.UnreadCount() == 1 })
	notifications := c.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, "n1", notifications[0].ID)
}

func TestFeedReconnectDoesNotAccumulateGoroutines(t *testing.T) {
	server := testGateway(t, func(conn *websocket.Conn) {
		// Drop straight away so the feed reconnects in a tight loop.
	})
	defer server.Close()

	c := readyContext(t, &fakeStore{})
	feed := NewFeed(gatewayURL(server), "token", "user-1", c)
	feed.ReconnectDelay = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	before := runtime.NumGoroutine()
	go feed.Run(ctx)
	time.Sleep(500 * time.Millisecond)
	during := runtime.NumGoroutine()

	assert.Less(t, during, before+20, "reconnects of one feed must not leave goroutines behind")
}

func TestFeedRefreshRecoversMissedEvents(t *testing.T) {
	server := testGateway(t, func(conn *websocket.Conn) {})
	defer server.Close()

	store := &fakeStore{
		notifications: []Notification{storedNotification("missed", false, time.Minute)},
		unread:        1,
	}
	c := NewContext(store)
	feed := NewFeed(gatewayURL(server), "token", "user-1", c)
	feed.ReconnectDelay = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go feed.Run(ctx)

	// The post-disconnect refresh seeds the context from the durable store.
	waitFor(t, 3*time.Second, func() bool {
		return c.State() == StateReady && c.UnreadCount() == 1
	})
	assert.Zero(t, feed.RefreshFailures())
}

func TestFeedCountsFailedPostDisconnectRefreshes(t *testing.T) {
	server := testGateway(t, func(conn *websocket.Conn) {})
	defer server.Close()

	store := &fakeStore{listErr: errors.New("store down")}
	c := NewContext(store)
	feed := NewFeed(gatewayURL(server), "token", "user-1", c)
	feed.ReconnectDelay = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go feed.Run(ctx)

	waitFor(t, 3*time.Second, func() bool { return feed.RefreshFailures() > 0 })
}
