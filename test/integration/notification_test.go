package integration_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"eventomir_backend/internal/models"
	"eventomir_backend/test/helpers"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notificationList struct {
	Notifications []struct {
		ID      string `json:"id"`
		UserID  string `json:"user_id"`
		Type    string `json:"type"`
		Title   string `json:"title"`
		IsRead  bool   `json:"is_read"`
		Message string `json:"message"`
	} `json:"notifications"`
	Total int64 `json:"total"`
}

func broadcastTo(t *testing.T, ts *helpers.TestServer, adminToken string, userIDs []string, title string) {
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/admin/notifications/broadcast", adminToken, map[string]interface{}{
		"user_ids": userIDs,
		"title":    title,
		"message":  "integration test message",
	})
	require.Equal(t, http.StatusAccepted, res.StatusCode, "Broadcast must be accepted. Response: "+body)
}

func unreadCount(t *testing.T, ts *helpers.TestServer, token string) int64 {
	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/notifications/unread-count", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var payload struct {
		UnreadCount int64 `json:"unread_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	return payload.UnreadCount
}

func TestNotificationReadStateLifecycle(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, ts.DB)
	userToken, user := helpers.CreateAndLoginCustomer(t, ts, ts.DB)
	otherToken, _ := helpers.CreateAndLoginCustomer(t, ts, ts.DB)

	broadcastTo(t, ts, adminToken, []string{user.ID}, "First")
	broadcastTo(t, ts, adminToken, []string{user.ID}, "Second")

	assert.EqualValues(t, 2, unreadCount(t, ts, userToken))
	assert.Zero(t, unreadCount(t, ts, otherToken), "other users' counters stay untouched")

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/notifications", userToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var list notificationList
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	require.Len(t, list.Notifications, 2)
	assert.Equal(t, "Second", list.Notifications[0].Title, "listing is newest first")

	notificationID := list.Notifications[0].ID

	// Mark one read, twice; the second call is an idempotent success and
	// keeps the original read timestamp.
	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/notifications/"+notificationID+"/read", userToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var afterFirst models.Notification
	require.NoError(t, ts.DB.First(&afterFirst, "id = ?", notificationID).Error)
	require.NotNil(t, afterFirst.ReadAt)

	time.Sleep(10 * time.Millisecond)
	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/notifications/"+notificationID+"/read", userToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var afterSecond models.Notification
	require.NoError(t, ts.DB.First(&afterSecond, "id = ?", notificationID).Error)
	require.NotNil(t, afterSecond.ReadAt)
	assert.True(t, afterSecond.ReadAt.Equal(*afterFirst.ReadAt), "re-marking must not move read_at")

	assert.EqualValues(t, 1, unreadCount(t, ts, userToken))

	// An unknown id is a 404, a foreign id is a 403.
	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/notifications/00000000-0000-0000-0000-000000000000/read", userToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/notifications/"+notificationID+"/read", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Read-all zeroes the counter.
	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/notifications/read-all", userToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Zero(t, unreadCount(t, ts, userToken))

	// Unread filter now returns nothing.
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/notifications?unread_only=true", userToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	list = notificationList{}
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	assert.Empty(t, list.Notifications)
}

func dialWS(t *testing.T, ts *helpers.TestServer, token string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.Server.URL, "http") + "/ws"
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err, "websocket dial must succeed")
	return conn
}

func joinRoom(t *testing.T, conn *websocket.Conn, userID string) {
	t.Helper()
	err := conn.WriteJSON(map[string]interface{}{
		"action": "join",
		"data":   map[string]string{"user_id": userID},
	})
	require.NoError(t, err)
	// Give the server a moment to process the join before events flow.
	time.Sleep(100 * time.Millisecond)
}

type pushedEvent struct {
	Event   string `json:"event"`
	Payload struct {
		ID     string `json:"id"`
		UserID string `json:"user_id"`
		Type   string `json:"type"`
		Title  string `json:"title"`
	} `json:"payload"`
}

func readEvent(t *testing.T, conn *websocket.Conn) pushedEvent {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var event pushedEvent
	require.NoError(t, conn.ReadJSON(&event))
	return event
}

func TestWebSocketRoomDelivery(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, ts.DB)
	tokenA, userA := helpers.CreateAndLoginCustomer(t, ts, ts.DB)
	tokenB, _ := helpers.CreateAndLoginCustomer(t, ts, ts.DB)

	// User A opens two tabs, user B one.
	connA1 := dialWS(t, ts, tokenA)
	defer connA1.Close()
	connA2 := dialWS(t, ts, tokenA)
	defer connA2.Close()
	connB := dialWS(t, ts, tokenB)
	defer connB.Close()

	joinRoom(t, connA1, userA.ID)
	joinRoom(t, connA2, userA.ID)

	broadcastTo(t, ts, adminToken, []string{userA.ID}, "Room event")

	eventA1 := readEvent(t, connA1)
	eventA2 := readEvent(t, connA2)
	assert.Equal(t, "notification", eventA1.Event)
	assert.Equal(t, "Room event", eventA1.Payload.Title)
	assert.Equal(t, eventA1.Payload.ID, eventA2.Payload.ID, "both connections get the same stored notification")
	assert.NotEmpty(t, eventA1.Payload.ID, "the live payload carries the durable id")

	// User B never joined a room, so nothing arrives.
	connB.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var stray pushedEvent
	err := connB.ReadJSON(&stray)
	assert.Error(t, err, "user B must not receive user A's event")

	// Delivery was best-effort on top of the durable write.
	assert.EqualValues(t, 1, unreadCount(t, ts, tokenA))
}

func TestWebSocketRejectsForeignRoomJoin(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	tokenA, _ := helpers.CreateAndLoginCustomer(t, ts, ts.DB)
	_, userB := helpers.CreateAndLoginCustomer(t, ts, ts.DB)

	conn := dialWS(t, ts, tokenA)
	defer conn.Close()

	err := conn.WriteJSON(map[string]interface{}{
		"action": "join",
		"data":   map[string]string{"user_id": userB.ID},
	})
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event struct {
		Event   string `json:"event"`
		Message string `json:"message"`
	}
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "error", event.Event)
}

func TestOfflineUserStillGetsStoredNotification(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, ts.DB)
	userToken, user := helpers.CreateAndLoginCustomer(t, ts, ts.DB)

	// No websocket connection at all; the push is silently dropped but the
	// record lands in the store.
	broadcastTo(t, ts, adminToken, []string{user.ID}, "While offline")

	assert.EqualValues(t, 1, unreadCount(t, ts, userToken))

	var stored models.Notification
	require.NoError(t, ts.DB.Where("user_id = ?", user.ID).First(&stored).Error)
	assert.Equal(t, "While offline", stored.Title)
	assert.False(t, stored.IsRead)
}

func TestBroadcastRequiresAdmin(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	userToken, user := helpers.CreateAndLoginCustomer(t, ts, ts.DB)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/admin/notifications/broadcast", userToken, map[string]interface{}{
		"user_ids": []string{user.ID},
		"title":    "Nope",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
