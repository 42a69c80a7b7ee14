package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(manager *Manager, connID, userID string, buffer int) *Client {
	return &Client{
		ID:      connID,
		UserID:  userID,
		Send:    make(chan interface{}, buffer),
		Manager: manager,
	}
}

func drain(c *Client) []interface{} {
	var events []interface{}
	for {
		select {
		case event := <-c.Send:
			events = append(events, event)
		default:
			return events
		}
	}
}

func TestEmitToUserReachesEveryRoomConnection(t *testing.T) {
	manager := NewManager()

	connA := newTestClient(manager, "conn-a", "user-1", 8)
	connB := newTestClient(manager, "conn-b", "user-1", 8)
	connC := newTestClient(manager, "conn-c", "user-2", 8)

	for _, c := range []*Client{connA, connB, connC} {
		manager.addClient(c)
		manager.Join(c)
	}

	manager.EmitToUser("user-1", "hello")

	assert.Len(t, drain(connA), 1)
	assert.Len(t, drain(connB), 1)
	assert.Empty(t, drain(connC))
}

func TestEmitToOfflineUserIsSilent(t *testing.T) {
	manager := NewManager()

	assert.NotPanics(t, func() {
		manager.EmitToUser("nobody-home", "hello")
	})
}

func TestJoinIsIdempotent(t *testing.T) {
	manager := NewManager()

	conn := newTestClient(manager, "conn-a", "user-1", 8)
	manager.addClient(conn)
	manager.Join(conn)
	manager.Join(conn)

	manager.EmitToUser("user-1", "once")

	assert.Len(t, drain(conn), 1, "a twice-joined connection must receive each event once")
}

func TestEmitPreservesPerConnectionOrder(t *testing.T) {
	manager := NewManager()

	conn := newTestClient(manager, "conn-a", "user-1", 8)
	manager.addClient(conn)
	manager.Join(conn)

	for _, event := range []string{"first", "second", "third"} {
		manager.EmitToUser("user-1", event)
	}

	events := drain(conn)
	require.Len(t, events, 3)
	assert.Equal(t, "first", events[0])
	assert.Equal(t, "second", events[1])
	assert.Equal(t, "third", events[2])
}

func TestFullSendBufferDropsWithoutBlocking(t *testing.T) {
	manager := NewManager()

	conn := newTestClient(manager, "conn-a", "user-1", 1)
	manager.addClient(conn)
	manager.Join(conn)

	manager.EmitToUser("user-1", "kept")
	manager.EmitToUser("user-1", "dropped")

	events := drain(conn)
	require.Len(t, events, 1)
	assert.Equal(t, "kept", events[0])
}

func TestDisconnectRemovesConnectionFromRoom(t *testing.T) {
	manager := NewManager()

	connA := newTestClient(manager, "conn-a", "user-1", 8)
	connB := newTestClient(manager, "conn-b", "user-1", 8)
	for _, c := range []*Client{connA, connB} {
		manager.addClient(c)
		manager.Join(c)
	}

	manager.removeClient(connA)

	assert.True(t, manager.IsUserConnected("user-1"), "user-1 still has a live connection")
	manager.EmitToUser("user-1", "after-disconnect")
	assert.Len(t, drain(connB), 1)

	manager.removeClient(connB)
	assert.False(t, manager.IsUserConnected("user-1"))
	assert.Zero(t, manager.ClientCount())
	assert.NotPanics(t, func() {
		manager.EmitToUser("user-1", "into-the-void")
	})
}

func TestRemoveUnknownClientIsNoOp(t *testing.T) {
	manager := NewManager()
	conn := newTestClient(manager, "conn-a", "user-1", 8)

	assert.NotPanics(t, func() {
		manager.removeClient(conn)
	})
}
