// Package notifyclient maintains a client-side view of a user's
// notifications: a seeded list, an unread counter, and handlers for live
// pushes. The server store is the source of truth; this cache applies
// changes optimistically and reconciles on refresh.
package notifyclient

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"eventomir_backend/internal/services/dto"

	"github.com/google/uuid"
)

// State is the lifecycle of the notification context.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Notification is the client-side shape of a stored notification.
type Notification struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data,omitempty"`
	IsRead    bool            `json:"is_read"`
	ReadAt    *time.Time      `json:"read_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// DecodedData interprets the Data blob according to the notification type,
// returning one of the typed payloads or a generic map for unknown kinds.
func (n Notification) DecodedData() interface{} {
	return dto.DecodeNotificationData(n.Type, n.Data)
}

// Store is the durable backend the context seeds from and writes through to.
type Store interface {
	// List returns the user's notifications, newest first, plus the
	// server's unread count.
	List(ctx context.Context) ([]Notification, int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}

// Context caches one user's notifications. All methods are safe for
// concurrent use.
type Context struct {
	store Store

	mu            sync.Mutex
	state         State
	session       uint64
	notifications []Notification
	byID          map[string]int
	unread        int64
}

func NewContext(store Store) *Context {
	return &Context{
		store: store,
		byID:  make(map[string]int),
	}
}

// Start seeds the cache from the store. A Reset issued while the fetch is in
// flight discards the stale result.
func (c *Context) Start(ctx context.Context) error {
	c.mu.Lock()
	c.state = StateLoading
	session := c.session
	c.mu.Unlock()

	notifications, unread, err := c.store.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != session {
		// The context was reset while loading; the response belongs to a
		// previous identity.
		return nil
	}
	if err != nil {
		c.state = StateUninitialized
		return err
	}

	c.replaceLocked(notifications, unread)
	c.state = StateReady
	return nil
}

// HandlePush folds one live event into the cache. Partial payloads are
// normalized rather than rejected: a missing id gets a local one and a
// missing timestamp becomes now. A push whose id is already cached is
// ignored, so a refresh racing a push cannot double-count.
func (c *Context) HandlePush(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReady {
		// The seeding fetch will include this notification.
		return
	}

	if n.ID == "" {
		n.ID = "local-" + uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	if _, exists := c.byID[n.ID]; exists {
		return
	}

	c.notifications = append([]Notification{n}, c.notifications...)
	c.reindexLocked()
	if !n.IsRead {
		c.unread++
	}
}

// MarkAsRead marks one notification read locally and writes through to the
// store. The local change is optimistic and is not reverted on a write
// failure; the next refresh reconciles. Marking an already-read
// notification again is a no-op.
func (c *Context) MarkAsRead(ctx context.Context, id string) error {
	c.mu.Lock()
	idx, exists := c.byID[id]
	if exists && !c.notifications[idx].IsRead {
		now := time.Now()
		c.notifications[idx].IsRead = true
		c.notifications[idx].ReadAt = &now
		if c.unread > 0 {
			c.unread--
		}
	}
	c.mu.Unlock()

	if !exists {
		return c.store.MarkRead(ctx, id)
	}
	if isLocalID(id) {
		// Locally-minted ids do not exist server-side.
		return nil
	}
	return c.store.MarkRead(ctx, id)
}

// MarkAllAsRead zeroes the unread counter locally and writes through.
func (c *Context) MarkAllAsRead(ctx context.Context) error {
	c.mu.Lock()
	now := time.Now()
	for i := range c.notifications {
		if !c.notifications[i].IsRead {
			c.notifications[i].IsRead = true
			c.notifications[i].ReadAt = &now
		}
	}
	c.unread = 0
	c.mu.Unlock()

	return c.store.MarkAllRead(ctx)
}

// Refresh re-fetches the store and merges it with the local view. The server
// wins on membership, but a notification read locally stays read even when
// the server has not caught up yet. Entries with local ids survive until the
// server version of the same event arrives under its real id.
func (c *Context) Refresh(ctx context.Context) error {
	c.mu.Lock()
	session := c.session
	c.mu.Unlock()

	notifications, unread, err := c.store.List(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != session {
		return nil
	}

	merged := make([]Notification, 0, len(notifications))
	for _, n := range notifications {
		if idx, ok := c.byID[n.ID]; ok && c.notifications[idx].IsRead && !n.IsRead {
			n.IsRead = true
			n.ReadAt = c.notifications[idx].ReadAt
			if unread > 0 {
				unread--
			}
		}
		merged = append(merged, n)
	}

	serverIDs := make(map[string]bool, len(merged))
	for _, n := range merged {
		serverIDs[n.ID] = true
	}
	for _, n := range c.notifications {
		if isLocalID(n.ID) && !serverIDs[n.ID] {
			merged = append(merged, n)
			if !n.IsRead {
				unread++
			}
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	c.replaceLocked(merged, unread)
	if c.state != StateReady {
		c.state = StateReady
	}
	return nil
}

// Reset clears the cache, typically on logout or account switch. Any
// in-flight fetch started before the reset is discarded when it lands.
func (c *Context) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session++
	c.state = StateUninitialized
	c.notifications = nil
	c.byID = make(map[string]int)
	c.unread = 0
}

func (c *Context) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Context) UnreadCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unread
}

// Notifications returns a snapshot, newest first.
func (c *Context) Notifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := make([]Notification, len(c.notifications))
	copy(snapshot, c.notifications)
	return snapshot
}

func (c *Context) replaceLocked(notifications []Notification, unread int64) {
	if unread < 0 {
		unread = 0
	}
	c.notifications = notifications
	c.unread = unread
	c.reindexLocked()
}

func (c *Context) reindexLocked() {
	c.byID = make(map[string]int, len(c.notifications))
	for i, n := range c.notifications {
		c.byID[n.ID] = i
	}
}

func isLocalID(id string) bool {
	return len(id) > 6 && id[:6] == "local-"
}
