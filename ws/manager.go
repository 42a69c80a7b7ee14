package ws

import (
	"sync"

	"eventomir_backend/internal/logger"
)

// Manager tracks live connections and the per-user rooms they have joined.
// A room holds every open connection of one user, so a user with two tabs
// receives an event on both.
type Manager struct {
	clients    map[string]*Client          // connection id -> client
	rooms      map[string]map[*Client]bool // user id -> connections in the room
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (manager *Manager) Run() {
	for {
		select {
		case client := <-manager.register:
			manager.addClient(client)
		case client := <-manager.unregister:
			manager.removeClient(client)
		}
	}
}

func (manager *Manager) addClient(client *Client) {
	manager.mu.Lock()
	manager.clients[client.ID] = client
	manager.mu.Unlock()
	logger.Debug("websocket client connected", "conn_id", client.ID, "user_id", client.UserID)
}

func (manager *Manager) removeClient(client *Client) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if _, ok := manager.clients[client.ID]; !ok {
		return
	}
	delete(manager.clients, client.ID)

	if room, ok := manager.rooms[client.UserID]; ok {
		delete(room, client)
		if len(room) == 0 {
			delete(manager.rooms, client.UserID)
		}
	}

	close(client.Send)
	logger.Debug("websocket client disconnected", "conn_id", client.ID, "user_id", client.UserID)
}

// Join adds the connection to its user's room. Joining twice is a no-op.
func (manager *Manager) Join(client *Client) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	room, ok := manager.rooms[client.UserID]
	if !ok {
		room = make(map[*Client]bool)
		manager.rooms[client.UserID] = room
	}
	room[client] = true
}

// EmitToUser pushes an event to every connection in the user's room.
// Delivery is best-effort: an empty room or a saturated connection drops
// the event without error, and the durable store covers the gap. Events
// sent to one connection arrive in the order they were emitted.
func (manager *Manager) EmitToUser(userID string, event interface{}) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	room, ok := manager.rooms[userID]
	if !ok {
		return
	}

	for client := range room {
		select {
		case client.Send <- event:
		default:
			logger.Warn("websocket send buffer full, dropping event", "conn_id", client.ID, "user_id", userID)
		}
	}
}

// ClientCount returns the number of open connections.
func (manager *Manager) ClientCount() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.clients)
}

// IsUserConnected reports whether the user has at least one joined connection.
func (manager *Manager) IsUserConnected(userID string) bool {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.rooms[userID]) > 0
}
