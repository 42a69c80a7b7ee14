package ws

import (
	"net/http"
	"time"

	"eventomir_backend/internal/config"
	"eventomir_backend/internal/logger"
	"eventomir_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	Manager *Manager
	cfg     *config.Config
}

func NewHandler(manager *Manager, cfg *config.Config) *Handler {
	return &Handler{Manager: manager, cfg: cfg}
}

// ServeWS upgrades the request and starts the connection's pumps. The route
// sits behind the auth middleware, so the user identity is already verified.
func (h *Handler) ServeWS(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "user_id", userID, "error", err)
		return
	}

	client := &Client{
		ID:           uuid.NewString(),
		UserID:       userID,
		Conn:         conn,
		Send:         make(chan interface{}, h.cfg.Realtime.SendBufferSize),
		Manager:      h.Manager,
		pingInterval: time.Duration(h.cfg.Realtime.PingIntervalSec) * time.Second,
		readLimit:    int64(h.cfg.Realtime.ReadLimitBytes),
	}

	h.Manager.register <- client

	go client.readPump()
	go client.writePump()
}
