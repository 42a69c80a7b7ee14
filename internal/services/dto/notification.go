package dto

import "time"

// ---------------- Requests ----------------

type BroadcastNotificationRequest struct {
	UserIDs []string               `json:"user_ids" validate:"required,min=1"`
	Title   string                 `json:"title" validate:"required,max=100"`
	Message string                 `json:"message" validate:"omitempty,max=1000"`
	Data    map[string]interface{} `json:"data"`
}

// ---------------- Responses ----------------

type NotificationResponse struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	IsRead    bool                   `json:"is_read"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
	Total         int64                   `json:"total"`
	Page          int                     `json:"page"`
	PageSize      int                     `json:"page_size"`
}

// NotificationEvent is the live-channel envelope pushed to websocket rooms.
// Fields mirror NotificationResponse; clients must tolerate partial payloads
// and assign a local id/timestamp when these are missing.
type NotificationEvent struct {
	Event   string                `json:"event"` // always "notification"
	Payload *NotificationResponse `json:"payload"`
}
