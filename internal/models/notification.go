package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is the durable record behind the in-app notification feed.
// UserID never changes after creation and IsRead only transitions
// false -> true.
type Notification struct {
	BaseModel
	UserID  string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Type    string         `gorm:"not null" json:"type"` // "booking_request", "moderation_result", ...
	Title   string         `gorm:"not null" json:"title"`
	Message string         `json:"message"`
	Data    datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"` // {"booking_id": "...", ...}
	IsRead  bool           `gorm:"default:false;index" json:"is_read"`
	ReadAt  *time.Time     `json:"read_at,omitempty"`
}
