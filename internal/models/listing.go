package models

// Listing is a performer's service card. It is publicly visible only after
// an admin approves it; edits send it back to pending.
type Listing struct {
	BaseModel
	PerformerID string          `gorm:"type:uuid;not null;index" json:"performer_id"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `json:"description"`
	Category    ListingCategory `gorm:"not null;index" json:"category"`
	City        string          `gorm:"index" json:"city"`
	Price       int64           `json:"price"` // minor currency units

	Status ModerationStatus `gorm:"not null;default:'pending';index" json:"status"`
	// Moderator's note shown to the performer on rejection.
	ModerationComment string `json:"moderation_comment,omitempty"`

	Performer *User `gorm:"foreignKey:PerformerID" json:"-"`
}
