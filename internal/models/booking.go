package models

import "time"

type Booking struct {
	BaseModel
	CustomerID  string `gorm:"type:uuid;not null;index" json:"customer_id"`
	PerformerID string `gorm:"type:uuid;not null;index" json:"performer_id"`
	ListingID   string `gorm:"type:uuid;not null;index" json:"listing_id"`

	EventDate time.Time     `gorm:"not null" json:"event_date"`
	Message   string        `json:"message"`
	Status    BookingStatus `gorm:"not null;default:'pending';index" json:"status"`

	Customer  *User    `gorm:"foreignKey:CustomerID" json:"-"`
	Performer *User    `gorm:"foreignKey:PerformerID" json:"-"`
	Listing   *Listing `gorm:"foreignKey:ListingID" json:"-"`
}
