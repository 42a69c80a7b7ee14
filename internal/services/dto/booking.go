package dto

import "time"

type CreateBookingRequest struct {
	ListingID string    `json:"listing_id" validate:"required,uuid"`
	EventDate time.Time `json:"event_date" validate:"required"`
	Message   string    `json:"message" validate:"omitempty,max=2000"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,is-booking-status"`
}

type BookingResponse struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	PerformerID string    `json:"performer_id"`
	ListingID   string    `json:"listing_id"`
	EventDate   time.Time `json:"event_date"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}
