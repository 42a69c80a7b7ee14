package dto

import "time"

type CreateListingRequest struct {
	Title       string `json:"title" validate:"required,max=150"`
	Description string `json:"description" validate:"omitempty,max=4000"`
	Category    string `json:"category" validate:"required,is-listing-category"`
	City        string `json:"city" validate:"required,max=100"`
	Price       int64  `json:"price" validate:"min=0"`
}

type UpdateListingRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=150"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=4000"`
	City        *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Price       *int64  `json:"price,omitempty" validate:"omitempty,min=0"`
}

type ModerateListingRequest struct {
	Approve bool   `json:"approve"`
	Comment string `json:"comment" validate:"omitempty,max=1000"`
}

type ListingResponse struct {
	ID                string    `json:"id"`
	PerformerID       string    `json:"performer_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	City              string    `json:"city"`
	Price             int64     `json:"price"`
	Status            string    `json:"status"`
	ModerationComment string    `json:"moderation_comment,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type ListingListResponse struct {
	Listings []*ListingResponse `json:"listings"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}
