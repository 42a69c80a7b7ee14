package dto

import "time"

type PartnerApplyRequest struct {
	CompanyName string `json:"company_name" validate:"required,max=150"`
	Website     string `json:"website" validate:"omitempty,url,max=200"`
	Message     string `json:"message" validate:"omitempty,max=2000"`
}

type DecidePartnerRequest struct {
	Approve bool   `json:"approve"`
	Comment string `json:"comment" validate:"omitempty,max=1000"`
}

type PartnerApplicationResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	CompanyName   string    `json:"company_name"`
	Website       string    `json:"website,omitempty"`
	Message       string    `json:"message,omitempty"`
	Status        string    `json:"status"`
	Comment       string    `json:"comment,omitempty"`
	ReferralCode  string    `json:"referral_code,omitempty"`
	ReferralCount int64     `json:"referral_count"`
	CreatedAt     time.Time `json:"created_at"`
}
