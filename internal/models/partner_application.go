package models

// PartnerApplication tracks a user's request to become a referral partner.
// On approval the application receives a referral code; registrations
// carrying that code increment ReferralCount.
type PartnerApplication struct {
	BaseModel
	UserID      string        `gorm:"type:uuid;not null;index" json:"user_id"`
	CompanyName string        `gorm:"not null" json:"company_name"`
	Website     string        `json:"website"`
	Message     string        `json:"message"`
	Status      PartnerStatus `gorm:"not null;default:'pending';index" json:"status"`
	Comment     string        `json:"comment,omitempty"`

	ReferralCode  string `gorm:"index" json:"referral_code,omitempty"`
	ReferralCount int64  `gorm:"default:0" json:"referral_count"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
