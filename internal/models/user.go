package models

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Name         string     `json:"name"`
	Role         UserRole   `gorm:"not null;default:'customer'" json:"role"`
	Status       UserStatus `gorm:"not null;default:'active'" json:"status"`
	IsVerified   bool       `gorm:"default:false" json:"is_verified"`
	VerifyToken  string     `json:"-"`
	// Referral code of the partner whose link brought this user in, if any.
	ReferredBy string `gorm:"index" json:"referred_by,omitempty"`
}
