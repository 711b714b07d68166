package waitlist

import "time"

// WaitlistEntry - an email captured on the pre-launch landing page
type WaitlistEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type JoinRequest struct {
	Email string `json:"email" binding:"required,email"`
}
