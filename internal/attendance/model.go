package attendance

import (
	"time"
)

// Attendance links a user (or a bare contact, on the anonymous path) to an
// event. The access token is the QR payload; checked_in is terminal once true.
//
// Both invariants the ledger depends on live in the schema, not in
// check-then-act code: (event_id, user_id) is a unique index and redemption
// is a single conditional update.
type Attendance struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	EventID     uint       `gorm:"not null;index;uniqueIndex:idx_event_user" json:"event_id"`
	UserID      *uint      `gorm:"uniqueIndex:idx_event_user" json:"user_id,omitempty"`
	FullName    string     `gorm:"type:varchar(255);not null" json:"full_name"`
	Email       string     `gorm:"type:varchar(255);not null" json:"email"`
	AccessToken string     `gorm:"type:varchar(64);not null;uniqueIndex" json:"access_token"`
	CheckedIn   bool       `gorm:"not null;default:false" json:"checked_in"`
	CheckedInAt *time.Time `json:"checked_in_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

type RSVPRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

type RedeemRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}
