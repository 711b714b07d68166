package notification

import (
	"time"

	"gorm.io/datatypes"
)

// NotificationLog - each actual message sent (email or push)
type NotificationLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	EventID    *uint          `gorm:"index" json:"event_id,omitempty"`
	Channel    string         `gorm:"size:20;not null" json:"channel"` // email, push
	Subject    string         `gorm:"size:255" json:"subject,omitempty"`
	Body       string         `gorm:"type:text;not null" json:"body"`
	Recipients datatypes.JSON `gorm:"type:jsonb;not null" json:"recipients"`
	Status     string         `gorm:"size:20;default:'pending'" json:"status"`
	SourceIP   string         `gorm:"size:45" json:"source_ip,omitempty"`
	Error      *string        `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// PushDeviceToken - stores user device tokens for push notifications
type PushDeviceToken struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index:idx_user_token" json:"user_id"`
	DeviceToken string    `gorm:"size:255;not null;index:idx_user_token,unique" json:"device_token"`
	DeviceType  string    `gorm:"size:20" json:"device_type"` // android, ios, web
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RSVPConfirmedEvent is the kafka payload published when an RSVP commits.
type RSVPConfirmedEvent struct {
	EventID    uint   `json:"event_id"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	EventTitle string `json:"event_title"`
}

// Contact is an attendee's email identity, as loaded for reminder fan-out.
type Contact struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type SendEmailRequest struct {
	To         string `json:"to" binding:"required,email"`
	Subject    string `json:"subject" binding:"required"`
	Name       string `json:"name"`
	EventTitle string `json:"eventTitle"`
}

type SendPushRequest struct {
	UserID  uint   `json:"userId" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type SendRemindersRequest struct {
	EventID uint `json:"eventId" binding:"required"`
}

type RegisterDeviceTokenRequest struct {
	DeviceToken string `json:"device_token" binding:"required"`
	DeviceType  string `json:"device_type"`
}
