package event

import (
	"time"
)

// Event lifecycle: planners draft an event, then publish it. The invite code
// is issued at creation and never changes; it is the only unauthenticated
// discovery mechanism.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

type Event struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	CreatorID     uint       `gorm:"not null;index" json:"creator_id"`
	Title         string     `gorm:"type:varchar(255);not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	EventType     string     `gorm:"type:varchar(100)" json:"event_type"`
	DressCode     string     `gorm:"type:varchar(100)" json:"dress_code"`
	ColorOfTheDay string     `gorm:"type:varchar(50)" json:"color_of_the_day"`
	Date          time.Time  `gorm:"not null;index" json:"date"`
	Time          *time.Time `json:"time,omitempty"`
	Location      string     `gorm:"type:text" json:"location"`
	InviteCode    string     `gorm:"type:varchar(12);not null;uniqueIndex" json:"invite_code"`
	MaxAttendees  *int       `json:"max_attendees,omitempty"`
	ImageURL      string     `gorm:"type:text" json:"image_url,omitempty"`
	Status        string     `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	AttendeeCount int `gorm:"-" json:"attendee_count"`
}

type CreateEventRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	EventType     string `json:"event_type"`
	DressCode     string `json:"dress_code"`
	ColorOfTheDay string `json:"color_of_the_day"`
	Date          string `json:"date" binding:"required"` // "2006-01-02"
	Time          string `json:"time,omitempty"`          // "15:04"
	Location      string `json:"location"`
	MaxAttendees  *int   `json:"max_attendees,omitempty"`
}

type UpdateEventRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	EventType     string `json:"event_type"`
	DressCode     string `json:"dress_code"`
	ColorOfTheDay string `json:"color_of_the_day"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time,omitempty"`
	Location      string `json:"location"`
	MaxAttendees  *int   `json:"max_attendees,omitempty"`
}

// EventStatsResponse backs the planner analytics dashboard.
type EventStatsResponse struct {
	TotalEvents    int `json:"total_events"`
	UpcomingEvents int `json:"upcoming_events"`
	TotalAttendees int `json:"total_attendees"`
	TotalCheckedIn int `json:"total_checked_in"`
}
