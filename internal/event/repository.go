package event

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create Event
func (r *Repository) CreateEvent(e *Event) error {
	return r.DB.Create(e).Error
}

// ===========================
// 🔍 Get Event By ID
func (r *Repository) GetEventByID(id uint) (*Event, error) {
	var e Event
	err := r.DB.First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	e.AttendeeCount = r.countAttendees(e.ID)
	return &e, nil
}

// ===========================
// 🔍 Get Event By Invite Code (exact match, public discovery path)
func (r *Repository) GetEventByInviteCode(code string) (*Event, error) {
	var e Event
	err := r.DB.Where("invite_code = ?", code).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	e.AttendeeCount = r.countAttendees(e.ID)
	return &e, nil
}

// ===========================
// 📄 List Events By Creator, date ascending
func (r *Repository) ListEventsByCreator(creatorID uint) ([]Event, error) {
	var events []Event
	err := r.DB.
		Where("creator_id = ?", creatorID).
		Order("date ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	for i := range events {
		events[i].AttendeeCount = r.countAttendees(events[i].ID)
	}

	return events, nil
}

// ===========================
// 🛠 Update Event
func (r *Repository) UpdateEvent(e *Event) error {
	return r.DB.Save(e).Error
}

// ===========================
// ❌ Delete Event (scoped to creator)
func (r *Repository) DeleteEvent(id uint, creatorID uint) error {
	return r.DB.
		Where("id = ? AND creator_id = ?", id, creatorID).
		Delete(&Event{}).Error
}

func (r *Repository) countAttendees(eventID uint) int {
	var count int64
	r.DB.Table("attendances").
		Where("event_id = ?", eventID).
		Count(&count)
	return int(count)
}

// ===========================
// 📊 Planner Dashboard Stats
func (r *Repository) GetEventStats(creatorID uint) (*EventStatsResponse, error) {
	var stats EventStatsResponse
	var total, upcoming, attendees, checkedIn int64

	r.DB.Model(&Event{}).
		Where("creator_id = ?", creatorID).
		Count(&total)

	r.DB.Model(&Event{}).
		Where("creator_id = ? AND date >= ?", creatorID, time.Now().Truncate(24*time.Hour)).
		Count(&upcoming)

	r.DB.Table("attendances").
		Joins("JOIN events ON events.id = attendances.event_id").
		Where("events.creator_id = ?", creatorID).
		Count(&attendees)

	r.DB.Table("attendances").
		Joins("JOIN events ON events.id = attendances.event_id").
		Where("events.creator_id = ? AND attendances.checked_in = ?", creatorID, true).
		Count(&checkedIn)

	stats.TotalEvents = int(total)
	stats.UpcomingEvents = int(upcoming)
	stats.TotalAttendees = int(attendees)
	stats.TotalCheckedIn = int(checkedIn)

	return &stats, nil
}
