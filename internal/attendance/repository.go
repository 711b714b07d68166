package attendance

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrAttendanceNotFound = errors.New("attendance record not found")

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎟 Create Attendance
func (r *Repository) Create(a *Attendance) error {
	return r.DB.Create(a).Error
}

// ===========================
// 🔍 Find By Event + User: nil result (not an error) means "not registered"
func (r *Repository) FindByEventAndUser(eventID, userID uint) (*Attendance, error) {
	var a Attendance
	err := r.DB.Where("event_id = ? AND user_id = ?", eventID, userID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ===========================
// 🔍 Find By Token, scoped to the event the scanner is operating on
func (r *Repository) FindByToken(eventID uint, token string) (*Attendance, error) {
	var a Attendance
	err := r.DB.Where("event_id = ? AND access_token = ?", eventID, token).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAttendanceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ===========================
// 🔢 Count registrations for an event
func (r *Repository) CountByEvent(eventID uint) (int, error) {
	var count int64
	err := r.DB.Model(&Attendance{}).Where("event_id = ?", eventID).Count(&count).Error
	return int(count), err
}

// ===========================
// 📄 List attendees for an event
func (r *Repository) ListByEvent(eventID uint) ([]Attendance, error) {
	var list []Attendance
	err := r.DB.Where("event_id = ?", eventID).Order("created_at ASC").Find(&list).Error
	return list, err
}

// ===========================
// ✅ MarkCheckedIn flips checked_in exactly once.
// The WHERE clause carries the whole invariant: a second scan (or a
// concurrent one) matches zero rows because checked_in is already true.
func (r *Repository) MarkCheckedIn(eventID uint, token string) (int64, error) {
	now := time.Now()
	res := r.DB.Model(&Attendance{}).
		Where("event_id = ? AND access_token = ? AND checked_in = ?", eventID, token, false).
		Updates(map[string]interface{}{
			"checked_in":    true,
			"checked_in_at": now,
		})
	return res.RowsAffected, res.Error
}
