package notification

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrTokenNotFound = errors.New("device token not found")

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 📋 Notification Logs
// ===========================

func (r *Repository) CreateLog(entry *NotificationLog) error {
	return r.DB.Create(entry).Error
}

func (r *Repository) UpdateLogStatus(id uint, status string, sendErr error) error {
	updates := map[string]interface{}{"status": status}
	if sendErr != nil {
		msg := sendErr.Error()
		updates["error"] = &msg
	}
	return r.DB.Model(&NotificationLog{}).Where("id = ?", id).Updates(updates).Error
}

func (r *Repository) ListLogsByEvent(eventID uint) ([]NotificationLog, error) {
	var logs []NotificationLog
	err := r.DB.Where("event_id = ?", eventID).Order("created_at DESC").Find(&logs).Error
	return logs, err
}

// ===========================
// 📱 Device Tokens
// ===========================

func (r *Repository) SaveDeviceToken(token *PushDeviceToken) error {
	// Re-registering the same token flips it back to active
	var existing PushDeviceToken
	err := r.DB.Where("device_token = ?", token.DeviceToken).First(&existing).Error
	if err == nil {
		existing.UserID = token.UserID
		existing.DeviceType = token.DeviceType
		existing.IsActive = true
		return r.DB.Save(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	token.IsActive = true
	return r.DB.Create(token).Error
}

func (r *Repository) DeactivateDeviceToken(userID uint, deviceToken string) error {
	result := r.DB.Model(&PushDeviceToken{}).
		Where("user_id = ? AND device_token = ?", userID, deviceToken).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

func (r *Repository) GetActiveTokensByUser(userID uint) ([]string, error) {
	var tokens []string
	err := r.DB.Model(&PushDeviceToken{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Pluck("device_token", &tokens).Error
	return tokens, err
}

// ===========================
// 👥 Event Contacts
// ===========================

// GetEventContacts returns the name and email of every registered attendee
// for an event. Queried by table name to keep this package decoupled from
// the attendance package.
func (r *Repository) GetEventContacts(eventID uint) ([]Contact, error) {
	var contacts []Contact
	err := r.DB.Table("attendances").
		Select("full_name, email").
		Where("event_id = ?", eventID).
		Scan(&contacts).Error
	return contacts, err
}

// GetEventTitle looks up the event title for reminder subjects.
func (r *Repository) GetEventTitle(eventID uint) (string, time.Time, error) {
	var row struct {
		Title string
		Date  time.Time
	}
	err := r.DB.Table("events").
		Select("title, date").
		Where("id = ?", eventID).
		Scan(&row).Error
	if err != nil {
		return "", time.Time{}, err
	}
	return row.Title, row.Date, nil
}
