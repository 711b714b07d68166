package waitlist

import (
	"errors"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(entry *WaitlistEntry) error {
	return r.DB.Create(entry).Error
}

func (r *Repository) FindByEmail(email string) (*WaitlistEntry, error) {
	var entry WaitlistEntry
	err := r.DB.Where("email = ?", email).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&WaitlistEntry{}).Count(&count).Error
	return count, err
}
