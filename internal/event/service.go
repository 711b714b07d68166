package event

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/krisdikachi/Plancer/config"
	"github.com/krisdikachi/Plancer/utils"
)

var (
	ErrValidation   = errors.New("title and date are required")
	ErrNotOwner     = errors.New("unauthorized: not the event creator")
	ErrBadDate      = errors.New("invalid date format. Use YYYY-MM-DD")
	ErrBadTime      = errors.New("invalid time format. Use HH:MM in 24-hour format")
	ErrBadInviteLen = errors.New("invite code must not be empty")
)

const inviteCodeLen = 8
const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Service wraps business logic for planner events
type Service struct {
	Repo *Repository
	Cfg  *config.Config
}

func NewService(r *Repository, cfg *config.Config) *Service {
	return &Service{Repo: r, Cfg: cfg}
}

// newInviteCode issues the short public discovery token. Collisions across
// 36^8 codes are accepted as negligible; the unique index rejects the rest.
func newInviteCode() string {
	b := make([]byte, inviteCodeLen)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = inviteCodeAlphabet[int(b[i])%len(inviteCodeAlphabet)]
	}
	return string(b)
}

func parseDate(dateStr, timeStr string) (time.Time, *time.Time, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, nil, ErrBadDate
	}

	var timePtr *time.Time
	if timeStr != "" {
		parsed, err := time.Parse("15:04", timeStr)
		if err != nil {
			return time.Time{}, nil, ErrBadTime
		}
		normalized := time.Date(0, 1, 1, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
		timePtr = &normalized
	}

	return date, timePtr, nil
}

// ===========================
// 🎯 Create Event
func (s *Service) CreateEvent(creatorID uint, req *CreateEventRequest) (*Event, error) {
	if req.Title == "" || req.Date == "" {
		return nil, ErrValidation
	}

	date, timePtr, err := parseDate(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	e := &Event{
		CreatorID:     creatorID,
		Title:         req.Title,
		Description:   req.Description,
		EventType:     req.EventType,
		DressCode:     req.DressCode,
		ColorOfTheDay: req.ColorOfTheDay,
		Date:          date,
		Time:          timePtr,
		Location:      req.Location,
		InviteCode:    newInviteCode(),
		MaxAttendees:  req.MaxAttendees,
		Status:        StatusDraft,
	}

	if err := s.Repo.CreateEvent(e); err != nil {
		return nil, err
	}

	return e, nil
}

// ===========================
// 🖼 Attach Image
// The upload happens after the record exists so the file lands under the
// event's own path prefix. A stored file whose URL write fails stays
// orphaned on disk; it is logged, not cleaned up.
func (s *Service) AttachImage(eventID, creatorID uint, filename string, data []byte) (*Event, error) {
	e, err := s.Repo.GetEventByID(eventID)
	if err != nil {
		return nil, err
	}
	if e.CreatorID != creatorID {
		return nil, ErrNotOwner
	}

	url, err := utils.SaveEventImage(s.Cfg.UploadDir, s.Cfg.BaseURL, e.ID, filename, data)
	if err != nil {
		return nil, err
	}

	e.ImageURL = url
	if err := s.Repo.UpdateEvent(e); err != nil {
		log.Printf("⚠️ Image stored but record update failed, orphaned upload at %s: %v", url, err)
		return nil, err
	}

	return e, nil
}

// ===========================
// 🔍 Lookups
func (s *Service) GetEventByID(id uint) (*Event, error) {
	return s.Repo.GetEventByID(id)
}

func (s *Service) GetEventByInviteCode(code string) (*Event, error) {
	if code == "" {
		return nil, ErrBadInviteLen
	}
	return s.Repo.GetEventByInviteCode(code)
}

func (s *Service) ListEventsByCreator(creatorID uint) ([]Event, error) {
	return s.Repo.ListEventsByCreator(creatorID)
}

// ===========================
// 🛠 Update Event (creator-only; invite code is immutable)
func (s *Service) UpdateEvent(id uint, creatorID uint, req *UpdateEventRequest) (*Event, error) {
	e, err := s.Repo.GetEventByID(id)
	if err != nil {
		return nil, err
	}
	if e.CreatorID != creatorID {
		return nil, ErrNotOwner
	}

	date, timePtr, err := parseDate(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	e.Title = req.Title
	e.Description = req.Description
	e.EventType = req.EventType
	e.DressCode = req.DressCode
	e.ColorOfTheDay = req.ColorOfTheDay
	e.Date = date
	e.Time = timePtr
	e.Location = req.Location
	e.MaxAttendees = req.MaxAttendees

	if err := s.Repo.UpdateEvent(e); err != nil {
		return nil, err
	}
	return e, nil
}

// ===========================
// 🚀 Publish Event
func (s *Service) PublishEvent(id uint, creatorID uint) (*Event, error) {
	e, err := s.Repo.GetEventByID(id)
	if err != nil {
		return nil, err
	}
	if e.CreatorID != creatorID {
		return nil, ErrNotOwner
	}

	e.Status = StatusPublished
	if err := s.Repo.UpdateEvent(e); err != nil {
		return nil, err
	}
	return e, nil
}

// ===========================
// ❌ Delete Event
func (s *Service) DeleteEvent(id uint, creatorID uint) error {
	e, err := s.Repo.GetEventByID(id)
	if err != nil {
		return err
	}
	if e.CreatorID != creatorID {
		return ErrNotOwner
	}
	return s.Repo.DeleteEvent(id, creatorID)
}

// ===========================
// 📊 Dashboard Stats
func (s *Service) GetEventStats(creatorID uint) (*EventStatsResponse, error) {
	return s.Repo.GetEventStats(creatorID)
}

// ShareText builds the invite message shown on the planner's share sheet.
func ShareText(e *Event, frontendURL string) string {
	return fmt.Sprintf("Join my event %q! Use invite code: %s\n%s/attend/%s",
		e.Title, e.InviteCode, frontendURL, e.InviteCode)
}
