package attendance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/krisdikachi/Plancer/internal/event"
	"github.com/krisdikachi/Plancer/internal/notification"
	"github.com/krisdikachi/Plancer/utils"
)

var (
	ErrCapacityExceeded      = errors.New("this event is full")
	ErrDuplicateRegistration = errors.New("already registered for this event")
	ErrAlreadyRedeemed       = errors.New("access token already checked in")
	ErrMissingContact        = errors.New("full_name and email are required")
)

// Service is the ledger plus the token issuance/redemption engine.
type Service struct {
	Repo     *Repository
	Events   *event.Service
	NotifSvc notification.Service
}

func NewService(r *Repository, events *event.Service) *Service {
	return &Service{Repo: r, Events: events}
}

// ===========================
// 🔍 Existence check: nil, nil when the user never RSVP'd
func (s *Service) GetAttendanceForUser(eventID, userID uint) (*Attendance, error) {
	return s.Repo.FindByEventAndUser(eventID, userID)
}

func (s *Service) CountAttendance(eventID uint) (int, error) {
	return s.Repo.CountByEvent(eventID)
}

func (s *Service) ListAttendees(eventID uint) ([]Attendance, error) {
	return s.Repo.ListByEvent(eventID)
}

// ===========================
// 🎟 RecordAttendance registers a user (userID set) or a bare contact
// (userID nil, the anonymous invite-link path) for an event and issues the
// access token the attendee later presents as a QR code.
//
// The duplicate lookup gives a friendly error on the common path; the unique
// index on (event_id, user_id) is what actually closes the race.
func (s *Service) RecordAttendance(eventID uint, userID *uint, fullName, email string) (*Attendance, error) {
	e, err := s.Events.GetEventByID(eventID)
	if err != nil {
		return nil, err
	}

	if fullName == "" || email == "" {
		return nil, ErrMissingContact
	}

	if userID != nil {
		existing, err := s.Repo.FindByEventAndUser(eventID, *userID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrDuplicateRegistration
		}
	}

	if e.MaxAttendees != nil {
		count, err := s.Repo.CountByEvent(eventID)
		if err != nil {
			return nil, err
		}
		if count >= *e.MaxAttendees {
			return nil, ErrCapacityExceeded
		}
	}

	a := &Attendance{
		EventID:     eventID,
		UserID:      userID,
		FullName:    fullName,
		Email:       email,
		AccessToken: uuid.NewString(),
		CheckedIn:   false,
	}

	if err := s.Repo.Create(a); err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			return nil, ErrDuplicateRegistration
		}
		return nil, err
	}

	s.dispatchConfirmation(a, e.Title)

	return a, nil
}

// dispatchConfirmation hands the confirmation email off to the kafka
// consumer when the broker is up, and falls back to an inline best-effort
// send otherwise. Either way a failure never unwinds the RSVP.
func (s *Service) dispatchConfirmation(a *Attendance, eventTitle string) {
	if utils.KafkaEnabled() {
		msg := notification.RSVPConfirmedEvent{
			EventID:    a.EventID,
			Email:      a.Email,
			FullName:   a.FullName,
			EventTitle: eventTitle,
		}
		if err := utils.PublishJSON(context.Background(), fmt.Sprint(a.EventID), msg); err != nil {
			log.Printf("⚠️ Failed to publish RSVP event: %v", err)
		}
		return
	}

	if s.NotifSvc != nil {
		go func() {
			if _, err := s.NotifSvc.SendConfirmationEmail(a.Email, eventTitle, a.FullName); err != nil {
				log.Printf("⚠️ Confirmation email to %s failed: %v", a.Email, err)
			}
		}()
	}
}

// ===========================
// ✅ RedeemToken marks an attendance checked-in exactly once.
//
// The conditional update either flips the flag or matches nothing; a
// follow-up read disambiguates "wrong token / wrong event" from "already
// checked in" so the scanner can show the right message.
func (s *Service) RedeemToken(eventID uint, token string) (*Attendance, error) {
	rows, err := s.Repo.MarkCheckedIn(eventID, token)
	if err != nil {
		return nil, err
	}

	if rows == 0 {
		existing, err := s.Repo.FindByToken(eventID, token)
		if err != nil {
			return nil, err // ErrAttendanceNotFound: wrong code or wrong event scope
		}
		if existing.CheckedIn {
			return nil, ErrAlreadyRedeemed
		}
		// Unreachable in practice: the update matches any non-redeemed row.
		return nil, ErrAttendanceNotFound
	}

	return s.Repo.FindByToken(eventID, token)
}
