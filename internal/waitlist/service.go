package waitlist

import (
	"errors"
	"log"
	"strings"
)

var ErrInvalidEmail = errors.New("a valid email is required")

type Service struct {
	Repo *Repository
}

func NewService(r *Repository) *Service {
	return &Service{Repo: r}
}

// Join adds an email to the waitlist. Joining twice is a no-op.
func (s *Service) Join(email string) (*WaitlistEntry, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	existing, err := s.Repo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		log.Printf("ℹ️ %s already on the waitlist\n", email)
		return existing, nil
	}

	entry := &WaitlistEntry{Email: email}
	if err := s.Repo.Create(entry); err != nil {
		// concurrent signup with the same email, fall back to the stored row
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			return s.Repo.FindByEmail(email)
		}
		return nil, err
	}

	log.Printf("✅ %s joined the waitlist\n", email)
	return entry, nil
}

func (s *Service) Count() (int64, error) {
	return s.Repo.Count()
}
