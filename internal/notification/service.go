package notification

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

var (
	ErrNoRecipients      = errors.New("no recipients for this event")
	ErrNoDevices         = errors.New("no active devices registered for user")
	ErrPushNotConfigured = errors.New("push delivery is not configured")
)

type Service interface {
	SendConfirmationEmail(to, eventTitle, name string) (bool, error)
	SendCustomEmail(req *SendEmailRequest, sourceIP string) error
	SendReminderEmails(eventID uint, sourceIP string) (int, error)
	SendPushNotification(userID uint, title, message, sourceIP string) error
	RegisterDeviceToken(userID uint, req *RegisterDeviceTokenRequest) error
	RemoveDeviceToken(userID uint, deviceToken string) error
	ListLogsByEvent(eventID uint) ([]NotificationLog, error)
}

type service struct {
	repo  *Repository
	email Channel
	push  *FCMChannel
}

func NewService(repo *Repository, email Channel, push *FCMChannel) Service {
	return &service{
		repo:  repo,
		email: email,
		push:  push,
	}
}

// ===========================
// ✉️ Confirmation Email
// ===========================

// SendConfirmationEmail delivers the RSVP confirmation. The bool reports
// whether delivery succeeded; the error is for the caller's log line only.
// Callers treat failures as soft, an RSVP never fails because the mailer
// is down.
func (s *service) SendConfirmationEmail(to, eventTitle, name string) (bool, error) {
	subject := fmt.Sprintf("You're in! 🎉 %s", eventTitle)
	body := confirmationBody(name, eventTitle)

	entry := s.logAttempt(nil, "email", subject, body, []string{to}, "")

	if err := s.email.Send([]string{to}, subject, body); err != nil {
		log.Printf("⚠️ Confirmation email to %s failed: %v\n", to, err)
		s.markLog(entry, "failed", err)
		return false, err
	}

	s.markLog(entry, "sent", nil)
	log.Printf("✅ Confirmation email sent to %s for %s\n", to, eventTitle)
	return true, nil
}

// SendCustomEmail sends a one-off email composed by a planner. The caller
// IP lands in the log row alongside the message.
func (s *service) SendCustomEmail(req *SendEmailRequest, sourceIP string) error {
	body := confirmationBody(req.Name, req.EventTitle)
	entry := s.logAttempt(nil, "email", req.Subject, body, []string{req.To}, sourceIP)

	if err := s.email.Send([]string{req.To}, req.Subject, body); err != nil {
		s.markLog(entry, "failed", err)
		return err
	}
	s.markLog(entry, "sent", nil)
	return nil
}

// ===========================
// 🔔 Event Reminders
// ===========================

// SendReminderEmails fans out a reminder to every registered attendee of
// the event and returns the number of deliveries attempted. Per-recipient
// failures are logged and skipped, a retry re-sends to everyone.
func (s *service) SendReminderEmails(eventID uint, sourceIP string) (int, error) {
	title, date, err := s.repo.GetEventTitle(eventID)
	if err != nil {
		return 0, err
	}
	if title == "" {
		return 0, fmt.Errorf("event %d not found", eventID)
	}

	contacts, err := s.repo.GetEventContacts(eventID)
	if err != nil {
		return 0, err
	}
	if len(contacts) == 0 {
		return 0, ErrNoRecipients
	}

	subject := fmt.Sprintf("Reminder: %s is coming up!", title)
	attempted := 0
	var emails []string
	for _, c := range contacts {
		emails = append(emails, c.Email)
	}

	entry := s.logAttempt(&eventID, "email", subject, "event reminder", emails, sourceIP)

	var lastErr error
	for _, c := range contacts {
		body := reminderBody(c.FullName, title, date.Format("Monday, January 2, 2006"))
		if err := s.email.Send([]string{c.Email}, subject, body); err != nil {
			log.Printf("⚠️ Reminder to %s failed: %v\n", c.Email, err)
			lastErr = err
			continue
		}
		attempted++
	}

	if attempted == 0 && lastErr != nil {
		s.markLog(entry, "failed", lastErr)
		return 0, lastErr
	}
	s.markLog(entry, "sent", nil)

	log.Printf("✅ Sent %d/%d reminders for event %d (%s)\n", attempted, len(contacts), eventID, title)
	return attempted, nil
}

// ===========================
// 📱 Push Notifications
// ===========================

func (s *service) SendPushNotification(userID uint, title, message, sourceIP string) error {
	if !s.push.Enabled() {
		return ErrPushNotConfigured
	}

	tokens, err := s.repo.GetActiveTokensByUser(userID)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return ErrNoDevices
	}

	entry := s.logAttempt(nil, "push", title, message, tokens, sourceIP)

	if err := s.push.Send(tokens, title, message); err != nil {
		s.markLog(entry, "failed", err)
		return err
	}
	s.markLog(entry, "sent", nil)
	return nil
}

func (s *service) RegisterDeviceToken(userID uint, req *RegisterDeviceTokenRequest) error {
	token := &PushDeviceToken{
		UserID:      userID,
		DeviceToken: req.DeviceToken,
		DeviceType:  req.DeviceType,
	}
	return s.repo.SaveDeviceToken(token)
}

func (s *service) RemoveDeviceToken(userID uint, deviceToken string) error {
	return s.repo.DeactivateDeviceToken(userID, deviceToken)
}

func (s *service) ListLogsByEvent(eventID uint) ([]NotificationLog, error) {
	return s.repo.ListLogsByEvent(eventID)
}

// ===========================
// 🧾 Log Bookkeeping
// ===========================

func (s *service) logAttempt(eventID *uint, channel, subject, body string, recipients []string, sourceIP string) *NotificationLog {
	raw, err := json.Marshal(recipients)
	if err != nil {
		raw = []byte("[]")
	}
	entry := &NotificationLog{
		EventID:    eventID,
		Channel:    channel,
		Subject:    subject,
		Body:       body,
		Recipients: raw,
		Status:     "pending",
		SourceIP:   sourceIP,
	}
	if err := s.repo.CreateLog(entry); err != nil {
		log.Printf("⚠️ Failed to write notification log: %v\n", err)
		return nil
	}
	return entry
}

func (s *service) markLog(entry *NotificationLog, status string, sendErr error) {
	if entry == nil {
		return
	}
	if err := s.repo.UpdateLogStatus(entry.ID, status, sendErr); err != nil {
		log.Printf("⚠️ Failed to update notification log %d: %v\n", entry.ID, err)
	}
}

// ===========================
// 📝 Templates
// ===========================

func confirmationBody(name, eventTitle string) string {
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #4F46E5;">You're confirmed! 🎉</h2>
			<p>Hi %s,</p>
			<p>Your spot for <strong>%s</strong> is locked in.</p>
			<p>Your personal QR ticket is available in the app. Show it at the door to check in.</p>
			<p style="color: #6B7280; font-size: 13px;">Each ticket admits one person and can only be scanned once.</p>
			<p>See you there!<br/>The Plancer Team</p>
		</div>`, name, eventTitle)
}

func reminderBody(name, eventTitle, date string) string {
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #4F46E5;">Don't forget! ⏰</h2>
			<p>Hi %s,</p>
			<p><strong>%s</strong> is happening on <strong>%s</strong>.</p>
			<p>Have your QR ticket ready for check-in at the door.</p>
			<p>See you there!<br/>The Plancer Team</p>
		</div>`, name, eventTitle, date)
}
