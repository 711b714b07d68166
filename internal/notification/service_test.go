package notification

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/krisdikachi/Plancer/config"
)

// stubChannel records sends and can be told to fail.
type stubChannel struct {
	sent [][]string
	err  error
}

func (s *stubChannel) Send(recipients []string, subject, body string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, recipients)
	return nil
}

func setupService(t *testing.T) (Service, *stubChannel, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.AutoMigrate(&NotificationLog{}, &PushDeviceToken{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	// contacts and event titles are read by raw table name
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT,
		date DATETIME
	)`).Error; err != nil {
		t.Fatalf("failed to create events table: %v", err)
	}
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS attendances (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id INTEGER,
		full_name TEXT,
		email TEXT
	)`).Error; err != nil {
		t.Fatalf("failed to create attendances table: %v", err)
	}

	email := &stubChannel{}
	push := NewFCMChannel(&config.Config{})
	return NewService(NewRepository(db), email, push), email, db
}

func TestSendConfirmationEmailLogsDelivery(t *testing.T) {
	svc, email, db := setupService(t)

	ok, err := svc.SendConfirmationEmail("ada@example.com", "Launch Party", "Ada")
	if err != nil {
		t.Fatalf("SendConfirmationEmail failed: %v", err)
	}
	if !ok {
		t.Error("expected delivery to be reported")
	}
	if len(email.sent) != 1 || email.sent[0][0] != "ada@example.com" {
		t.Errorf("unexpected sends: %v", email.sent)
	}

	var entry NotificationLog
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("expected a log row: %v", err)
	}
	if entry.Status != "sent" || entry.Channel != "email" {
		t.Errorf("unexpected log row: %+v", entry)
	}
}

func TestSendConfirmationEmailFailureMarksLog(t *testing.T) {
	svc, email, db := setupService(t)
	email.err = errors.New("smtp down")

	ok, err := svc.SendConfirmationEmail("ada@example.com", "Launch Party", "Ada")
	if err == nil {
		t.Fatal("expected a delivery error")
	}
	if ok {
		t.Error("failed delivery must not be reported as sent")
	}

	var entry NotificationLog
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("expected a log row: %v", err)
	}
	if entry.Status != "failed" || entry.Error == nil {
		t.Errorf("expected failed log with error, got %+v", entry)
	}
}

func TestSendCustomEmailRecordsSourceIP(t *testing.T) {
	svc, _, db := setupService(t)

	err := svc.SendCustomEmail(&SendEmailRequest{
		To:      "ada@example.com",
		Subject: "Hello",
	}, "203.0.113.7")
	if err != nil {
		t.Fatalf("SendCustomEmail failed: %v", err)
	}

	var entry NotificationLog
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("expected a log row: %v", err)
	}
	if entry.SourceIP != "203.0.113.7" {
		t.Errorf("expected caller IP on the log row, got %q", entry.SourceIP)
	}
}

func TestSendReminderEmails(t *testing.T) {
	svc, email, db := setupService(t)

	db.Exec(`INSERT INTO events (id, title, date) VALUES (1, 'Launch Party', '2030-06-15')`)
	db.Exec(`INSERT INTO attendances (event_id, full_name, email) VALUES (1, 'Ada', 'ada@example.com')`)
	db.Exec(`INSERT INTO attendances (event_id, full_name, email) VALUES (1, 'Grace', 'grace@example.com')`)

	sent, err := svc.SendReminderEmails(1, "203.0.113.7")
	if err != nil {
		t.Fatalf("SendReminderEmails failed: %v", err)
	}
	if sent != 2 {
		t.Errorf("expected 2 reminders, got %d", sent)
	}
	if len(email.sent) != 2 {
		t.Errorf("expected 2 channel sends, got %d", len(email.sent))
	}

	var entry NotificationLog
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("expected a log row: %v", err)
	}
	if entry.EventID == nil || *entry.EventID != 1 {
		t.Errorf("expected log scoped to event 1, got %+v", entry.EventID)
	}
	if entry.SourceIP != "203.0.113.7" {
		t.Errorf("expected caller IP on the log row, got %q", entry.SourceIP)
	}
}

func TestSendReminderEmailsNoAttendees(t *testing.T) {
	svc, _, db := setupService(t)

	db.Exec(`INSERT INTO events (id, title, date) VALUES (1, 'Quiet Event', '2030-06-15')`)

	_, err := svc.SendReminderEmails(1, "")
	if err != ErrNoRecipients {
		t.Errorf("expected ErrNoRecipients, got %v", err)
	}
}

func TestSendPushWithoutFCMConfigured(t *testing.T) {
	svc, _, _ := setupService(t)

	err := svc.SendPushNotification(1, "Hi", "there", "")
	if err != ErrPushNotConfigured {
		t.Errorf("expected ErrPushNotConfigured, got %v", err)
	}
}

func TestFCMChannelDisabledWithoutCredentials(t *testing.T) {
	ch := NewFCMChannel(&config.Config{})
	if ch.Enabled() {
		t.Error("FCM must be disabled when no credentials are configured")
	}
	if err := ch.Send([]string{"tok"}, "t", "b"); err == nil {
		t.Error("expected send to fail on a disabled channel")
	}
}

func TestDeviceTokenRegistry(t *testing.T) {
	svc, _, db := setupService(t)

	if err := svc.RegisterDeviceToken(7, &RegisterDeviceTokenRequest{
		DeviceToken: "tok-1",
		DeviceType:  "android",
	}); err != nil {
		t.Fatalf("RegisterDeviceToken failed: %v", err)
	}

	// re-registering the same token stays a single active row
	if err := svc.RegisterDeviceToken(7, &RegisterDeviceTokenRequest{
		DeviceToken: "tok-1",
		DeviceType:  "android",
	}); err != nil {
		t.Fatalf("re-register failed: %v", err)
	}

	var count int64
	db.Model(&PushDeviceToken{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 token row, got %d", count)
	}

	if err := svc.RemoveDeviceToken(7, "tok-1"); err != nil {
		t.Fatalf("RemoveDeviceToken failed: %v", err)
	}

	var tok PushDeviceToken
	db.First(&tok)
	if tok.IsActive {
		t.Error("removed token must be inactive")
	}

	if err := svc.RemoveDeviceToken(7, "tok-unknown"); err != ErrTokenNotFound {
		t.Errorf("expected ErrTokenNotFound, got %v", err)
	}
}
