package event

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/krisdikachi/Plancer/config"
)

func setupService(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.AutoMigrate(&Event{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	// attendance counts come from a raw table scan
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS attendances (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id INTEGER,
		user_id INTEGER,
		full_name TEXT,
		email TEXT,
		access_token TEXT,
		checked_in BOOLEAN DEFAULT 0,
		checked_in_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	)`).Error; err != nil {
		t.Fatalf("failed to create attendances table: %v", err)
	}

	cfg := &config.Config{
		BaseURL:   "http://localhost:8080",
		UploadDir: t.TempDir(),
	}
	return NewService(NewRepository(db), cfg)
}

func TestCreateEventIssuesInviteCode(t *testing.T) {
	svc := setupService(t)

	e, err := svc.CreateEvent(1, &CreateEventRequest{
		Title: "Garden Wedding",
		Date:  "2030-09-01",
		Time:  "16:30",
	})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	if len(e.InviteCode) != inviteCodeLen {
		t.Errorf("expected %d-char invite code, got %q", inviteCodeLen, e.InviteCode)
	}
	if e.Status != StatusDraft {
		t.Errorf("new events must start as draft, got %q", e.Status)
	}

	found, err := svc.GetEventByInviteCode(e.InviteCode)
	if err != nil {
		t.Fatalf("lookup by invite code failed: %v", err)
	}
	if found.ID != e.ID {
		t.Errorf("invite code resolved to event %d, want %d", found.ID, e.ID)
	}
}

func TestCreateEventValidation(t *testing.T) {
	svc := setupService(t)

	if _, err := svc.CreateEvent(1, &CreateEventRequest{Date: "2030-09-01"}); err != ErrValidation {
		t.Errorf("expected ErrValidation for missing title, got %v", err)
	}
	if _, err := svc.CreateEvent(1, &CreateEventRequest{Title: "No Date"}); err != ErrValidation {
		t.Errorf("expected ErrValidation for missing date, got %v", err)
	}
	if _, err := svc.CreateEvent(1, &CreateEventRequest{Title: "Bad", Date: "01-09-2030"}); err != ErrBadDate {
		t.Errorf("expected ErrBadDate, got %v", err)
	}
	if _, err := svc.CreateEvent(1, &CreateEventRequest{Title: "Bad", Date: "2030-09-01", Time: "9pm"}); err != ErrBadTime {
		t.Errorf("expected ErrBadTime, got %v", err)
	}
}

func TestListEventsOrderedByDate(t *testing.T) {
	svc := setupService(t)

	for _, d := range []string{"2030-12-01", "2030-01-15", "2030-06-20"} {
		if _, err := svc.CreateEvent(7, &CreateEventRequest{Title: "E " + d, Date: d}); err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
	}

	list, err := svc.ListEventsByCreator(7)
	if err != nil {
		t.Fatalf("ListEventsByCreator failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 events, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].Date.Before(list[i-1].Date) {
			t.Errorf("events not ordered by date: %v before %v", list[i-1].Date, list[i].Date)
		}
	}
}

func TestListEventsScopedToCreator(t *testing.T) {
	svc := setupService(t)

	if _, err := svc.CreateEvent(1, &CreateEventRequest{Title: "Mine", Date: "2030-03-01"}); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if _, err := svc.CreateEvent(2, &CreateEventRequest{Title: "Theirs", Date: "2030-03-02"}); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	list, err := svc.ListEventsByCreator(1)
	if err != nil {
		t.Fatalf("ListEventsByCreator failed: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Mine" {
		t.Errorf("expected only the creator's events, got %+v", list)
	}
}

func TestUpdateEventOwnerOnly(t *testing.T) {
	svc := setupService(t)

	e, err := svc.CreateEvent(1, &CreateEventRequest{Title: "Original", Date: "2030-05-05"})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	_, err = svc.UpdateEvent(e.ID, 2, &UpdateEventRequest{Title: "Hijacked", Date: "2030-05-05"})
	if err != ErrNotOwner {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}

	updated, err := svc.UpdateEvent(e.ID, 1, &UpdateEventRequest{Title: "Renamed", Date: "2030-05-06"})
	if err != nil {
		t.Fatalf("UpdateEvent failed: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("expected renamed title, got %q", updated.Title)
	}
	if updated.InviteCode != e.InviteCode {
		t.Error("update must not rotate the invite code")
	}
}

func TestPublishEvent(t *testing.T) {
	svc := setupService(t)

	e, err := svc.CreateEvent(1, &CreateEventRequest{Title: "Draft", Date: "2030-05-05"})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	if _, err := svc.PublishEvent(e.ID, 2); err != ErrNotOwner {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}

	published, err := svc.PublishEvent(e.ID, 1)
	if err != nil {
		t.Fatalf("PublishEvent failed: %v", err)
	}
	if published.Status != StatusPublished {
		t.Errorf("expected published status, got %q", published.Status)
	}
}

func TestDeleteEvent(t *testing.T) {
	svc := setupService(t)

	e, err := svc.CreateEvent(1, &CreateEventRequest{Title: "Doomed", Date: "2030-05-05"})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	if err := svc.DeleteEvent(e.ID, 2); err != ErrNotOwner {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}

	if err := svc.DeleteEvent(e.ID, 1); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}

	if _, err := svc.GetEventByID(e.ID); err != ErrEventNotFound {
		t.Errorf("expected ErrEventNotFound after delete, got %v", err)
	}
}

func TestGetEventByInviteCodeUnknown(t *testing.T) {
	svc := setupService(t)

	if _, err := svc.GetEventByInviteCode("NOPE1234"); err != ErrEventNotFound {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}

func TestShareTextCarriesInviteLink(t *testing.T) {
	svc := setupService(t)

	e, err := svc.CreateEvent(1, &CreateEventRequest{
		Title: "Garden Wedding",
		Date:  "2030-09-01",
		Time:  "16:30",
	})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	text := ShareText(e, "https://plancer.app")
	if !strings.Contains(text, e.InviteCode) {
		t.Errorf("share text must carry the invite code, got %q", text)
	}
	if !strings.Contains(text, "https://plancer.app/attend/"+e.InviteCode) {
		t.Errorf("share text must carry the attend link, got %q", text)
	}
	if !strings.Contains(text, "Garden Wedding") {
		t.Errorf("share text must name the event, got %q", text)
	}
}
