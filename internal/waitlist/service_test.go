package waitlist

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
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

	if err := db.AutoMigrate(&WaitlistEntry{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewService(NewRepository(db))
}

func TestJoinNormalizesEmail(t *testing.T) {
	svc := setupService(t)

	entry, err := svc.Join("  Ada@Example.COM ")
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if entry.Email != "ada@example.com" {
		t.Errorf("expected normalized email, got %q", entry.Email)
	}
}

func TestJoinTwiceIsNoOp(t *testing.T) {
	svc := setupService(t)

	first, err := svc.Join("ada@example.com")
	if err != nil {
		t.Fatalf("first Join failed: %v", err)
	}

	second, err := svc.Join("ada@example.com")
	if err != nil {
		t.Fatalf("second Join failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected the same entry, got %d and %d", first.ID, second.ID)
	}

	count, err := svc.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 entry, got %d", count)
	}
}

func TestJoinRejectsInvalidEmail(t *testing.T) {
	svc := setupService(t)

	if _, err := svc.Join(""); err != ErrInvalidEmail {
		t.Errorf("expected ErrInvalidEmail for empty input, got %v", err)
	}
	if _, err := svc.Join("not-an-email"); err != ErrInvalidEmail {
		t.Errorf("expected ErrInvalidEmail for bare string, got %v", err)
	}
}

func TestCount(t *testing.T) {
	svc := setupService(t)

	for _, e := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		if _, err := svc.Join(e); err != nil {
			t.Fatalf("Join(%q) failed: %v", e, err)
		}
	}

	count, err := svc.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3, got %d", count)
	}
}
