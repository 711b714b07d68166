package auth

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/krisdikachi/Plancer/config"
)

func setupService(t *testing.T) Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.AutoMigrate(&User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cfg := &config.Config{
		JWTAccessSecret:  "test-access-secret",
		JWTRefreshSecret: "test-refresh-secret",
	}
	return NewService(NewRepository(db), cfg)
}

func TestRegisterDefaultsToAttend(t *testing.T) {
	svc := setupService(t)

	u, err := svc.Register(RegisterRequest{
		FullName: "Ada Lovelace",
		Email:    "Ada@Example.com",
		Password: "s3cret!",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if u.Role != RoleAttend {
		t.Errorf("expected default role %q, got %q", RoleAttend, u.Role)
	}
	if u.Email != "ada@example.com" {
		t.Errorf("expected lowercased email, got %q", u.Email)
	}
	if u.PasswordHash == "s3cret!" {
		t.Error("password must not be stored in plaintext")
	}
}

func TestRegisterDuplicateKeepsOriginalRole(t *testing.T) {
	svc := setupService(t)

	first, err := svc.Register(RegisterRequest{
		FullName: "Ada",
		Email:    "ada@example.com",
		Password: "s3cret!",
		Role:     RolePlanner,
	})
	if err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err = svc.Register(RegisterRequest{
		FullName: "Imposter",
		Email:    "ada@example.com",
		Password: "other",
		Role:     RoleAttend,
	})
	if err != ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// the stored profile keeps its original role
	u, err := svc.GetUserByID(first.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if u.Role != RolePlanner {
		t.Errorf("duplicate register must not change role, got %q", u.Role)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Register(RegisterRequest{
		FullName: "Ada",
		Email:    "ada@example.com",
		Password: "s3cret!",
		Role:     "superadmin",
	})
	if err != ErrInvalidRole {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc := setupService(t)

	if _, err := svc.Register(RegisterRequest{
		FullName: "Ada",
		Email:    "ada@example.com",
		Password: "s3cret!",
		Role:     RolePlanner,
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	pair, user, err := svc.Login(LoginRequest{Email: "ada@example.com", Password: "s3cret!"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("expected both access and refresh tokens")
	}
	if user.Role != RolePlanner {
		t.Errorf("unexpected role %q", user.Role)
	}

	// refresh mints a fresh access token
	access, err := svc.Refresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if access == "" {
		t.Error("expected a new access token")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := setupService(t)

	if _, err := svc.Register(RegisterRequest{
		FullName: "Ada",
		Email:    "ada@example.com",
		Password: "s3cret!",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, _, err := svc.Login(LoginRequest{Email: "ada@example.com", Password: "wrong"})
	if err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc := setupService(t)

	if _, err := svc.Refresh("not-a-jwt"); err == nil {
		t.Error("expected error for a malformed refresh token")
	}
}

func TestSwitchRole(t *testing.T) {
	svc := setupService(t)

	u, err := svc.Register(RegisterRequest{
		FullName: "Ada",
		Email:    "ada@example.com",
		Password: "s3cret!",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	switched, err := svc.SwitchRole(u.ID, RolePlanner)
	if err != nil {
		t.Fatalf("SwitchRole failed: %v", err)
	}
	if switched.Role != RolePlanner {
		t.Errorf("expected role %q, got %q", RolePlanner, switched.Role)
	}

	if _, err := svc.SwitchRole(u.ID, "root"); err != ErrInvalidRole {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

func TestRegisterDuplicateEmailIgnoresCase(t *testing.T) {
	svc := setupService(t)

	if _, err := svc.Register(RegisterRequest{
		FullName: "Ada",
		Email:    "ada@example.com",
		Password: "s3cret!",
	}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(RegisterRequest{
		FullName: "Ada Again",
		Email:    "Ada@Example.com",
		Password: "other",
	})
	if err != ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail for mixed-case duplicate, got %v", err)
	}
}
