package services

import (
	"context"
	"testing"
	"time"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/repos"
)

func newAuthFixture(t *testing.T, ttl time.Duration) AuthService {
	t.Helper()
	db := testDB(t)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return NewAuthService(log, repos.NewUserRepo(db, log), "test-secret", ttl)
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	svc := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "alice", "correct horse battery")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if token == "" {
		t.Fatal("no token issued on register")
	}
	if user.Password == "correct horse battery" {
		t.Fatal("password stored in plaintext")
	}

	got, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if got != user.ID {
		t.Fatalf("token subject=%s want %s", got, user.ID)
	}

	loggedIn, token2, err := svc.Login(ctx, "alice", "correct horse battery")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loggedIn.ID != user.ID || token2 == "" {
		t.Fatal("login did not return the registered user with a token")
	}
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	svc := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "", "long enough password"); err == nil {
		t.Fatal("empty username accepted")
	}
	if _, _, err := svc.Register(ctx, "bob", "short"); err == nil {
		t.Fatal("short password accepted")
	}
	if _, _, err := svc.Register(ctx, "carol", "password123"); err != nil {
		t.Fatalf("valid registration failed: %v", err)
	}
	if _, _, err := svc.Register(ctx, "carol", "password456"); err == nil {
		t.Fatal("duplicate username accepted")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "dave", "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, _, err := svc.Login(ctx, "dave", "wrong password"); err == nil {
		t.Fatal("wrong password accepted")
	}
	if _, _, err := svc.Login(ctx, "nobody", "password123"); err == nil {
		t.Fatal("unknown user accepted")
	}
}

func TestValidateTokenExpiry(t *testing.T) {
	svc := newAuthFixture(t, -time.Minute)
	ctx := context.Background()

	_, token, err := svc.Register(ctx, "erin", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.ValidateToken(token); err == nil {
		t.Fatal("expired token accepted")
	}
	if _, err := svc.ValidateToken("not.a.token"); err == nil {
		t.Fatal("garbage token accepted")
	}
}
