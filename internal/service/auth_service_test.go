package service

import (
	"errors"
	"testing"
	"time"

	"survey_backend/internal/config"
	"survey_backend/internal/util"
)

func authConfig() *config.Config {
	cfg := testConfig()
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return cfg
}

func TestRegisterAndLogin(t *testing.T) {
	e := newEnv(t)
	svc := NewAuthService(e.creators, e.surveys, authConfig())

	registered, err := svc.Register(RegisterRequest{
		Email:    "new@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if registered.Token == "" {
		t.Fatal("missing token")
	}

	logged, err := svc.Login(LoginRequest{Email: "New@Example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.Creator.ID != registered.Creator.ID {
		t.Fatalf("logged into wrong account")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	e := newEnv(t)
	svc := NewAuthService(e.creators, e.surveys, authConfig())

	if _, err := svc.Register(RegisterRequest{Email: "dup@example.com", Password: "password1"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Register(RegisterRequest{Email: "dup@example.com", Password: "password2"})
	if !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("expected ErrEmailRegistered, got %v", err)
	}
}

func TestUpdateProfileRehashesPassword(t *testing.T) {
	e := newEnv(t)
	svc := NewAuthService(e.creators, e.surveys, authConfig())

	registered, err := svc.Register(RegisterRequest{Email: "p@example.com", Password: "old-password"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	newPassword := "new-password-123"
	if _, err := svc.UpdateProfile(registered.Creator.ID, CreatorUpdateRequest{Password: &newPassword}); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	if _, err := svc.Login(LoginRequest{Email: "p@example.com", Password: "old-password"}); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("old password must stop working, got %v", err)
	}
	if _, err := svc.Login(LoginRequest{Email: "p@example.com", Password: newPassword}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestUpdateProfileRejectsTakenEmail(t *testing.T) {
	e := newEnv(t)
	svc := NewAuthService(e.creators, e.surveys, authConfig())

	if _, err := svc.Register(RegisterRequest{Email: "taken@example.com", Password: "password1"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	second, err := svc.Register(RegisterRequest{Email: "second@example.com", Password: "password2"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	taken := "Taken@Example.com"
	_, err = svc.UpdateProfile(second.Creator.ID, CreatorUpdateRequest{Email: &taken})
	if !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("expected ErrEmailRegistered, got %v", err)
	}
}

func TestDeleteAccountRemovesSurveys(t *testing.T) {
	e := newEnv(t)
	svc := NewAuthService(e.creators, e.surveys, authConfig())

	registered, err := svc.Register(RegisterRequest{Email: "gone@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	survey := e.createSurvey(t, registered.Creator.ID)
	e.addItem(t, survey.ID, "openShort", []string{"q1"}, nil)

	if err := svc.DeleteAccount(registered.Creator.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	if _, err := e.surveys.FindByID(survey.ID); err == nil {
		t.Fatal("survey must be deleted with its creator")
	}
	if _, err := e.creators.FindByID(registered.Creator.ID); err == nil {
		t.Fatal("creator must be deleted")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	e := newEnv(t)
	svc := NewAuthService(e.creators, e.surveys, authConfig())

	if _, err := svc.Register(RegisterRequest{Email: "a@example.com", Password: "right-password"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Login(LoginRequest{Email: "a@example.com", Password: "wrong-password"})
	if !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	_, err = svc.Login(LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	if !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}
