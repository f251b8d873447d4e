package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"toronto_stays/internal/app"
	"toronto_stays/internal/domain"
)

func TestRegister_DuplicateEmailAnyUsername(t *testing.T) {
	s := app.NewAccountService(&fakeUsers{}, &fakeHasher{}, fakeTokens{})
	ctx := context.Background()

	id, err := s.Register(ctx, app.RegisterInput{Username: "ana", Email: "ana@example.com", Password: "pw"})
	if err != nil || id != 1 {
		t.Fatalf("register: id=%d err=%v", id, err)
	}
	_, err = s.Register(ctx, app.RegisterInput{Username: "someone-else", Email: "ana@example.com", Password: "x"})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRegister_StoresHash(t *testing.T) {
	users := &fakeUsers{}
	s := app.NewAccountService(users, &fakeHasher{}, fakeTokens{})
	if _, err := s.Register(context.Background(), app.RegisterInput{Username: "bo", Email: "bo@example.com", Password: "secret"}); err != nil {
		t.Fatalf("err: %v", err)
	}
	if users.users[0].PasswordHash == "secret" {
		t.Fatalf("password stored in plain text")
	}
}

func TestRegister_MissingFields(t *testing.T) {
	s := app.NewAccountService(&fakeUsers{}, &fakeHasher{}, fakeTokens{})
	_, err := s.Register(context.Background(), app.RegisterInput{Username: "x", Password: "y"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLogin_NoUsernameEnumeration(t *testing.T) {
	hasher := &fakeHasher{}
	s := app.NewAccountService(&fakeUsers{}, hasher, fakeTokens{})
	ctx := context.Background()
	if _, err := s.Register(ctx, app.RegisterInput{Username: "ana", Email: "a@example.com", Password: "right"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	hasher.compares = 0
	_, errUnknown := s.Login(ctx, "nobody", "right")
	unknownCompares := hasher.compares

	hasher.compares = 0
	_, errWrong := s.Login(ctx, "ana", "wrong")
	wrongCompares := hasher.compares

	if errUnknown != domain.ErrInvalidCredentials || errWrong != domain.ErrInvalidCredentials {
		t.Fatalf("expected identical errors, got %v / %v", errUnknown, errWrong)
	}
	if unknownCompares != 1 || wrongCompares != 1 {
		t.Fatalf("expected one comparison per path, got %d / %d", unknownCompares, wrongCompares)
	}
}

func TestLogin_IssuesToken(t *testing.T) {
	s := app.NewAccountService(&fakeUsers{}, &fakeHasher{}, fakeTokens{})
	ctx := context.Background()
	_, _ = s.Register(ctx, app.RegisterInput{Username: "ana", Email: "a@example.com", Password: "right"})

	sess, err := s.Login(ctx, "ana", "right")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Token != "tok-ana" || sess.Email != "a@example.com" || sess.UserID != 1 {
		t.Fatalf("unexpected session: %+v", sess)
	}
	c, err := s.Authenticate(sess.Token)
	if err != nil || c.Username != "ana" {
		t.Fatalf("authenticate: %+v %v", c, err)
	}
	if _, err := s.Authenticate("garbage"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestRegister_PasswordLimitCountsBytes(t *testing.T) {
	users := &fakeUsers{}
	s := app.NewAccountService(users, &fakeHasher{}, fakeTokens{})

	// 72 characters, 144 bytes
	_, err := s.Register(context.Background(), app.RegisterInput{
		Username: "ana", Email: "ana@example.com", Password: strings.Repeat("é", 72),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(users.users) != 0 {
		t.Fatalf("user must not be created")
	}

	if _, err := s.Register(context.Background(), app.RegisterInput{
		Username: "bo", Email: "bo@example.com", Password: strings.Repeat("a", 72),
	}); err != nil {
		t.Fatalf("72 bytes should be accepted: %v", err)
	}
}
