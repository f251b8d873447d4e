package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"toronto_stays/internal/domain"
)

type AccountService struct {
	users  domain.UserRepository
	hasher domain.PasswordHasher
	tokens domain.TokenIssuer

	// compared against when the username is unknown so both failure paths
	// cost one hash comparison
	dummyHash string
}

func NewAccountService(u domain.UserRepository, h domain.PasswordHasher, t domain.TokenIssuer) *AccountService {
	dummy, _ := h.Hash("dummy-password-for-unknown-users")
	return &AccountService{users: u, hasher: h, tokens: t, dummyHash: dummy}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Phone    *string
}

func (s *AccountService) Register(ctx context.Context, in RegisterInput) (int64, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return 0, domain.Invalid("Missing required fields")
	}
	if len(in.Password) > domain.MaxPasswordBytes {
		return 0, domain.Invalid("password must be at most %d bytes", domain.MaxPasswordBytes)
	}

	exists, err := s.users.UserExists(ctx, in.Username, in.Email)
	if err != nil {
		return 0, storageErr("check user", err)
	}
	if exists {
		return 0, domain.ErrAlreadyExists
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	id, err := s.users.CreateUser(ctx, domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
	})
	if err != nil {
		return 0, storageErr("create user", err)
	}
	return id, nil
}

// Login verifies the credentials and issues a session token. Unknown users
// and wrong passwords fail with the same ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	if username == "" || password == "" {
		return domain.Session{}, domain.Invalid("Missing credentials")
	}

	u, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		_ = s.hasher.Compare(s.dummyHash, password)
		return domain.Session{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.Session{}, storageErr("get user", err)
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	tok, exp, err := s.tokens.Issue(u)
	if err != nil {
		return domain.Session{}, fmt.Errorf("issue token: %w", err)
	}
	return domain.Session{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Token:     tok,
		ExpiresAt: exp,
	}, nil
}

// Authenticate resolves a bearer token to its claims.
func (s *AccountService) Authenticate(token string) (domain.Claims, error) {
	c, err := s.tokens.Verify(token)
	if err != nil {
		return domain.Claims{}, domain.ErrInvalidCredentials
	}
	return c, nil
}
