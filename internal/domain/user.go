package domain

import "time"

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Phone        *string
	CreatedAt    time.Time
}

// Session is what a successful login hands back to the client.
type Session struct {
	UserID    int64
	Username  string
	Email     string
	Token     string
	ExpiresAt time.Time
}

// Claims are the verified contents of a session token.
type Claims struct {
	UserID   int64
	Username string
}
