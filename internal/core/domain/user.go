package domain

import (
	"errors"
	"time"
)

var (
	ErrUserExists         = errors.New("username already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User models a registered account. PasswordHash stores a bcrypt digest,
// never the plaintext.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
