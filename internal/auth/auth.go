// Package auth handles dashboard logins. Credentials are checked
// against bcrypt hashes and sessions are carried as HS256 JWTs.
package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)

type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Email        string
	CreatedAt    time.Time
}

// Claims is the verified identity extracted from a session token.
type Claims struct {
	UserID   uuid.UUID
	Username string
}
