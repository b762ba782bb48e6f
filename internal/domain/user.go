package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the authentication principal. Usernames are stored lowercase so
// that logins are case-insensitive.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewUser(username string, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Username:     NormalizeUsername(username),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NormalizeUsername applies the canonical form used at registration and login.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
