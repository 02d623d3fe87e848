package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a staff account allowed to operate the floor and the catalog.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the login address (unique).
	Email string

	// DisplayName is shown in logs and clients.
	DisplayName string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// NewUser builds a user with a fresh ID and timestamps.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
