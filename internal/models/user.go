package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Every RPC runs in the context of an
// authenticated user; the user's personal profile group is derived from Slug.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's email address (unique). Used for login.
	Email string

	// DisplayName is shown in group headings and host lists.
	DisplayName string

	// Slug is the URL-safe handle used in public links
	// ({base}/{slug}/{event-slug}).
	Slug string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// NewUser creates a user with a generated ID and current timestamps.
func NewUser(email, displayName, slug, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		Slug:         slug,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
