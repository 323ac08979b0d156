// Package models contains the persistent entities and the read-side
// view projections served by the API.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Every user doubles as a
// channel that other users can subscribe to.
type User struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	PasswordHash  string    `json:"-"`
	AvatarURL     string    `json:"avatar"`
	CoverImageURL string    `json:"coverImage"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewUser creates a User with a fresh ID. The username is lowercased
// so the unique index compares like with like.
func NewUser(username, email, fullName, passwordHash string) *User {
	now := time.Now()
	return &User{
		ID:           uuid.New(),
		Username:     strings.ToLower(username),
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// OwnerRef is the reduced projection of a user embedded in another
// entity's view: enough to render an attribution line, nothing more.
type OwnerRef struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"fullName"`
	Avatar   string    `json:"avatar"`
}
