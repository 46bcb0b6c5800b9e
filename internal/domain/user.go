package domain

import (
	"fmt"
	"time"
)

// User is an identity established by the Google OAuth callback.
// Created on first login; display name, email and avatar are refreshed
// on every subsequent login.
type User struct {
	ID          string
	GoogleID    string
	DisplayName string
	Email       string
	Avatar      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewUser creates a new User instance
func NewUser(id, googleID, displayName, email, avatar string, now time.Time) *User {
	return &User{
		ID:          id,
		GoogleID:    googleID,
		DisplayName: displayName,
		Email:       email,
		Avatar:      avatar,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ValidateUser validates a User instance
func ValidateUser(u *User) error {
	if u == nil {
		return fmt.Errorf("user cannot be nil")
	}

	if u.ID == "" {
		return fmt.Errorf("user ID is required")
	}

	if u.GoogleID == "" {
		return fmt.Errorf("user GoogleID is required")
	}

	if u.DisplayName == "" {
		return fmt.Errorf("user DisplayName is required")
	}

	if u.Email == "" {
		return fmt.Errorf("user Email is required")
	}

	return nil
}
