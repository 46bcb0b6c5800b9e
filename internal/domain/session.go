package domain

import (
	"fmt"
	"time"
)

// Session binds an opaque cookie token to a user. Only the SHA-256 hash
// of the token is stored.
type Session struct {
	ID        string
	UserID    string
	TokenHash string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// ValidateSession validates a Session instance
func ValidateSession(s *Session) error {
	if s == nil {
		return fmt.Errorf("session cannot be nil")
	}

	if s.ID == "" {
		return fmt.Errorf("session ID is required")
	}

	if s.UserID == "" {
		return fmt.Errorf("session UserID is required")
	}

	if s.TokenHash == "" {
		return fmt.Errorf("session TokenHash is required")
	}

	if s.ExpiresAt.IsZero() {
		return fmt.Errorf("session ExpiresAt is required")
	}

	return nil
}
