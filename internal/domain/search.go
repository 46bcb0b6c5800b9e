package domain

import (
	"fmt"
	"time"
)

// SearchRecord is one logged search event. Records are append only:
// they are never mutated or deleted, and the stored term is the
// verbatim trimmed input (no case folding, so aggregation is exact-match).
type SearchRecord struct {
	ID        string
	UserID    string
	Term      string
	CreatedAt time.Time
}

// NewSearchRecord creates a new SearchRecord instance
func NewSearchRecord(id, userID, term string, createdAt time.Time) *SearchRecord {
	return &SearchRecord{
		ID:        id,
		UserID:    userID,
		Term:      term,
		CreatedAt: createdAt,
	}
}

// ValidateSearchRecord validates a SearchRecord instance
func ValidateSearchRecord(r *SearchRecord) error {
	if r == nil {
		return fmt.Errorf("search record cannot be nil")
	}

	if r.ID == "" {
		return fmt.Errorf("search record ID is required")
	}

	if r.UserID == "" {
		return fmt.Errorf("search record UserID is required")
	}

	if r.Term == "" {
		return fmt.Errorf("search record Term is required")
	}

	return nil
}

// TopSearch is a derived aggregate: a term and how many times it was
// searched across all users. Never stored, computed on read.
type TopSearch struct {
	Term  string
	Count int
}
