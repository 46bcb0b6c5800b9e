package jobs

import (
	"context"
	"fmt"
	"log"
)

// SessionPurgeService removes sessions past their expiry.
type SessionPurgeService interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// SessionPurger is the Processor that sweeps expired sessions. Expired
// sessions are already rejected at read time; the sweep keeps the table
// from growing without bound.
type SessionPurger struct {
	svc SessionPurgeService
}

// NewSessionPurger creates a new SessionPurger
func NewSessionPurger(svc SessionPurgeService) *SessionPurger {
	return &SessionPurger{svc: svc}
}

// Process deletes expired sessions once.
func (p *SessionPurger) Process(ctx context.Context) error {
	purged, err := p.svc.PurgeExpiredSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to purge expired sessions: %w", err)
	}

	if purged > 0 {
		log.Printf("purged %d expired sessions", purged)
	}
	return nil
}
