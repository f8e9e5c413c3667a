package domain

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned when a session token does not resolve to a
// live, unexpired session.
var ErrSessionNotFound = errors.New("session not found")

// Session is a server-side login session. Only the SHA-256 digest of the
// cookie token is stored.
type Session struct {
	ID          string
	UserID      string
	TokenDigest string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// SessionRepository defines the interface for session storage.
type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	GetByTokenDigest(ctx context.Context, digest string) (*Session, error)
	Delete(ctx context.Context, digest string) error
	DeleteByUserID(ctx context.Context, userID string) error
	// DeleteExpired removes sessions whose expiry has passed, keeping the
	// table from growing without bound.
	DeleteExpired(ctx context.Context) error
}
