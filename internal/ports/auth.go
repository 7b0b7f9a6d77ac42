package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/taskul/jobly/internal/domain/auth"
)

// SessionStore persists and retrieves user sessions.
// Get returns domainauth.ErrSessionNotFound for unknown or expired sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteByUsername removes every session belonging to username.
	DeleteByUsername(ctx context.Context, username string) error
}
