package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"errors"
	"time"
)

// Role represents an application's authorization role.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// RoleFor returns the role granted to a user with the given admin flag.
func RoleFor(isAdmin bool) Role {
	if isAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// ErrSessionNotFound is returned by session stores for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side record persisted for a logged-in user.
// ID is an opaque token handed to the client.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAdmin reports whether the session carries the admin role.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// CanActAs reports whether the session may act on behalf of username: admins may act
// for anyone, other users only for themselves.
func (s Session) CanActAs(username string) bool {
	return s.IsAdmin() || (s.Username != "" && s.Username == username)
}

// Expired reports whether the session has expired at now.
func (s Session) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }
