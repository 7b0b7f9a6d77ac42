package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskul/jobly/internal/core"
	domainauth "github.com/taskul/jobly/internal/domain/auth"
	"github.com/taskul/jobly/internal/domain/model"
	apperrors "github.com/taskul/jobly/internal/errors"
	"github.com/taskul/jobly/internal/ports"
)

// AuthConfig holds session settings.
type AuthConfig struct {
	SessionTTL time.Duration
	// Now overrides the clock; time.Now when nil.
	Now func() time.Time
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users    core.UserRepository // Required
	Sessions ports.SessionStore  // Required
	Config   AuthConfig
}

// AuthService authenticates users by password and manages their sessions.
type AuthService struct {
	users    core.UserRepository
	sessions ports.SessionStore
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Users == nil || opts.Sessions == nil {
		panic("UserRepository and SessionStore are required")
	}
	ttl := opts.Config.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := opts.Config.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{users: opts.Users, sessions: opts.Sessions, ttl: ttl, now: now}
}

// Login verifies credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*domainauth.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	user, err := s.users.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	return s.IssueSession(ctx, user)
}

// Register creates a non-admin account and opens a session for it.
func (s *AuthService) Register(ctx context.Context, req *model.CreateUserRequest) (*domainauth.Session, error) {
	r := *req
	r.IsAdmin = false
	user, err := s.users.Create(ctx, &r)
	if err != nil {
		return nil, err
	}
	return s.IssueSession(ctx, user)
}

// IssueSession opens a session for an already authenticated user.
func (s *AuthService) IssueSession(ctx context.Context, user *model.User) (*domainauth.Session, error) {
	sess := domainauth.Session{
		ID:        uuid.NewString(),
		Username:  user.Username,
		Role:      domainauth.RoleFor(user.IsAdmin),
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &sess, nil
}

// GetSession resolves a session id. Unknown and expired sessions are Unauthorized.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, apperrors.Unauthorized("Authentication required")
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domainauth.ErrSessionNotFound) {
			return nil, apperrors.Unauthorized("Session is invalid or expired")
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if sess.Expired(s.now()) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, fmt.Errorf("delete expired session: %w", deleteErr)
		}
		return nil, apperrors.Unauthorized("Session is invalid or expired")
	}
	return &sess, nil
}

// Logout removes a session. An empty id is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
