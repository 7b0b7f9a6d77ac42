package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/taskul/jobly/internal/core"
	"github.com/taskul/jobly/internal/domain/model"
	"github.com/taskul/jobly/internal/ports"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Repo     core.UserRepository // Required
	Sessions ports.SessionStore  // Optional: revoked when a user is deleted
}

// UserService orchestrates user accounts and job applications.
type UserService struct {
	repo     core.UserRepository
	sessions ports.SessionStore
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	if opts.Repo == nil {
		panic("UserRepository is required")
	}
	return &UserService{repo: opts.Repo, sessions: opts.Sessions}
}

// AdminCreate creates an account with a random password. The caller hands the new user a
// session so they can set their own password.
func (s *UserService) AdminCreate(ctx context.Context, req model.AdminCreateUserRequest) (*model.User, error) {
	return s.repo.Create(ctx, req.WithPassword(uuid.NewString()))
}

// List lists all users.
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	return s.repo.List(ctx)
}

// Get returns one user.
func (s *UserService) Get(ctx context.Context, username string) (*model.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// Update applies a partial update to a user.
func (s *UserService) Update(ctx context.Context, username string, req model.UpdateUserRequest) (*model.User, error) {
	return s.repo.Update(ctx, username, req)
}

// Delete deletes a user and revokes their sessions.
func (s *UserService) Delete(ctx context.Context, username string) error {
	if err := s.repo.Delete(ctx, username); err != nil {
		return err
	}
	if s.sessions != nil {
		if err := s.sessions.DeleteByUsername(ctx, username); err != nil {
			return fmt.Errorf("revoke sessions: %w", err)
		}
	}
	return nil
}

// Apply records an application of username for jobID.
func (s *UserService) Apply(ctx context.Context, username string, jobID int) error {
	return s.repo.ApplyToJob(ctx, username, jobID)
}

// AppliedJobs lists the jobs a user applied for. An unknown user is NotFound.
func (s *UserService) AppliedJobs(ctx context.Context, username string) ([]*model.Job, error) {
	if _, err := s.repo.GetByUsername(ctx, username); err != nil {
		return nil, err
	}
	return s.repo.ListAppliedJobs(ctx, username)
}
