package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taskul/jobly/internal/data/database"
	"github.com/taskul/jobly/internal/domain/model"
	apperrors "github.com/taskul/jobly/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

const userColumns = "username, first_name, last_name, email, is_admin"

// userFields is the allow-list of updatable user fields. External names differ from columns.
var userFields = database.FieldMap{
	"firstName": "first_name",
	"lastName":  "last_name",
	"password":  "password",
	"email":     "email",
}

// UserRepoConfig holds configuration for UserRepo.
type UserRepoConfig struct {
	// BcryptCost is the work factor for password hashes; bcrypt.DefaultCost when zero.
	BcryptCost int
}

// UserRepo provides database operations for users and their job applications.
type UserRepo struct {
	DB   *sql.DB
	cost int
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB, cfg UserRepoConfig) *UserRepo {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &UserRepo{DB: db, cost: cost}
}

func (r *UserRepo) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Create inserts a new user with a hashed password.
func (r *UserRepo) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if req == nil {
		return nil, apperrors.Validation("create user request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	hashed, err := r.hash(req.Password)
	if err != nil {
		return nil, err
	}

	u, err := queryRow[model.User](ctx, r.DB, `
		INSERT INTO users (username, password, first_name, last_name, email, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		req.Username, hashed, req.FirstName, req.LastName, req.Email, req.IsAdmin,
	)
	if err != nil {
		mapped := apperrors.MapDBError(err)
		if apperrors.IsConflict(mapped) {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeConflict, "Duplicate username: "+req.Username)
		}
		return nil, fmt.Errorf("create user: %w", mapped)
	}
	return u, nil
}

// Authenticate returns the user when the password matches its stored hash.
func (r *UserRepo) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	var (
		u      model.User
		hashed string
	)
	err := scanOne(ctx, r.DB,
		"SELECT "+userColumns+", password FROM users WHERE username = $1",
		[]any{username},
		&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin, &hashed,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.Unauthorized("Invalid username/password")
		}
		return nil, fmt.Errorf("authenticate user: %w", apperrors.MapDBError(err))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, apperrors.Unauthorized("Invalid username/password")
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}
	return &u, nil
}

// List returns all users ordered by username.
func (r *UserRepo) List(ctx context.Context) ([]*model.User, error) {
	out, err := queryRows[model.User](ctx, r.DB, "SELECT "+userColumns+" FROM users ORDER BY username")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// GetByUsername retrieves a user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	u, err := queryRow[model.User](ctx, r.DB, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("No user: " + username)
		}
		return nil, fmt.Errorf("get user: %w", apperrors.MapDBError(err))
	}
	return u, nil
}

// Update applies a partial update. A supplied password is hashed before it is written.
func (r *UserRepo) Update(ctx context.Context, username string, req model.UpdateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	assignments := toAssignments(req.Assignments())
	for i, a := range assignments {
		if a.Field != "password" {
			continue
		}
		plain, _ := a.Value.(string)
		hashed, err := r.hash(plain)
		if err != nil {
			return nil, err
		}
		assignments[i].Value = hashed
	}
	set, err := database.BuildUpdateFragment(assignments, userFields)
	if err != nil {
		return nil, err
	}

	query := "UPDATE users SET " + set.SQL + " WHERE username = " + set.NextPlaceholder() +
		" RETURNING " + userColumns
	u, err := queryRow[model.User](ctx, r.DB, query, append(set.Args, username)...)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("No user: " + username)
		}
		return nil, fmt.Errorf("update user: %w", apperrors.MapDBError(err))
	}
	return u, nil
}

// Delete removes a user and their applications.
func (r *UserRepo) Delete(ctx context.Context, username string) error {
	var deleted string
	err := scanOne(ctx, r.DB, "DELETE FROM users WHERE username = $1 RETURNING username", []any{username}, &deleted)
	if err != nil {
		if isNoRows(err) {
			return apperrors.NotFound("No user: " + username)
		}
		return fmt.Errorf("delete user: %w", apperrors.MapDBError(err))
	}
	return nil
}

// ApplyToJob records that username applied for jobID. Applying twice is a conflict.
func (r *UserRepo) ApplyToJob(ctx context.Context, username string, jobID int) error {
	var applied int
	err := scanOne(ctx, r.DB,
		"INSERT INTO applications (username, job_id) VALUES ($1, $2) RETURNING job_id",
		[]any{username, jobID}, &applied)
	if err != nil {
		mapped := apperrors.MapDBError(err)
		switch {
		case apperrors.IsForeignKey(mapped):
			return apperrors.Wrapf(err, apperrors.ErrCodeNotFound, "No user %s or job %d", username, jobID)
		case apperrors.IsConflict(mapped):
			return apperrors.Wrapf(err, apperrors.ErrCodeConflict, "Already applied to job %d", jobID)
		}
		return fmt.Errorf("apply to job: %w", mapped)
	}
	return nil
}

// ListAppliedJobs returns the jobs username applied for, ordered by application time.
func (r *UserRepo) ListAppliedJobs(ctx context.Context, username string) ([]*model.Job, error) {
	jobs, err := queryRows[model.Job](ctx, r.DB, `
		SELECT j.id, j.title, j.salary, j.equity::text AS equity, j.company_handle
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.username = $1
		ORDER BY a.applied_at, j.id`, username)
	if err != nil {
		return nil, fmt.Errorf("list applied jobs: %w", apperrors.MapDBError(err))
	}
	return jobs, nil
}
