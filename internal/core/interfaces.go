package core

import (
	"context"

	"github.com/taskul/jobly/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// Services depend on these interfaces; internal/data provides the Postgres implementations.

// JobRepository defines the interface for job data operations.
type JobRepository interface {
	Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error)
	List(ctx context.Context, filter model.JobFilter) ([]*model.Job, error)
	ListByCompany(ctx context.Context, handle string) ([]*model.Job, error)
	GetByID(ctx context.Context, id int) (*model.Job, error)
	Update(ctx context.Context, id int, req model.UpdateJobRequest) (*model.Job, error)
	Delete(ctx context.Context, id int) error
}

// CompanyRepository defines the interface for company data operations.
type CompanyRepository interface {
	Create(ctx context.Context, req *model.CreateCompanyRequest) (*model.Company, error)
	List(ctx context.Context, filter model.CompanyFilter) ([]*model.Company, error)
	GetByHandle(ctx context.Context, handle string) (*model.Company, error)
	Update(ctx context.Context, handle string, req model.UpdateCompanyRequest) (*model.Company, error)
	Delete(ctx context.Context, handle string) error
}

// UserRepository defines the interface for user and application data operations.
type UserRepository interface {
	Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, username string, req model.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, username string) error
	ApplyToJob(ctx context.Context, username string, jobID int) error
	ListAppliedJobs(ctx context.Context, username string) ([]*model.Job, error)
}
