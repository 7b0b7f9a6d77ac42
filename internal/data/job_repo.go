package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taskul/jobly/internal/data/database"
	"github.com/taskul/jobly/internal/domain/model"
	apperrors "github.com/taskul/jobly/internal/errors"
)

// jobColumns is the projection shared by every job query. equity is NUMERIC in the
// schema and is returned as text so no precision is lost.
const jobColumns = "id, title, salary, equity::text AS equity, company_handle"

// jobFields is the allow-list of updatable job fields.
var jobFields = database.FieldMap{
	"title":  "title",
	"salary": "salary",
	"equity": "equity",
}

// JobRepo provides database operations for jobs.
type JobRepo struct {
	DB *sql.DB
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{DB: db}
}

// BuildJobFilter renders the WHERE/ORDER BY tail for listing jobs. Predicates appear in a
// fixed order: title, minSalary, hasEquity.
func BuildJobFilter(f model.JobFilter) database.Fragment {
	filter := database.NewFilter("title")
	if title, ok := f.Title.Get(); ok && title != "" {
		filter.Where("title ILIKE $1", database.Contains(title))
	}
	if minSalary, ok := f.MinSalary.Get(); ok {
		filter.Where("salary >= $1", minSalary)
	}
	if hasEquity, ok := f.HasEquity.Get(); ok && hasEquity {
		filter.Where("equity > 0")
	}
	return filter.Build()
}

// Create inserts a new job.
func (r *JobRepo) Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	if req == nil {
		return nil, apperrors.Validation("create job request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	job, err := queryRow[model.Job](ctx, r.DB, `
		INSERT INTO jobs (title, salary, equity, company_handle)
		VALUES ($1, $2, $3::numeric, $4)
		RETURNING `+jobColumns,
		req.Title, req.Salary, req.Equity, req.CompanyHandle,
	)
	if err != nil {
		return nil, fmt.Errorf("create job: %w", apperrors.MapDBError(err))
	}
	return job, nil
}

// List returns jobs matching the filter, ordered by title.
func (r *JobRepo) List(ctx context.Context, f model.JobFilter) ([]*model.Job, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	tail := BuildJobFilter(f)
	jobs, err := queryRows[model.Job](ctx, r.DB, "SELECT "+jobColumns+" FROM jobs "+tail.SQL, tail.Args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", apperrors.MapDBError(err))
	}
	return jobs, nil
}

// ListByCompany returns the jobs of one company ordered by id.
func (r *JobRepo) ListByCompany(ctx context.Context, handle string) ([]*model.Job, error) {
	jobs, err := queryRows[model.Job](ctx, r.DB,
		"SELECT "+jobColumns+" FROM jobs WHERE company_handle = $1 ORDER BY id", handle)
	if err != nil {
		return nil, fmt.Errorf("list company jobs: %w", apperrors.MapDBError(err))
	}
	return jobs, nil
}

// GetByID retrieves a job by id.
func (r *JobRepo) GetByID(ctx context.Context, id int) (*model.Job, error) {
	job, err := queryRow[model.Job](ctx, r.DB, "SELECT "+jobColumns+" FROM jobs WHERE id = $1", id)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFoundf("No job found with id: %d", id)
		}
		return nil, fmt.Errorf("get job: %w", apperrors.MapDBError(err))
	}
	return job, nil
}

// Update applies a partial update. Only the supplied fields are written.
func (r *JobRepo) Update(ctx context.Context, id int, req model.UpdateJobRequest) (*model.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	set, err := database.BuildUpdateFragment(toAssignments(req.Assignments()), jobFields)
	if err != nil {
		return nil, err
	}

	query := "UPDATE jobs SET " + set.SQL + " WHERE id = " + set.NextPlaceholder() + " RETURNING " + jobColumns
	job, err := queryRow[model.Job](ctx, r.DB, query, append(set.Args, id)...)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFoundf("No job with id of %d", id)
		}
		return nil, fmt.Errorf("update job: %w", apperrors.MapDBError(err))
	}
	return job, nil
}

// Delete removes a job by id.
func (r *JobRepo) Delete(ctx context.Context, id int) error {
	var deleted int
	if err := scanOne(ctx, r.DB, "DELETE FROM jobs WHERE id = $1 RETURNING id", []any{id}, &deleted); err != nil {
		if isNoRows(err) {
			return apperrors.NotFoundf("No job with id of %d", id)
		}
		return fmt.Errorf("delete job: %w", apperrors.MapDBError(err))
	}
	return nil
}
