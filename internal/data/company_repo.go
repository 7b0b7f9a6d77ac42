package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taskul/jobly/internal/data/database"
	"github.com/taskul/jobly/internal/domain/model"
	apperrors "github.com/taskul/jobly/internal/errors"
)

const companyColumns = "handle, name, description, num_employees, logo_url"

// companyFields is the allow-list of updatable company fields.
var companyFields = database.FieldMap{
	"name":         "name",
	"description":  "description",
	"numEmployees": "num_employees",
	"logoUrl":      "logo_url",
}

// CompanyRepo provides database operations for companies.
type CompanyRepo struct {
	DB *sql.DB
}

// NewCompanyRepo creates a new CompanyRepo.
func NewCompanyRepo(db *sql.DB) *CompanyRepo {
	return &CompanyRepo{DB: db}
}

// BuildCompanyFilter renders the WHERE/ORDER BY tail for listing companies. Predicates appear
// in a fixed order: nameLike, minEmployees, maxEmployees.
func BuildCompanyFilter(f model.CompanyFilter) database.Fragment {
	filter := database.NewFilter("name")
	if name, ok := f.NameLike.Get(); ok && name != "" {
		filter.Where("name ILIKE $1", database.Contains(name))
	}
	if n, ok := f.MinEmployees.Get(); ok {
		filter.Where("num_employees >= $1", n)
	}
	if n, ok := f.MaxEmployees.Get(); ok {
		filter.Where("num_employees <= $1", n)
	}
	return filter.Build()
}

// Create inserts a new company.
func (r *CompanyRepo) Create(ctx context.Context, req *model.CreateCompanyRequest) (*model.Company, error) {
	if req == nil {
		return nil, apperrors.Validation("create company request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := queryRow[model.Company](ctx, r.DB, `
		INSERT INTO companies (handle, name, description, num_employees, logo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+companyColumns,
		req.Handle, req.Name, req.Description, req.NumEmployees, req.LogoURL,
	)
	if err != nil {
		mapped := apperrors.MapDBError(err)
		if apperrors.IsConflict(mapped) {
			if apperrors.GetField(mapped) == "name" {
				return nil, apperrors.Wrap(err, apperrors.ErrCodeConflict, "Duplicate company name: "+req.Name)
			}
			return nil, apperrors.Wrap(err, apperrors.ErrCodeConflict, "Duplicate company: "+req.Handle)
		}
		return nil, fmt.Errorf("create company: %w", mapped)
	}
	return c, nil
}

// List returns companies matching the filter, ordered by name.
func (r *CompanyRepo) List(ctx context.Context, f model.CompanyFilter) ([]*model.Company, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	tail := BuildCompanyFilter(f)
	out, err := queryRows[model.Company](ctx, r.DB,
		"SELECT "+companyColumns+" FROM companies "+tail.SQL, tail.Args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// GetByHandle retrieves a company by handle.
func (r *CompanyRepo) GetByHandle(ctx context.Context, handle string) (*model.Company, error) {
	c, err := queryRow[model.Company](ctx, r.DB,
		"SELECT "+companyColumns+" FROM companies WHERE handle = $1", handle)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("No company: " + handle)
		}
		return nil, fmt.Errorf("get company: %w", apperrors.MapDBError(err))
	}
	return c, nil
}

// Update applies a partial update. The handle cannot be changed.
func (r *CompanyRepo) Update(ctx context.Context, handle string, req model.UpdateCompanyRequest) (*model.Company, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	set, err := database.BuildUpdateFragment(toAssignments(req.Assignments()), companyFields)
	if err != nil {
		return nil, err
	}

	query := "UPDATE companies SET " + set.SQL + " WHERE handle = " + set.NextPlaceholder() +
		" RETURNING " + companyColumns
	c, err := queryRow[model.Company](ctx, r.DB, query, append(set.Args, handle)...)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("No company: " + handle)
		}
		return nil, fmt.Errorf("update company: %w", apperrors.MapDBError(err))
	}
	return c, nil
}

// Delete removes a company and, through the foreign key, its jobs.
func (r *CompanyRepo) Delete(ctx context.Context, handle string) error {
	var deleted string
	err := scanOne(ctx, r.DB, "DELETE FROM companies WHERE handle = $1 RETURNING handle", []any{handle}, &deleted)
	if err != nil {
		if isNoRows(err) {
			return apperrors.NotFound("No company: " + handle)
		}
		return fmt.Errorf("delete company: %w", apperrors.MapDBError(err))
	}
	return nil
}
