// Package devseed loads sample companies, jobs and users for local development.
package devseed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taskul/jobly/internal/core"
	"github.com/taskul/jobly/internal/domain/model"
	apperrors "github.com/taskul/jobly/internal/errors"
)

// Repos bundles the repositories the seeder writes through.
type Repos struct {
	Companies core.CompanyRepository
	Jobs      core.JobRepository
	Users     core.UserRepository
}

// Options configures a seeding run.
type Options struct {
	// UserPassword is the password given to every sample user.
	UserPassword string
	Logger       *slog.Logger
}

// Run seeds sample data. Records that already exist are left untouched, so Run can be
// repeated. Jobs are only added for companies created by this run.
func Run(ctx context.Context, repos Repos, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.UserPassword == "" {
		return apperrors.Validation("sample user password is required")
	}

	failures := 0
	var jobIDs []int
	for _, fx := range defaultCompanies() {
		ids, n := seedCompany(ctx, repos, fx, logger)
		jobIDs = append(jobIDs, ids...)
		failures += n
	}
	failures += seedUsers(ctx, repos.Users, opts.UserPassword, jobIDs, logger)

	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

type companyFixture struct {
	Company model.CreateCompanyRequest
	Jobs    []model.CreateJobRequest
}

func seedCompany(ctx context.Context, repos Repos, fx companyFixture, logger *slog.Logger) ([]int, int) {
	req := fx.Company
	if _, err := repos.Companies.Create(ctx, &req); err != nil {
		if apperrors.IsConflict(err) {
			logger.InfoContext(ctx, "company already exists", "handle", req.Handle)
			return nil, 0
		}
		logger.ErrorContext(ctx, "failed to create company", "handle", req.Handle, "error", err)
		return nil, 1
	}
	logger.InfoContext(ctx, "created company", "handle", req.Handle)

	failures := 0
	ids := make([]int, 0, len(fx.Jobs))
	for i := range fx.Jobs {
		jobReq := fx.Jobs[i]
		jobReq.CompanyHandle = req.Handle
		job, err := repos.Jobs.Create(ctx, &jobReq)
		if err != nil {
			logger.ErrorContext(ctx, "failed to create job", "title", jobReq.Title, "company", req.Handle, "error", err)
			failures++
			continue
		}
		ids = append(ids, job.ID)
	}
	return ids, failures
}

func seedUsers(ctx context.Context, users core.UserRepository, password string, jobIDs []int, logger *slog.Logger) int {
	failures := 0
	for i, u := range defaultUsers() {
		req := u.WithPassword(password)
		if _, err := users.Create(ctx, req); err != nil {
			if apperrors.IsConflict(err) {
				logger.InfoContext(ctx, "user already exists", "username", u.Username)
				continue
			}
			logger.ErrorContext(ctx, "failed to create user", "username", u.Username, "error", err)
			failures++
			continue
		}
		logger.InfoContext(ctx, "created user", "username", u.Username)

		// Spread sample applications across the new jobs.
		if len(jobIDs) == 0 {
			continue
		}
		jobID := jobIDs[i%len(jobIDs)]
		if err := users.ApplyToJob(ctx, u.Username, jobID); err != nil && !apperrors.IsConflict(err) {
			logger.ErrorContext(ctx, "failed to apply to job", "username", u.Username, "job_id", jobID, "error", err)
			failures++
		}
	}
	return failures
}

func ptr[T any](v T) *T { return &v }

func defaultCompanies() []companyFixture {
	return []companyFixture{
		{
			Company: model.CreateCompanyRequest{
				Handle:       "anderson-arias-morrow",
				Name:         "Anderson, Arias and Morrow",
				Description:  "Somebody program how I. Face give away discussion view act inside.",
				NumEmployees: ptr(245),
				LogoURL:      ptr("https://example.com/logos/logo3.png"),
			},
			Jobs: []model.CreateJobRequest{
				{Title: "Scientist, research (maths)", Salary: ptr(120000), Equity: ptr("0.02")},
				{Title: "Conservation officer", Salary: ptr(52000)},
			},
		},
		{
			Company: model.CreateCompanyRequest{
				Handle:       "bauer-gallagher",
				Name:         "Bauer-Gallagher",
				Description:  "Difficult ready trip question produce produce someone.",
				NumEmployees: ptr(862),
			},
			Jobs: []model.CreateJobRequest{
				{Title: "Engineer, software", Salary: ptr(145000), Equity: ptr("0.05")},
				{Title: "Accountant, chartered", Salary: ptr(88000), Equity: ptr("0")},
				{Title: "Software tester"},
			},
		},
		{
			Company: model.CreateCompanyRequest{
				Handle:       "watson-davis",
				Name:         "Watson-Davis",
				Description:  "Year join loss.",
				NumEmployees: ptr(819),
				LogoURL:      ptr("https://example.com/logos/logo3.png"),
			},
			Jobs: []model.CreateJobRequest{
				{Title: "Insurance underwriter", Salary: ptr(67000), Equity: ptr("0.01")},
			},
		},
		{
			Company: model.CreateCompanyRequest{
				Handle:      "ayala-buchanan",
				Name:        "Ayala-Buchanan",
				Description: "Make radio physical southern. His white on attention kitchen market upon.",
			},
		},
	}
}

func defaultUsers() []model.AdminCreateUserRequest {
	return []model.AdminCreateUserRequest{
		{Username: "testuser", FirstName: "Test", LastName: "User", Email: "testuser@example.com"},
		{Username: "joelburton", FirstName: "Joel", LastName: "Burton", Email: "joel@example.com"},
		{Username: "testadmin", FirstName: "Test", LastName: "Admin", Email: "testadmin@example.com", IsAdmin: true},
	}
}
