package service

import (
	"context"
	"fmt"

	"github.com/taskul/jobly/internal/core"
	"github.com/taskul/jobly/internal/domain/model"
	"golang.org/x/sync/errgroup"
)

// CompanyServiceOptions groups dependencies for CompanyService.
type CompanyServiceOptions struct {
	Repo  core.CompanyRepository // Required
	Jobs  core.JobRepository     // Required
	Cache core.CacheRepository   // Optional: job cache to evict on cascading deletes
}

// CompanyService orchestrates company CRUD.
type CompanyService struct {
	repo  core.CompanyRepository
	jobs  core.JobRepository
	cache core.CacheRepository
}

// NewCompanyService constructs a new CompanyService.
func NewCompanyService(opts CompanyServiceOptions) *CompanyService {
	if opts.Repo == nil || opts.Jobs == nil {
		panic("CompanyRepository and JobRepository are required")
	}
	return &CompanyService{repo: opts.Repo, jobs: opts.Jobs, cache: opts.Cache}
}

// Create creates a company.
func (s *CompanyService) Create(ctx context.Context, req *model.CreateCompanyRequest) (*model.Company, error) {
	return s.repo.Create(ctx, req)
}

// List lists companies matching the filter.
func (s *CompanyService) List(ctx context.Context, filter model.CompanyFilter) ([]*model.Company, error) {
	return s.repo.List(ctx, filter)
}

// Get returns a company together with its jobs. Both are loaded concurrently.
func (s *CompanyService) Get(ctx context.Context, handle string) (*model.CompanyWithJobs, error) {
	var (
		company *model.Company
		jobs    []*model.Job
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.repo.GetByHandle(gctx, handle)
		if err != nil {
			return err
		}
		company = c
		return nil
	})
	g.Go(func() error {
		j, err := s.jobs.ListByCompany(gctx, handle)
		if err != nil {
			return fmt.Errorf("company jobs: %w", err)
		}
		jobs = j
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []*model.Job{}
	}
	return &model.CompanyWithJobs{Company: *company, Jobs: jobs}, nil
}

// Update updates a company.
func (s *CompanyService) Update(
	ctx context.Context,
	handle string,
	req model.UpdateCompanyRequest,
) (*model.Company, error) {
	return s.repo.Update(ctx, handle, req)
}

// Delete deletes a company. Its jobs are removed by the database and evicted from the job cache.
func (s *CompanyService) Delete(ctx context.Context, handle string) error {
	var jobs []*model.Job
	if s.cache != nil {
		j, err := s.jobs.ListByCompany(ctx, handle)
		if err != nil {
			return fmt.Errorf("company jobs: %w", err)
		}
		jobs = j
	}
	if err := s.repo.Delete(ctx, handle); err != nil {
		return err
	}
	for _, j := range jobs {
		// Entries left behind expire with the cache TTL.
		_, _ = s.cache.Delete(ctx, jobCacheKey(j.ID))
	}
	return nil
}
