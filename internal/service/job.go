package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/taskul/jobly/internal/core"
	"github.com/taskul/jobly/internal/domain/model"
)

// JobCacheConfig controls the read-through cache for single jobs.
type JobCacheConfig struct {
	TTL time.Duration
}

// JobServiceOptions groups dependencies for JobService.
type JobServiceOptions struct {
	Repo   core.JobRepository   // Required
	Cache  core.CacheRepository // Optional: nil disables caching
	Config JobCacheConfig
	Logger *slog.Logger // Optional
}

// JobService orchestrates job CRUD with a read-through cache on GetByID.
type JobService struct {
	repo   core.JobRepository
	cache  core.CacheRepository
	ttl    time.Duration
	logger *slog.Logger
}

// NewJobService constructs a new JobService.
func NewJobService(opts JobServiceOptions) *JobService {
	if opts.Repo == nil {
		panic("JobRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &JobService{
		repo:   opts.Repo,
		cache:  opts.Cache,
		ttl:    opts.Config.TTL,
		logger: logger.With("component", "job_service"),
	}
}

func jobCacheKey(id int) string { return "job:" + strconv.Itoa(id) }

// Create creates a job.
func (s *JobService) Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	return s.repo.Create(ctx, req)
}

// List lists jobs matching the filter.
func (s *JobService) List(ctx context.Context, filter model.JobFilter) ([]*model.Job, error) {
	return s.repo.List(ctx, filter)
}

// GetByID returns a job, serving it from the cache when possible.
func (s *JobService) GetByID(ctx context.Context, id int) (*model.Job, error) {
	if job := s.cached(ctx, id); job != nil {
		return job, nil
	}
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.store(ctx, job)
	return job, nil
}

// Update updates a job and evicts its cache entry.
func (s *JobService) Update(ctx context.Context, id int, req model.UpdateJobRequest) (*model.Job, error) {
	job, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.evict(ctx, id)
	return job, nil
}

// Delete deletes a job and evicts it from the cache.
func (s *JobService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.evict(ctx, id)
	return nil
}

// Cache failures never fail the request; the database stays the source of truth.

func (s *JobService) cached(ctx context.Context, id int) *model.Job {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, jobCacheKey(id))
	if err != nil {
		s.logger.WarnContext(ctx, "job cache get failed", "job_id", id, "error", err)
		return nil
	}
	if data == nil {
		return nil
	}
	var job model.Job
	if err := json.Unmarshal(data, &job); err != nil {
		s.logger.WarnContext(ctx, "job cache entry corrupt", "job_id", id, "error", err)
		return nil
	}
	return &job
}

func (s *JobService) store(ctx context.Context, job *model.Job) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(job)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, jobCacheKey(job.ID), data, s.ttl); err != nil {
		s.logger.WarnContext(ctx, "job cache set failed", "job_id", job.ID, "error", err)
	}
}

func (s *JobService) evict(ctx context.Context, id int) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Delete(ctx, jobCacheKey(id)); err != nil {
		s.logger.WarnContext(ctx, "job cache evict failed", "job_id", id, "error", err)
	}
}
