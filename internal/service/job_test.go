package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskul/jobly/internal/domain/model"
	apperrors "github.com/taskul/jobly/internal/errors"
	"github.com/taskul/jobly/internal/mocks"
	"go.uber.org/mock/gomock"
)

const testCacheTTL = 5 * time.Minute

func newJobService(t *testing.T) (*mocks.MockJobRepository, *mocks.MockCacheRepository, *JobService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockJobRepository(ctrl)
	cache := mocks.NewMockCacheRepository(ctrl)
	svc := NewJobService(JobServiceOptions{
		Repo:   repo,
		Cache:  cache,
		Config: JobCacheConfig{TTL: testCacheTTL},
	})
	return repo, cache, svc
}

func sampleJob() *model.Job {
	salary := 100000
	equity := "0.5"
	return &model.Job{ID: 7, Title: "dev", Salary: &salary, Equity: &equity, CompanyHandle: "c1"}
}

func TestJobService_GetByID_CacheMiss(t *testing.T) {
	t.Parallel()
	repo, cache, svc := newJobService(t)
	ctx := context.Background()
	job := sampleJob()
	encoded, err := json.Marshal(job)
	require.NoError(t, err)

	cache.EXPECT().Get(ctx, "job:7").Return(nil, nil)
	repo.EXPECT().GetByID(ctx, 7).Return(job, nil)
	cache.EXPECT().Set(ctx, "job:7", encoded, testCacheTTL).Return(nil)

	got, err := svc.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, job, got)
}

func TestJobService_GetByID_CacheHit(t *testing.T) {
	t.Parallel()
	_, cache, svc := newJobService(t)
	ctx := context.Background()
	job := sampleJob()
	encoded, err := json.Marshal(job)
	require.NoError(t, err)

	cache.EXPECT().Get(ctx, "job:7").Return(encoded, nil)

	got, err := svc.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, job, got)
}

func TestJobService_GetByID_CacheErrorFallsBack(t *testing.T) {
	t.Parallel()
	repo, cache, svc := newJobService(t)
	ctx := context.Background()
	job := sampleJob()

	cache.EXPECT().Get(ctx, "job:7").Return(nil, errors.New("redis down"))
	repo.EXPECT().GetByID(ctx, 7).Return(job, nil)
	cache.EXPECT().Set(ctx, "job:7", gomock.Any(), testCacheTTL).Return(errors.New("redis down"))

	got, err := svc.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, job, got)
}

func TestJobService_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, cache, svc := newJobService(t)
	ctx := context.Background()

	cache.EXPECT().Get(ctx, "job:9").Return(nil, nil)
	repo.EXPECT().GetByID(ctx, 9).Return(nil, apperrors.NotFound("No job"))

	_, err := svc.GetByID(ctx, 9)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestJobService_UpdateEvicts(t *testing.T) {
	t.Parallel()
	repo, cache, svc := newJobService(t)
	ctx := context.Background()
	req := model.UpdateJobRequest{Salary: model.Some(110000)}
	job := sampleJob()

	repo.EXPECT().Update(ctx, 7, req).Return(job, nil)
	cache.EXPECT().Delete(ctx, "job:7").Return(true, nil)

	got, err := svc.Update(ctx, 7, req)
	require.NoError(t, err)
	assert.Equal(t, job, got)
}

func TestJobService_UpdateErrorKeepsCache(t *testing.T) {
	t.Parallel()
	repo, _, svc := newJobService(t)
	ctx := context.Background()

	repo.EXPECT().Update(ctx, 7, gomock.Any()).Return(nil, apperrors.Validation("No data"))

	_, err := svc.Update(ctx, 7, model.UpdateJobRequest{})
	assert.True(t, apperrors.IsValidation(err))
}

func TestJobService_DeleteEvicts(t *testing.T) {
	t.Parallel()
	repo, cache, svc := newJobService(t)
	ctx := context.Background()

	repo.EXPECT().Delete(ctx, 7).Return(nil)
	cache.EXPECT().Delete(ctx, "job:7").Return(false, nil)

	require.NoError(t, svc.Delete(ctx, 7))
}

func TestJobService_WithoutCache(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockJobRepository(ctrl)
	svc := NewJobService(JobServiceOptions{Repo: repo})
	ctx := context.Background()

	repo.EXPECT().GetByID(ctx, 7).Return(sampleJob(), nil)
	repo.EXPECT().Delete(ctx, 7).Return(nil)

	_, err := svc.GetByID(ctx, 7)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, 7))
}

func TestJobService_ListPassesFilter(t *testing.T) {
	t.Parallel()
	repo, _, svc := newJobService(t)
	ctx := context.Background()
	filter := model.JobFilter{MinSalary: model.Some(0)}

	repo.EXPECT().List(ctx, filter).Return([]*model.Job{sampleJob()}, nil)

	jobs, err := svc.List(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}
