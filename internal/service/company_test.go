package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskul/jobly/internal/domain/model"
	apperrors "github.com/taskul/jobly/internal/errors"
	"github.com/taskul/jobly/internal/mocks"
	"go.uber.org/mock/gomock"
)

type companyMocks struct {
	companies *mocks.MockCompanyRepository
	jobs      *mocks.MockJobRepository
	cache     *mocks.MockCacheRepository
}

func newCompanyService(t *testing.T) (companyMocks, *CompanyService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := companyMocks{
		companies: mocks.NewMockCompanyRepository(ctrl),
		jobs:      mocks.NewMockJobRepository(ctrl),
		cache:     mocks.NewMockCacheRepository(ctrl),
	}
	svc := NewCompanyService(CompanyServiceOptions{Repo: m.companies, Jobs: m.jobs, Cache: m.cache})
	return m, svc
}

func TestCompanyService_GetIncludesJobs(t *testing.T) {
	t.Parallel()
	m, svc := newCompanyService(t)
	ctx := context.Background()

	company := &model.Company{Handle: "c1", Name: "C1"}
	jobs := []*model.Job{{ID: 1, Title: "Job1", CompanyHandle: "c1"}}
	m.companies.EXPECT().GetByHandle(gomock.Any(), "c1").Return(company, nil)
	m.jobs.EXPECT().ListByCompany(gomock.Any(), "c1").Return(jobs, nil)

	got, err := svc.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "C1", got.Name)
	assert.Equal(t, jobs, got.Jobs)
}

func TestCompanyService_GetWithoutJobsReturnsEmptySlice(t *testing.T) {
	t.Parallel()
	m, svc := newCompanyService(t)

	m.companies.EXPECT().GetByHandle(gomock.Any(), "c3").Return(&model.Company{Handle: "c3"}, nil)
	m.jobs.EXPECT().ListByCompany(gomock.Any(), "c3").Return(nil, nil)

	got, err := svc.Get(context.Background(), "c3")
	require.NoError(t, err)
	assert.NotNil(t, got.Jobs)
	assert.Empty(t, got.Jobs)
}

func TestCompanyService_GetNotFound(t *testing.T) {
	t.Parallel()
	m, svc := newCompanyService(t)

	m.companies.EXPECT().GetByHandle(gomock.Any(), "nope").Return(nil, apperrors.NotFound("No company: nope"))
	m.jobs.EXPECT().ListByCompany(gomock.Any(), "nope").Return(nil, nil).AnyTimes()

	_, err := svc.Get(context.Background(), "nope")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCompanyService_DeleteEvictsJobs(t *testing.T) {
	t.Parallel()
	m, svc := newCompanyService(t)
	ctx := context.Background()

	gomock.InOrder(
		m.jobs.EXPECT().ListByCompany(ctx, "c1").Return([]*model.Job{{ID: 1}, {ID: 2}}, nil),
		m.companies.EXPECT().Delete(ctx, "c1").Return(nil),
	)
	m.cache.EXPECT().Delete(ctx, "job:1").Return(true, nil)
	m.cache.EXPECT().Delete(ctx, "job:2").Return(false, nil)

	require.NoError(t, svc.Delete(ctx, "c1"))
}

func TestCompanyService_DeleteNotFound(t *testing.T) {
	t.Parallel()
	m, svc := newCompanyService(t)
	ctx := context.Background()

	m.jobs.EXPECT().ListByCompany(ctx, "nope").Return(nil, nil)
	m.companies.EXPECT().Delete(ctx, "nope").Return(apperrors.NotFound("No company: nope"))

	assert.True(t, apperrors.IsNotFound(svc.Delete(ctx, "nope")))
}
