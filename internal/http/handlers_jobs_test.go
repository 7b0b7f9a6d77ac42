package httpx

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskul/jobly/internal/domain/model"
	apperrors "github.com/taskul/jobly/internal/errors"
	"go.uber.org/mock/gomock"
)

func sampleJob() *model.Job {
	salary := 100000
	equity := "0.5"
	return &model.Job{ID: 7, Title: "dev", Salary: &salary, Equity: &equity, CompanyHandle: "c1"}
}

func TestJobs_List_NoFilters(t *testing.T) {
	env := newTestEnv(t)
	env.jobs.EXPECT().List(gomock.Any(), model.JobFilter{}).Return([]*model.Job{sampleJob()}, nil)

	rec := env.do(t, http.MethodGet, "/api/jobs", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	jobs, ok := decodeBody(t, rec)["jobs"].([]any)
	require.True(t, ok)
	require.Len(t, jobs, 1)
	job := jobs[0].(map[string]any)
	assert.Equal(t, "dev", job["title"])
	assert.Equal(t, "0.5", job["equity"])
	assert.Equal(t, "c1", job["companyHandle"])
}

func TestJobs_List_EmptyIsArray(t *testing.T) {
	env := newTestEnv(t)
	env.jobs.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)

	rec := env.do(t, http.MethodGet, "/api/jobs", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"jobs":[]}`, rec.Body.String())
}

func TestJobs_List_QueryCoercion(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  model.JobFilter
	}{
		{
			name:  "all filters",
			query: "?title=dev&minSalary=150&hasEquity=true",
			want: model.JobFilter{
				Title:     model.Some("dev"),
				MinSalary: model.Some(150),
				HasEquity: model.Some(true),
			},
		},
		{
			name:  "zero minSalary is kept",
			query: "?minSalary=0",
			want:  model.JobFilter{MinSalary: model.Some(0)},
		},
		{
			name:  "hasEquity other than true is false",
			query: "?hasEquity=yes",
			want:  model.JobFilter{HasEquity: model.Some(false)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.jobs.EXPECT().List(gomock.Any(), tt.want).Return([]*model.Job{}, nil)

			rec := env.do(t, http.MethodGet, "/api/jobs"+tt.query, "", nil)
			require.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestJobs_List_BadQuery(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantField string
	}{
		{name: "non-integer minSalary", query: "?minSalary=lots", wantField: "minSalary"},
		{name: "unknown parameter", query: "?title=dev&color=red", wantField: "color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			rec := env.do(t, http.MethodGet, "/api/jobs"+tt.query, "", nil)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, "validation", body["error"])
			assert.Equal(t, tt.wantField, body["field"])
		})
	}
}

func TestJobs_GetByID(t *testing.T) {
	env := newTestEnv(t)
	env.jobs.EXPECT().GetByID(gomock.Any(), 7).Return(sampleJob(), nil)

	rec := env.do(t, http.MethodGet, "/api/jobs/7", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	job := decodeBody(t, rec)["job"].(map[string]any)
	assert.InDelta(t, 7, job["id"], 0)
}

func TestJobs_GetByID_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.jobs.EXPECT().GetByID(gomock.Any(), 0).Return(nil, apperrors.NotFound("No job found with id: 0"))

	rec := env.do(t, http.MethodGet, "/api/jobs/0", "", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No job found with id: 0", decodeBody(t, rec)["message"])
}

func TestJobs_GetByID_NonIntegerID(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/jobs/abc", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJobs_Create_RequiresAdmin(t *testing.T) {
	body := map[string]any{"title": "dev", "companyHandle": "c1"}

	t.Run("anonymous", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodPost, "/api/jobs", "", body)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
	t.Run("unknown token", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodPost, "/api/jobs", "bogus", body)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
	t.Run("regular user", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodPost, "/api/jobs", userToken, body)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestJobs_Create(t *testing.T) {
	env := newTestEnv(t)
	env.jobs.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *model.CreateJobRequest) (*model.Job, error) {
			assert.Equal(t, "dev", req.Title)
			require.NotNil(t, req.Equity)
			assert.Equal(t, "0.5", *req.Equity)
			return sampleJob(), nil
		})

	rec := env.do(t, http.MethodPost, "/api/jobs", adminToken,
		`{"title":"dev","salary":100000,"equity":"0.5","companyHandle":"c1"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, decodeBody(t, rec), "job")
}

func TestJobs_Create_UnknownField(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/jobs", adminToken, `{"title":"dev","companyHandle":"c1","id":3}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_json", decodeBody(t, rec)["error"])
}

func TestJobs_Create_UnknownCompany(t *testing.T) {
	env := newTestEnv(t)
	env.jobs.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(nil, &apperrors.AppError{Code: apperrors.ErrCodeForeignKey, Message: "Company does not exist"})

	rec := env.do(t, http.MethodPost, "/api/jobs", adminToken, `{"title":"dev","companyHandle":"nope"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestJobs_Update_NullClearsEquity(t *testing.T) {
	env := newTestEnv(t)
	env.jobs.EXPECT().
		Update(gomock.Any(), 7, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int, req model.UpdateJobRequest) (*model.Job, error) {
			assert.True(t, req.Equity.IsNull())
			assert.False(t, req.Title.Present())
			job := sampleJob()
			job.Equity = nil
			return job, nil
		})

	rec := env.do(t, http.MethodPatch, "/api/jobs/7", adminToken, `{"equity":null}`)

	require.Equal(t, http.StatusOK, rec.Code)
	job := decodeBody(t, rec)["job"].(map[string]any)
	assert.Nil(t, job["equity"])
}

func TestJobs_Update_EmptyPayload(t *testing.T) {
	env := newTestEnv(t)
	env.jobs.EXPECT().Update(gomock.Any(), 7, model.UpdateJobRequest{}).
		Return(nil, apperrors.Validation("No data"))

	rec := env.do(t, http.MethodPatch, "/api/jobs/7", adminToken, `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No data", decodeBody(t, rec)["message"])
}

func TestJobs_Delete(t *testing.T) {
	env := newTestEnv(t)
	env.jobs.EXPECT().Delete(gomock.Any(), 7).Return(nil)

	rec := env.do(t, http.MethodDelete, "/api/jobs/7", adminToken, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":7}`, rec.Body.String())
}

func TestJobs_InternalErrorHidesCause(t *testing.T) {
	env := newTestEnv(t)
	env.jobs.EXPECT().GetByID(gomock.Any(), 7).
		Return(nil, apperrors.Wrap(assert.AnError, apperrors.ErrCodeInternal, "select job"))

	rec := env.do(t, http.MethodGet, "/api/jobs/7", "", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
