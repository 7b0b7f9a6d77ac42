package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskul/jobly/internal/domain/model"
	apperrors "github.com/taskul/jobly/internal/errors"
	"github.com/taskul/jobly/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

func decodeJobUpdate(t *testing.T, body string) model.UpdateJobRequest {
	t.Helper()
	var req model.UpdateJobRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestJobRepo_CreateGetUpdateDelete(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		testutil.SeedFixtures(t, db)
		repo := NewJobRepo(db)

		created, err := repo.Create(ctx, &model.CreateJobRequest{
			Title:         "dev",
			Salary:        testutil.IntPtr(100000),
			Equity:        testutil.StringPtr("0.5"),
			CompanyHandle: testutil.FixtureCompany1,
		})
		require.NoError(t, err)
		require.NotZero(t, created.ID)
		assert.Equal(t, "dev", created.Title)
		require.NotNil(t, created.Equity)
		assert.Equal(t, "0.5", *created.Equity)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)

		updated, err := repo.Update(ctx, created.ID, decodeJobUpdate(t, `{"salary": 110000}`))
		require.NoError(t, err)
		require.NotNil(t, updated.Salary)
		assert.Equal(t, 110000, *updated.Salary)
		assert.Equal(t, "dev", updated.Title)
		assert.Equal(t, "0.5", *updated.Equity)

		require.NoError(t, repo.Delete(ctx, created.ID))

		_, err = repo.GetByID(ctx, created.ID)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestJobRepo_Update(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		fx := testutil.SeedFixtures(t, db)
		repo := NewJobRepo(db)
		id := fx.JobIDs[0]

		t.Run("clears equity with null", func(t *testing.T) {
			job, err := repo.Update(ctx, id, decodeJobUpdate(t, `{"equity": null, "title": "New"}`))
			require.NoError(t, err)
			assert.Nil(t, job.Equity)
			assert.Equal(t, "New", job.Title)
			assert.Equal(t, testutil.FixtureCompany1, job.CompanyHandle)
		})

		t.Run("empty payload", func(t *testing.T) {
			_, err := repo.Update(ctx, id, decodeJobUpdate(t, `{}`))
			assert.True(t, apperrors.IsValidation(err))
		})

		t.Run("missing job", func(t *testing.T) {
			_, err := repo.Update(ctx, -1, decodeJobUpdate(t, `{"title": "x"}`))
			assert.True(t, apperrors.IsNotFound(err))
		})
	})
}

func TestJobRepo_List(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		testutil.SeedFixtures(t, db)
		repo := NewJobRepo(db)

		titles := func(jobs []*model.Job) []string {
			out := make([]string, len(jobs))
			for i, j := range jobs {
				out[i] = j.Title
			}
			return out
		}

		all, err := repo.List(ctx, model.JobFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Job1", "Job2", "Job3"}, titles(all))

		withEquity, err := repo.List(ctx, model.JobFilter{HasEquity: model.Some(true)})
		require.NoError(t, err)
		assert.Equal(t, []string{"Job1", "Job2"}, titles(withEquity))

		combined, err := repo.List(ctx, model.JobFilter{
			Title:     model.Some("job"),
			MinSalary: model.Some(150),
			HasEquity: model.Some(true),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Job2"}, titles(combined))

		byCompany, err := repo.ListByCompany(ctx, testutil.FixtureCompany2)
		require.NoError(t, err)
		assert.Equal(t, []string{"Job3"}, titles(byCompany))
	})
}

func TestJobRepo_CreateUnknownCompany(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		_, err := NewJobRepo(db).Create(context.Background(), &model.CreateJobRequest{
			Title:         "dev",
			CompanyHandle: "nope",
		})
		assert.True(t, apperrors.IsForeignKey(err))
	})
}

func TestCompanyRepo_CRUD(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		testutil.SeedFixtures(t, db)
		repo := NewCompanyRepo(db)

		c, err := repo.Create(ctx, &model.CreateCompanyRequest{
			Handle:       "new",
			Name:         "New",
			Description:  "New Description",
			NumEmployees: testutil.IntPtr(1),
		})
		require.NoError(t, err)
		assert.Equal(t, "new", c.Handle)

		_, err = repo.Create(ctx, &model.CreateCompanyRequest{Handle: "new", Name: "Other"})
		assert.True(t, apperrors.IsConflict(err))

		filtered, err := repo.List(ctx, model.CompanyFilter{MinEmployees: model.Some(2)})
		require.NoError(t, err)
		require.Len(t, filtered, 1)
		assert.Equal(t, testutil.FixtureCompany2, filtered[0].Handle)

		var upd model.UpdateCompanyRequest
		require.NoError(t, json.Unmarshal([]byte(`{"numEmployees": 10, "logoUrl": null}`), &upd))
		updated, err := repo.Update(ctx, testutil.FixtureCompany1, upd)
		require.NoError(t, err)
		assert.Equal(t, 10, *updated.NumEmployees)
		assert.Nil(t, updated.LogoURL)

		require.NoError(t, repo.Delete(ctx, testutil.FixtureCompany1))
		_, err = repo.GetByHandle(ctx, testutil.FixtureCompany1)
		assert.True(t, apperrors.IsNotFound(err))

		jobs, err := NewJobRepo(db).ListByCompany(ctx, testutil.FixtureCompany1)
		require.NoError(t, err)
		assert.Empty(t, jobs)
	})
}

func TestUserRepo_Lifecycle(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		fx := testutil.SeedFixtures(t, db)
		repo := NewUserRepo(db, UserRepoConfig{BcryptCost: bcrypt.MinCost})

		u, err := repo.Create(ctx, &model.CreateUserRequest{
			Username:  "new",
			Password:  "password",
			FirstName: "Test",
			LastName:  "Tester",
			Email:     "test@test.com",
		})
		require.NoError(t, err)
		assert.False(t, u.IsAdmin)

		_, err = repo.Authenticate(ctx, "new", "password")
		require.NoError(t, err)
		_, err = repo.Authenticate(ctx, "new", "wrong")
		assert.True(t, apperrors.IsUnauthorized(err))
		_, err = repo.Authenticate(ctx, "nobody", "password")
		assert.True(t, apperrors.IsUnauthorized(err))

		var upd model.UpdateUserRequest
		require.NoError(t, json.Unmarshal([]byte(`{"firstName": "Renamed", "password": "changed"}`), &upd))
		updated, err := repo.Update(ctx, "new", upd)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.FirstName)
		_, err = repo.Authenticate(ctx, "new", "changed")
		require.NoError(t, err)

		require.NoError(t, repo.ApplyToJob(ctx, "new", fx.JobIDs[1]))
		assert.True(t, apperrors.IsConflict(repo.ApplyToJob(ctx, "new", fx.JobIDs[1])))
		assert.True(t, apperrors.IsNotFound(repo.ApplyToJob(ctx, "new", -1)))

		applied, err := repo.ListAppliedJobs(ctx, "new")
		require.NoError(t, err)
		require.Len(t, applied, 1)
		assert.Equal(t, fx.JobIDs[1], applied[0].ID)

		require.NoError(t, repo.Delete(ctx, "new"))
		_, err = repo.GetByUsername(ctx, "new")
		assert.True(t, apperrors.IsNotFound(err))
	})
}
