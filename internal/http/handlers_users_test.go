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

func sampleUser(username string) *model.User {
	return &model.User{
		Username:  username,
		FirstName: "U",
		LastName:  "F",
		Email:     username + "@email.com",
	}
}

func TestUsers_AdminCreate_ReturnsToken(t *testing.T) {
	env := newTestEnv(t)
	env.users.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *model.CreateUserRequest) (*model.User, error) {
			assert.Equal(t, "new", req.Username)
			assert.NotEmpty(t, req.Password)
			assert.True(t, req.IsAdmin)
			u := sampleUser("new")
			u.IsAdmin = true
			return u, nil
		})

	rec := env.do(t, http.MethodPost, "/api/users", adminToken,
		`{"username":"new","firstName":"F","lastName":"L","email":"new@email.com","isAdmin":true}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	sess, err := env.sessions.Get(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "new", sess.Username)
	assert.True(t, sess.IsAdmin())
}

func TestUsers_AdminOnlyRoutes(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/users", userToken, `{}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUsers_List(t *testing.T) {
	env := newTestEnv(t)
	env.users.EXPECT().List(gomock.Any()).Return([]*model.User{sampleUser("u1"), sampleUser("u2")}, nil)

	rec := env.do(t, http.MethodGet, "/api/users", adminToken, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["users"], 2)
}

func TestUsers_Get_SelfAndAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.users.EXPECT().GetByUsername(gomock.Any(), "u1").Return(sampleUser("u1"), nil).Times(2)

	rec := env.do(t, http.MethodGet, "/api/users/u1", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/users/u1", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUsers_OtherUserForbidden(t *testing.T) {
	env := newTestEnv(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/users/u2"},
		{http.MethodPatch, "/api/users/u2"},
		{http.MethodDelete, "/api/users/u2"},
		{http.MethodPost, "/api/users/u2/jobs/1"},
		{http.MethodGet, "/api/users/u2/jobs"},
	} {
		rec := env.do(t, tc.method, tc.path, userToken, `{}`)
		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestUsers_CookieAuth(t *testing.T) {
	env := newTestEnv(t)
	env.users.EXPECT().GetByUsername(gomock.Any(), "u1").Return(sampleUser("u1"), nil)

	req := newRequest(http.MethodGet, "/api/users/u1", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: userToken})
	rec := serve(env.handler, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUsers_Update(t *testing.T) {
	env := newTestEnv(t)
	env.users.EXPECT().
		Update(gomock.Any(), "u1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req model.UpdateUserRequest) (*model.User, error) {
			first, ok := req.FirstName.Get()
			assert.True(t, ok)
			assert.Equal(t, "New", first)
			u := sampleUser("u1")
			u.FirstName = first
			return u, nil
		})

	rec := env.do(t, http.MethodPatch, "/api/users/u1", userToken, `{"firstName":"New"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	user := decodeBody(t, rec)["user"].(map[string]any)
	assert.Equal(t, "New", user["firstName"])
	assert.NotContains(t, user, "password")
}

func TestUsers_Update_RejectsUsernameChange(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPatch, "/api/users/u1", userToken, `{"username":"other"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUsers_Delete_RevokesSessions(t *testing.T) {
	env := newTestEnv(t)
	env.users.EXPECT().Delete(gomock.Any(), "u1").Return(nil)

	rec := env.do(t, http.MethodDelete, "/api/users/u1", adminToken, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":"u1"}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/users/u1", userToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUsers_Apply(t *testing.T) {
	env := newTestEnv(t)
	env.users.EXPECT().ApplyToJob(gomock.Any(), "u1", 3).Return(nil)

	rec := env.do(t, http.MethodPost, "/api/users/u1/jobs/3", userToken, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"applied":3}`, rec.Body.String())
}

func TestUsers_Apply_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "unknown job", err: apperrors.NotFound("No job: 0"), status: http.StatusNotFound},
		{name: "already applied", err: apperrors.Conflict("Already applied to job: 0"), status: http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.users.EXPECT().ApplyToJob(gomock.Any(), "u1", 0).Return(tt.err)

			rec := env.do(t, http.MethodPost, "/api/users/u1/jobs/0", adminToken, nil)

			require.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestUsers_Apply_NonIntegerJob(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/users/u1/jobs/x", userToken, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUsers_AppliedJobs(t *testing.T) {
	env := newTestEnv(t)
	env.users.EXPECT().GetByUsername(gomock.Any(), "u1").Return(sampleUser("u1"), nil)
	env.users.EXPECT().ListAppliedJobs(gomock.Any(), "u1").Return(nil, nil)

	rec := env.do(t, http.MethodGet, "/api/users/u1/jobs", userToken, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"jobs":[]}`, rec.Body.String())
}
