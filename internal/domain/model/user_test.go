package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/taskul/jobly/internal/errors"
)

func validCreateUser() CreateUserRequest {
	return CreateUserRequest{
		Username:  "u1",
		Password:  "password1",
		FirstName: "U1F",
		LastName:  "U1L",
		Email:     "user1@user.com",
	}
}

func TestCreateUserRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateUserRequest)
		field  string
	}{
		{name: "valid", mutate: func(*CreateUserRequest) {}},
		{name: "empty username", mutate: func(r *CreateUserRequest) { r.Username = " " }, field: "username"},
		{name: "short password", mutate: func(r *CreateUserRequest) { r.Password = "abc" }, field: "password"},
		{name: "missing first name", mutate: func(r *CreateUserRequest) { r.FirstName = "" }, field: "firstName"},
		{name: "missing last name", mutate: func(r *CreateUserRequest) { r.LastName = "" }, field: "lastName"},
		{name: "bad email", mutate: func(r *CreateUserRequest) { r.Email = "not-an-email" }, field: "email"},
		{name: "display-name email", mutate: func(r *CreateUserRequest) { r.Email = "U <u@x.com>" }, field: "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateUser()
			tt.mutate(&req)
			err := req.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, tt.field, apperrors.GetField(err))
		})
	}
}

func TestUpdateUserRequest_Assignments(t *testing.T) {
	var req UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"email": "new@x.com", "firstName": "New"}`), &req))
	require.NoError(t, req.Validate())

	assert.Equal(t, []FieldValue{
		{Field: "firstName", Value: "New"},
		{Field: "email", Value: "new@x.com"},
	}, req.Assignments())
}

func TestUpdateUserRequest_NullRejected(t *testing.T) {
	var req UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"lastName": null}`), &req))
	assert.Equal(t, "lastName", apperrors.GetField(req.Validate()))
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Username: "u1", Password: "x"}).Validate())
	assert.Equal(t, "username", apperrors.GetField((&LoginRequest{Password: "x"}).Validate()))
	assert.Equal(t, "password", apperrors.GetField((&LoginRequest{Username: "u1"}).Validate()))
}
