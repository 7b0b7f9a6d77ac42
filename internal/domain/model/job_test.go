package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/taskul/jobly/internal/errors"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestCreateJobRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateJobRequest
		field   string
		wantErr bool
	}{
		{
			name: "valid",
			req:  CreateJobRequest{Title: " dev ", Salary: intPtr(100000), Equity: strPtr("0.5"), CompanyHandle: "c1"},
		},
		{
			name: "valid without optional fields",
			req:  CreateJobRequest{Title: "dev", CompanyHandle: "c1"},
		},
		{name: "missing title", req: CreateJobRequest{CompanyHandle: "c1"}, field: "title", wantErr: true},
		{
			name:    "negative salary",
			req:     CreateJobRequest{Title: "dev", Salary: intPtr(-1), CompanyHandle: "c1"},
			field:   "salary",
			wantErr: true,
		},
		{
			name:    "equity above one",
			req:     CreateJobRequest{Title: "dev", Equity: strPtr("1.5"), CompanyHandle: "c1"},
			field:   "equity",
			wantErr: true,
		},
		{
			name:    "equity not numeric",
			req:     CreateJobRequest{Title: "dev", Equity: strPtr("lots"), CompanyHandle: "c1"},
			field:   "equity",
			wantErr: true,
		},
		{name: "missing company", req: CreateJobRequest{Title: "dev"}, field: "companyHandle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, tt.field, apperrors.GetField(err))
		})
	}
}

func TestCreateJobRequest_ValidateTrimsTitle(t *testing.T) {
	req := CreateJobRequest{Title: "  dev  ", CompanyHandle: "c1"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "dev", req.Title)
}

func TestUpdateJobRequest_Assignments(t *testing.T) {
	var req UpdateJobRequest
	require.NoError(t, json.Unmarshal([]byte(`{"equity": null, "salary": 110000}`), &req))
	require.NoError(t, req.Validate())

	assert.Equal(t, []FieldValue{
		{Field: "salary", Value: 110000},
		{Field: "equity", Value: nil},
	}, req.Assignments())
}

func TestUpdateJobRequest_AssignmentsIgnoreKeyOrder(t *testing.T) {
	var req UpdateJobRequest
	require.NoError(t, json.Unmarshal([]byte(`{"equity":"0.1","title":"x","salary":null}`), &req))
	require.NoError(t, req.Validate())

	assert.Equal(t, []FieldValue{
		{Field: "title", Value: "x"},
		{Field: "salary", Value: nil},
		{Field: "equity", Value: "0.1"},
	}, req.Assignments())
}

func TestUpdateJobRequest_Empty(t *testing.T) {
	var req UpdateJobRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.NoError(t, req.Validate())
	assert.Empty(t, req.Assignments())
}

func TestUpdateJobRequest_Validate(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"null title", `{"title": null}`, "title"},
		{"blank title", `{"title": "  "}`, "title"},
		{"negative salary", `{"salary": -5}`, "salary"},
		{"bad equity", `{"equity": "2"}`, "equity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateJobRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			err := req.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.field, apperrors.GetField(err))
		})
	}
}

func TestJobFilter_Validate(t *testing.T) {
	assert.NoError(t, JobFilter{}.Validate())
	assert.NoError(t, JobFilter{MinSalary: Some(0)}.Validate())
	assert.True(t, apperrors.IsValidation(JobFilter{MinSalary: Some(-1)}.Validate()))
}
