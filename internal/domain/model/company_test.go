package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/taskul/jobly/internal/errors"
)

func TestCreateCompanyRequest_Validate(t *testing.T) {
	tests := []struct {
		name  string
		req   CreateCompanyRequest
		field string
	}{
		{name: "valid", req: CreateCompanyRequest{Handle: "C1", Name: "Company One", NumEmployees: intPtr(5)}},
		{name: "bad handle", req: CreateCompanyRequest{Handle: "c 1", Name: "x"}, field: "handle"},
		{name: "missing handle", req: CreateCompanyRequest{Name: "x"}, field: "handle"},
		{name: "missing name", req: CreateCompanyRequest{Handle: "c1"}, field: "name"},
		{
			name:  "negative employees",
			req:   CreateCompanyRequest{Handle: "c1", Name: "x", NumEmployees: intPtr(-2)},
			field: "numEmployees",
		},
		{
			name:  "bad logo",
			req:   CreateCompanyRequest{Handle: "c1", Name: "x", LogoURL: strPtr("ftp://logo")},
			field: "logoUrl",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.field == "" {
				require.NoError(t, err)
				assert.Equal(t, "c1", tt.req.Handle)
				return
			}
			assert.Equal(t, tt.field, apperrors.GetField(err))
		})
	}
}

func TestUpdateCompanyRequest_Assignments(t *testing.T) {
	var req UpdateCompanyRequest
	require.NoError(t, json.Unmarshal([]byte(`{"logoUrl": null, "numEmployees": 0, "name": " New "}`), &req))
	require.NoError(t, req.Validate())

	assert.Equal(t, []FieldValue{
		{Field: "name", Value: "New"},
		{Field: "numEmployees", Value: 0},
		{Field: "logoUrl", Value: nil},
	}, req.Assignments())
}

func TestUpdateCompanyRequest_NullDescription(t *testing.T) {
	var req UpdateCompanyRequest
	require.NoError(t, json.Unmarshal([]byte(`{"description": null}`), &req))
	assert.Equal(t, "description", apperrors.GetField(req.Validate()))
}

func TestCompanyFilter_Validate(t *testing.T) {
	assert.NoError(t, CompanyFilter{MinEmployees: Some(10), MaxEmployees: Some(10)}.Validate())
	assert.NoError(t, CompanyFilter{MaxEmployees: Some(0)}.Validate())
	err := CompanyFilter{MinEmployees: Some(11), MaxEmployees: Some(10)}.Validate()
	assert.True(t, apperrors.IsValidation(err))
}
