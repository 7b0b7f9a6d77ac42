package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskul/jobly/internal/domain/model"
)

func TestBuildCompanyFilter(t *testing.T) {
	tests := []struct {
		name     string
		filter   model.CompanyFilter
		wantSQL  string
		wantArgs []any
	}{
		{name: "no filters", wantSQL: "ORDER BY name", wantArgs: []any{}},
		{
			name:     "name like",
			filter:   model.CompanyFilter{NameLike: model.Some("net")},
			wantSQL:  "WHERE name ILIKE $1 ORDER BY name",
			wantArgs: []any{"%net%"},
		},
		{
			name:     "employee range",
			filter:   model.CompanyFilter{MinEmployees: model.Some(10), MaxEmployees: model.Some(500)},
			wantSQL:  "WHERE num_employees >= $1 AND num_employees <= $2 ORDER BY name",
			wantArgs: []any{10, 500},
		},
		{
			name:     "max only",
			filter:   model.CompanyFilter{MaxEmployees: model.Some(50), NameLike: model.Some("inc")},
			wantSQL:  "WHERE name ILIKE $1 AND num_employees <= $2 ORDER BY name",
			wantArgs: []any{"%inc%", 50},
		},
		{
			name: "all filters",
			filter: model.CompanyFilter{
				NameLike:     model.Some("c"),
				MinEmployees: model.Some(0),
				MaxEmployees: model.Some(2),
			},
			wantSQL:  "WHERE name ILIKE $1 AND num_employees >= $2 AND num_employees <= $3 ORDER BY name",
			wantArgs: []any{"%c%", 0, 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag := BuildCompanyFilter(tt.filter)
			assert.Equal(t, tt.wantSQL, frag.SQL)
			assert.Equal(t, tt.wantArgs, frag.Args)
		})
	}
}

func TestCompanyFields(t *testing.T) {
	col, ok := companyFields.Column("numEmployees")
	assert.True(t, ok)
	assert.Equal(t, "num_employees", col)

	col, ok = companyFields.Column("logoUrl")
	assert.True(t, ok)
	assert.Equal(t, "logo_url", col)

	_, ok = companyFields.Column("handle")
	assert.False(t, ok)
}
