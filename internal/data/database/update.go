package database

import (
	apperrors "github.com/taskul/jobly/internal/errors"
)

// Assignment is one field of a partial update, in the order the caller supplied it.
type Assignment struct {
	Field string
	Value any
}

// FieldMap maps external (JSON) field names to column names for one entity.
// It is a closed set: only fields present in the map may be updated.
type FieldMap map[string]string

// Column resolves field to its column name.
func (m FieldMap) Column(field string) (string, bool) {
	col, ok := m[field]
	if !ok || col == "" {
		return "", false
	}
	return col, true
}

// BuildUpdateFragment renders the SET list for a partial update:
//
//	"first_name"=$1, "age"=$2
//
// Args hold the values in assignment order. Callers append their key value(s) and address
// them with Fragment.NextPlaceholder, e.g. `WHERE id = $3`.
func BuildUpdateFragment(assignments []Assignment, fields FieldMap) (Fragment, error) {
	if len(assignments) == 0 {
		return Fragment{}, apperrors.Validation("No data")
	}

	seen := make(map[string]struct{}, len(assignments))
	b := NewBuilder(", ")
	for _, a := range assignments {
		col, ok := fields.Column(a.Field)
		if !ok {
			return Fragment{}, apperrors.ValidationField(a.Field, "Field "+a.Field+" cannot be updated.")
		}
		if _, dup := seen[col]; dup {
			return Fragment{}, apperrors.ValidationField(a.Field, "Field "+a.Field+" was given more than once.")
		}
		seen[col] = struct{}{}
		b.Add(QuoteIdentifier(col)+"=$1", a.Value)
	}
	return b.Build(), nil
}
