//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"regexp"
	"strings"
	"unicode/utf8"

	apperrors "github.com/taskul/jobly/internal/errors"
)

const (
	maxJobTitleLen = 255
)

// reEquity accepts a decimal fraction between 0 and 1 inclusive, e.g. "0", "0.05", ".5", "1.0".
var reEquity = regexp.MustCompile(`^(0(\.[0-9]+)?|\.[0-9]+|1(\.0+)?)$`)

// FieldValue is one updated field of a partial update, keyed by its external (JSON) name.
type FieldValue struct {
	Field string
	Value any
}

// Job is a job posting owned by a company.
type Job struct {
	ID            int     `json:"id"            db:"id"`
	Title         string  `json:"title"         db:"title"`
	Salary        *int    `json:"salary"        db:"salary"`
	Equity        *string `json:"equity"        db:"equity"`
	CompanyHandle string  `json:"companyHandle" db:"company_handle"`
}

// CreateJobRequest represents parameters to create a Job.
type CreateJobRequest struct {
	Title         string  `json:"title"`
	Salary        *int    `json:"salary,omitempty"`
	Equity        *string `json:"equity,omitempty"`
	CompanyHandle string  `json:"companyHandle"`
}

// Validate validates CreateJobRequest.
func (r *CreateJobRequest) Validate() error {
	if err := validateJobTitle(r.Title); err != nil {
		return err
	}
	r.Title = strings.TrimSpace(r.Title)
	if r.Salary != nil && *r.Salary < 0 {
		return apperrors.ValidationField("salary", "salary must be >= 0")
	}
	if r.Equity != nil && !reEquity.MatchString(*r.Equity) {
		return apperrors.ValidationField("equity", "equity must be a decimal between 0 and 1")
	}
	if strings.TrimSpace(r.CompanyHandle) == "" {
		return apperrors.ValidationField("companyHandle", "companyHandle is required")
	}
	return nil
}

// UpdateJobRequest is a partial update of a Job. Only title, salary and equity are mutable;
// salary and equity may be cleared with an explicit JSON null.
type UpdateJobRequest struct {
	Title  Optional[string] `json:"title"`
	Salary Optional[int]    `json:"salary"`
	Equity Optional[string] `json:"equity"`
}

// Validate checks supplied values. An empty request is not rejected here; the update
// builder reports it.
func (r *UpdateJobRequest) Validate() error {
	if r.Title.Present() {
		title, ok := r.Title.Get()
		if !ok {
			return apperrors.ValidationField("title", "title cannot be null")
		}
		if err := validateJobTitle(title); err != nil {
			return err
		}
		r.Title = Some(strings.TrimSpace(title))
	}
	if salary, ok := r.Salary.Get(); ok && salary < 0 {
		return apperrors.ValidationField("salary", "salary must be >= 0")
	}
	if equity, ok := r.Equity.Get(); ok && !reEquity.MatchString(equity) {
		return apperrors.ValidationField("equity", "equity must be a decimal between 0 and 1")
	}
	return nil
}

// Assignments lists the supplied fields in a fixed order: title, salary, equity.
// Null values are returned as nil.
func (r *UpdateJobRequest) Assignments() []FieldValue {
	out := make([]FieldValue, 0, 3)
	out = appendOptional(out, "title", r.Title)
	out = appendOptional(out, "salary", r.Salary)
	out = appendOptional(out, "equity", r.Equity)
	return out
}

// JobFilter holds the optional search filters for listing jobs. Presence is explicit, so a
// minimum salary of 0 is a real constraint.
type JobFilter struct {
	Title     Optional[string]
	MinSalary Optional[int]
	HasEquity Optional[bool]
}

// Validate validates JobFilter.
func (f JobFilter) Validate() error {
	if minSalary, ok := f.MinSalary.Get(); ok && minSalary < 0 {
		return apperrors.ValidationField("minSalary", "minSalary must be >= 0")
	}
	return nil
}

func validateJobTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return apperrors.ValidationField("title", "title is required and cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxJobTitleLen {
		return apperrors.ValidationField("title", "title cannot exceed 255 characters")
	}
	return nil
}

func appendOptional[T any](out []FieldValue, field string, o Optional[T]) []FieldValue {
	if !o.Present() {
		return out
	}
	if v, ok := o.Get(); ok {
		return append(out, FieldValue{Field: field, Value: v})
	}
	return append(out, FieldValue{Field: field, Value: nil})
}
