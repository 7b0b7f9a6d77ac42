//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	apperrors "github.com/taskul/jobly/internal/errors"
)

const (
	maxCompanyNameLen   = 255
	maxCompanyHandleLen = 25
)

var reHandle = regexp.MustCompile(`^[a-z0-9-]+$`)

// Company is an employer that owns jobs.
type Company struct {
	Handle       string  `json:"handle"       db:"handle"`
	Name         string  `json:"name"         db:"name"`
	Description  string  `json:"description"  db:"description"`
	NumEmployees *int    `json:"numEmployees" db:"num_employees"`
	LogoURL      *string `json:"logoUrl"      db:"logo_url"`
}

// CompanyWithJobs is a company together with the jobs it posts.
type CompanyWithJobs struct {
	Company
	Jobs []*Job `json:"jobs"`
}

// CreateCompanyRequest represents parameters to create a Company.
type CreateCompanyRequest struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	NumEmployees *int    `json:"numEmployees,omitempty"`
	LogoURL      *string `json:"logoUrl,omitempty"`
}

// Validate validates CreateCompanyRequest.
func (r *CreateCompanyRequest) Validate() error {
	r.Handle = strings.ToLower(strings.TrimSpace(r.Handle))
	if r.Handle == "" {
		return apperrors.ValidationField("handle", "handle is required")
	}
	if len(r.Handle) > maxCompanyHandleLen || !reHandle.MatchString(r.Handle) {
		return apperrors.ValidationField("handle", "handle must be 1-25 lowercase letters, digits or dashes")
	}
	if err := validateCompanyName(r.Name); err != nil {
		return err
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.NumEmployees != nil && *r.NumEmployees < 0 {
		return apperrors.ValidationField("numEmployees", "numEmployees must be >= 0")
	}
	if r.LogoURL != nil {
		if err := validateLogoURL(*r.LogoURL); err != nil {
			return err
		}
	}
	return nil
}

// UpdateCompanyRequest is a partial update of a Company. The handle is immutable.
type UpdateCompanyRequest struct {
	Name         Optional[string] `json:"name"`
	Description  Optional[string] `json:"description"`
	NumEmployees Optional[int]    `json:"numEmployees"`
	LogoURL      Optional[string] `json:"logoUrl"`
}

// Validate checks supplied values.
func (r *UpdateCompanyRequest) Validate() error {
	if r.Name.Present() {
		name, ok := r.Name.Get()
		if !ok {
			return apperrors.ValidationField("name", "name cannot be null")
		}
		if err := validateCompanyName(name); err != nil {
			return err
		}
		r.Name = Some(strings.TrimSpace(name))
	}
	if r.Description.IsNull() {
		return apperrors.ValidationField("description", "description cannot be null")
	}
	if n, ok := r.NumEmployees.Get(); ok && n < 0 {
		return apperrors.ValidationField("numEmployees", "numEmployees must be >= 0")
	}
	if logo, ok := r.LogoURL.Get(); ok {
		if err := validateLogoURL(logo); err != nil {
			return err
		}
	}
	return nil
}

// Assignments lists the supplied fields in a fixed order: name, description, numEmployees, logoUrl.
func (r *UpdateCompanyRequest) Assignments() []FieldValue {
	out := make([]FieldValue, 0, 4)
	out = appendOptional(out, "name", r.Name)
	out = appendOptional(out, "description", r.Description)
	out = appendOptional(out, "numEmployees", r.NumEmployees)
	out = appendOptional(out, "logoUrl", r.LogoURL)
	return out
}

// CompanyFilter holds the optional search filters for listing companies.
type CompanyFilter struct {
	NameLike     Optional[string]
	MinEmployees Optional[int]
	MaxEmployees Optional[int]
}

// Validate rejects a minimum greater than the maximum.
func (f CompanyFilter) Validate() error {
	minEmp, hasMin := f.MinEmployees.Get()
	maxEmp, hasMax := f.MaxEmployees.Get()
	if hasMin && hasMax && minEmp > maxEmp {
		return apperrors.ValidationField("minEmployees", "minEmployees cannot be greater than maxEmployees")
	}
	return nil
}

func validateCompanyName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.ValidationField("name", "name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxCompanyNameLen {
		return apperrors.ValidationField("name", "name cannot exceed 255 characters")
	}
	return nil
}

func validateLogoURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperrors.ValidationField("logoUrl", "logoUrl must be a valid http(s) URL")
	}
	return nil
}
