//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	apperrors "github.com/taskul/jobly/internal/errors"
)

const (
	minUsernameLen = 1
	maxUsernameLen = 25
	minPasswordLen = 5
	maxPasswordLen = 72 // bcrypt input limit
	maxNameLen     = 30
	maxEmailLen    = 60
)

// User is an account. The password hash is never part of this type.
type User struct {
	Username  string `json:"username"  db:"username"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName"  db:"last_name"`
	Email     string `json:"email"     db:"email"`
	IsAdmin   bool   `json:"isAdmin"   db:"is_admin"`
}

// CreateUserRequest represents parameters to create a User.
type CreateUserRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin,omitempty"`
}

// Validate validates CreateUserRequest.
func (r *CreateUserRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if n := utf8.RuneCountInString(r.Username); n < minUsernameLen || n > maxUsernameLen {
		return apperrors.ValidationField("username", "username must be between 1 and 25 characters")
	}
	if err := validatePassword(r.Password); err != nil {
		return err
	}
	if err := validatePersonName("firstName", r.FirstName); err != nil {
		return err
	}
	if err := validatePersonName("lastName", r.LastName); err != nil {
		return err
	}
	return validateEmail(r.Email)
}

// UpdateUserRequest is a partial update of a User. Username and admin flag are immutable here.
type UpdateUserRequest struct {
	FirstName Optional[string] `json:"firstName"`
	LastName  Optional[string] `json:"lastName"`
	Password  Optional[string] `json:"password"`
	Email     Optional[string] `json:"email"`
}

// Validate checks supplied values; none of the fields may be null.
func (r *UpdateUserRequest) Validate() error {
	checks := []struct {
		field string
		value Optional[string]
		check func(string) error
	}{
		{"firstName", r.FirstName, func(v string) error { return validatePersonName("firstName", v) }},
		{"lastName", r.LastName, func(v string) error { return validatePersonName("lastName", v) }},
		{"password", r.Password, validatePassword},
		{"email", r.Email, validateEmail},
	}
	for _, c := range checks {
		if !c.value.Present() {
			continue
		}
		v, ok := c.value.Get()
		if !ok {
			return apperrors.ValidationField(c.field, c.field+" cannot be null")
		}
		if err := c.check(v); err != nil {
			return err
		}
	}
	return nil
}

// Assignments lists the supplied fields in a fixed order: firstName, lastName, password, email.
// The password is returned in plain text; the repository hashes it before it is stored.
func (r *UpdateUserRequest) Assignments() []FieldValue {
	out := make([]FieldValue, 0, 4)
	out = appendOptional(out, "firstName", r.FirstName)
	out = appendOptional(out, "lastName", r.LastName)
	out = appendOptional(out, "password", r.Password)
	out = appendOptional(out, "email", r.Email)
	return out
}

// LoginRequest carries credentials for POST /auth/token.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate validates LoginRequest.
func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return apperrors.ValidationField("username", "username is required")
	}
	if r.Password == "" {
		return apperrors.ValidationField("password", "password is required")
	}
	return nil
}

func validatePassword(p string) error {
	if n := len(p); n < minPasswordLen || n > maxPasswordLen {
		return apperrors.ValidationField("password", "password must be between 5 and 72 bytes")
	}
	return nil
}

func validatePersonName(field, v string) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(v)); n < 1 || n > maxNameLen {
		return apperrors.ValidationField(field, field+" must be between 1 and 30 characters")
	}
	return nil
}

func validateEmail(v string) error {
	v = strings.TrimSpace(v)
	if utf8.RuneCountInString(v) > maxEmailLen {
		return apperrors.ValidationField("email", "email cannot exceed 60 characters")
	}
	if addr, err := mail.ParseAddress(v); err != nil || addr.Address != v {
		return apperrors.ValidationField("email", "email must be a valid address")
	}
	return nil
}

// AdminCreateUserRequest is the body an admin sends to create an account. The password is
// generated by the server.
type AdminCreateUserRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
}

// WithPassword converts r into a CreateUserRequest using the given password.
func (r AdminCreateUserRequest) WithPassword(password string) *CreateUserRequest {
	return &CreateUserRequest{
		Username:  r.Username,
		Password:  password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		IsAdmin:   r.IsAdmin,
	}
}
