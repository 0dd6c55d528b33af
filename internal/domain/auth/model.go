// Package auth provides users, roles and JWT authentication.
package auth

import (
	"regexp"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/entity"
	"tillpoint/internal/core/id"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Role groups module grants assigned to users. A module grant is a
// string key such as "billing" or "stock" checked by the permission
// middleware.
type Role struct {
	entity.Base

	Name        string   `db:"name" json:"name"`
	Description string   `db:"description" json:"description,omitempty"`
	Modules     []string `db:"modules" json:"modules"`
	Active      bool     `db:"active" json:"active"`
}

// NewRole creates a role with initialized base fields.
func NewRole(name string) *Role {
	return &Role{
		Base:   entity.NewBase(),
		Name:   name,
		Active: true,
	}
}

// Validate checks business rules.
func (r *Role) Validate() error {
	if r.Name == "" {
		return apperror.NewMissingFields([]apperror.MissingField{
			{Name: "name", Message: "Role name is required"},
		})
	}
	return nil
}

// HasModule reports whether the role grants the module.
func (r *Role) HasModule(module string) bool {
	for _, m := range r.Modules {
		if m == module {
			return true
		}
	}
	return false
}

// User is a back office account holder.
type User struct {
	entity.Base

	Name         string `db:"name" json:"name"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	RoleID       id.ID  `db:"role_id" json:"roleId"`
	Active       bool   `db:"active" json:"active"`

	// RoleName is resolved on read, not stored on the user row.
	RoleName string `db:"-" json:"roleName,omitempty"`
}

// NewUser creates a user with initialized base fields.
func NewUser(name, email string) *User {
	return &User{
		Base:   entity.NewBase(),
		Name:   name,
		Email:  email,
		Active: true,
	}
}

// Validate checks business rules.
func (u *User) Validate() error {
	var missing []apperror.MissingField
	if u.Name == "" {
		missing = append(missing, apperror.MissingField{Name: "name", Message: "Name is required"})
	}
	if u.Email == "" {
		missing = append(missing, apperror.MissingField{Name: "email", Message: "Email is required"})
	}
	if id.IsNil(u.RoleID) {
		missing = append(missing, apperror.MissingField{Name: "roleId", Message: "Role is required"})
	}
	if len(missing) > 0 {
		return apperror.NewMissingFields(missing)
	}

	if !emailRe.MatchString(u.Email) {
		return apperror.NewValidation("invalid email address")
	}
	return nil
}

// Credentials is a login request.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the result of a successful login.
type Session struct {
	Token   string   `json:"token"`
	UserID  id.ID    `json:"userId"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Role    string   `json:"role"`
	Modules []string `json:"modules"`
}
