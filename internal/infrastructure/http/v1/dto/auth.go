package dto

import (
	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/domain/auth"
)

// LoginRequest carries credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Roles ---

// CreateRoleRequest adds a role.
type CreateRoleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Modules     []string `json:"modules"`
	Active      *bool    `json:"active"`
}

// ToEntity converts the request to a role.
func (r *CreateRoleRequest) ToEntity() *auth.Role {
	role := auth.NewRole(r.Name)
	role.Description = r.Description
	role.Modules = r.Modules
	if r.Active != nil {
		role.Active = *r.Active
	}
	return role
}

// UpdateRoleRequest edits a role.
type UpdateRoleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Modules     []string `json:"modules"`
	Active      bool     `json:"active"`
	Version     int      `json:"version" binding:"required,min=1"`
}

// Apply copies the request onto an existing role.
func (r *UpdateRoleRequest) Apply(role *auth.Role) {
	role.Name = r.Name
	role.Description = r.Description
	role.Modules = r.Modules
	role.Active = r.Active
	role.Version = r.Version
	role.Touch()
}

// --- Users ---

// CreateUserRequest adds a staff account.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	RoleID   string `json:"roleId" binding:"required"`
}

// ToEntity converts the request to a user (without the password hash).
func (r *CreateUserRequest) ToEntity() (*auth.User, error) {
	roleID, err := id.Parse(r.RoleID)
	if err != nil {
		return nil, apperror.NewValidation("invalid role id").WithDetail("roleId", r.RoleID)
	}
	user := auth.NewUser(r.Name, r.Email)
	user.RoleID = roleID
	return user, nil
}

// UpdateUserRequest edits a staff account. Password is optional; an
// empty value keeps the current one.
type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
	RoleID   string `json:"roleId" binding:"required"`
	Active   bool   `json:"active"`
	Version  int    `json:"version" binding:"required,min=1"`
}

// Apply copies the request onto an existing user.
func (r *UpdateUserRequest) Apply(user *auth.User) error {
	roleID, err := id.Parse(r.RoleID)
	if err != nil {
		return apperror.NewValidation("invalid role id").WithDetail("roleId", r.RoleID)
	}
	user.Name = r.Name
	user.Email = r.Email
	user.RoleID = roleID
	user.Active = r.Active
	user.Version = r.Version
	user.Touch()
	return nil
}
