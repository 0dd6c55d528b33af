// Package auth_repo provides PostgreSQL repositories for users and roles.
package auth_repo

import (
	"tillpoint/internal/domain/auth"
	"tillpoint/internal/infrastructure/storage/postgres"
	"tillpoint/internal/infrastructure/storage/postgres/catalog_repo"
)

const roleTable = "cat_roles"

// RoleRepo implements auth.RoleRepository.
type RoleRepo struct {
	*catalog_repo.BaseCatalogRepo[*auth.Role]
}

var _ auth.RoleRepository = (*RoleRepo)(nil)

// NewRoleRepo creates a new role repository.
func NewRoleRepo(tx *postgres.TxManager) *RoleRepo {
	return &RoleRepo{
		BaseCatalogRepo: catalog_repo.NewBaseCatalogRepo[*auth.Role](
			tx,
			roleTable,
			postgres.ExtractDBColumns[auth.Role](),
			[]string{"name", "code"},
			func() *auth.Role { return &auth.Role{} },
		),
	}
}
