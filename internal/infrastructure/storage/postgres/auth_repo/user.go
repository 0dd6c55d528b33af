package auth_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/domain/auth"
	"tillpoint/internal/infrastructure/storage/postgres"
	"tillpoint/internal/infrastructure/storage/postgres/catalog_repo"
)

const userTable = "cat_users"

// UserRepo implements auth.UserRepository.
type UserRepo struct {
	*catalog_repo.BaseCatalogRepo[*auth.User]
}

var _ auth.UserRepository = (*UserRepo)(nil)

// NewUserRepo creates a new user repository.
func NewUserRepo(tx *postgres.TxManager) *UserRepo {
	return &UserRepo{
		BaseCatalogRepo: catalog_repo.NewBaseCatalogRepo[*auth.User](
			tx,
			userTable,
			postgres.ExtractDBColumns[auth.User](),
			[]string{"name", "code", "email"},
			func() *auth.User { return &auth.User{} },
		),
	}
}

// userRow carries the joined role name alongside the user columns.
type userRow struct {
	auth.User
	RoleName string `db:"role_name"`
}

// GetByEmail retrieves a user by email with the role name resolved.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	q := r.Builder().
		Select(
			"u.id", "u.code", "u.deletion_mark", "u.version",
			"u.created_at", "u.updated_at",
			"u.name", "u.email", "u.password_hash", "u.role_id", "u.active",
			"r.name AS role_name",
		).
		From(userTable + " u").
		Join(roleTable + " r ON r.id = u.role_id").
		Where(squirrel.Eq{"u.email": email}).
		Where(squirrel.Eq{"u.deletion_mark": false}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, r.Querier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", email)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	user := row.User
	user.RoleName = row.RoleName
	return &user, nil
}
