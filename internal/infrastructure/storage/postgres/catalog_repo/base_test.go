package catalog_repo

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillpoint/internal/core/apperror"
)

func newTestRepo() *BaseCatalogRepo[any] {
	return NewBaseCatalogRepo[any](
		nil,
		"test_table",
		[]string{"id", "code", "name", "created_at"},
		[]string{"name", "code"},
		func() any { return nil },
	)
}

func TestParseOrderBy(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		name    string
		orderBy string
		want    string
		wantErr bool
	}{
		{"empty defaults to created_at desc", "", "created_at DESC", false},
		{"plain field is asc", "name", "name ASC", false},
		{"minus prefix is desc", "-name", "name DESC", false},
		{"plus prefix is asc", "+code", "code ASC", false},
		{"updated_at always allowed", "updated_at", "updated_at ASC", false},
		{"unknown column rejected", "password_hash", "", true},
		{"injection rejected", "name; DROP TABLE test_table", "", true},
		{"bare minus rejected", "-", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.orderBy)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperror.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBaseSelect_SearchSQL(t *testing.T) {
	repo := newTestRepo()

	pattern := "%soap%"
	or := squirrel.Or{
		squirrel.ILike{"name": pattern},
		squirrel.ILike{"code": pattern},
	}

	sql, args, err := repo.baseSelect().
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(or).
		ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, code, name, created_at FROM test_table WHERE deletion_mark = $1 AND (name ILIKE $2 OR code ILIKE $3)",
		sql)
	assert.Equal(t, []any{false, pattern, pattern}, args)
}

func TestSearchColsDefault(t *testing.T) {
	repo := NewBaseCatalogRepo[any](nil, "t", []string{"id"}, nil, func() any { return nil })
	assert.Equal(t, []string{"name", "code"}, repo.searchCols)
}
