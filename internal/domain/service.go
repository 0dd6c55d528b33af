package domain

import (
	"context"
	"errors"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/entity"
	"tillpoint/internal/core/id"
	"tillpoint/internal/core/tx"
)

// CatalogService provides generic CRUD business logic for catalog
// entities. Concrete services embed it and register hooks for
// type-specific behavior such as code generation.
type CatalogService[T entity.Validatable] struct {
	repo      CatalogRepository[T]
	txManager tx.Manager
	hooks     *HookRegistry[T]
}

// NewCatalogService creates a catalog service.
func NewCatalogService[T entity.Validatable](repo CatalogRepository[T], txManager tx.Manager) *CatalogService[T] {
	return &CatalogService[T]{
		repo:      repo,
		txManager: txManager,
		hooks:     NewHookRegistry[T](),
	}
}

// Hooks exposes the registry so concrete services can attach behavior.
func (s *CatalogService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

// Repo exposes the underlying repository for concrete services.
func (s *CatalogService[T]) Repo() CatalogRepository[T] {
	return s.repo
}

// Create validates the entity, runs lifecycle hooks and inserts it,
// all within a single transaction.
func (s *CatalogService[T]) Create(ctx context.Context, ent T) error {
	if err := ent.Validate(); err != nil {
		return normalizeValidationErr(err)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.hooks.RunBeforeCreate(ctx, ent); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, ent); err != nil {
			return err
		}
		return s.hooks.RunAfterCreate(ctx, ent)
	})
}

// GetByID retrieves an entity by ID.
func (s *CatalogService[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	ent, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		var zero T
		return zero, normalizeGetErr(err)
	}
	return ent, nil
}

// GetByCode retrieves an entity by its human-readable code.
func (s *CatalogService[T]) GetByCode(ctx context.Context, code string) (T, error) {
	ent, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		var zero T
		return zero, normalizeGetErr(err)
	}
	return ent, nil
}

// Update validates and persists changes to an existing entity.
func (s *CatalogService[T]) Update(ctx context.Context, ent T) error {
	if err := ent.Validate(); err != nil {
		return normalizeValidationErr(err)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.hooks.RunBeforeUpdate(ctx, ent); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, ent); err != nil {
			return err
		}
		return s.hooks.RunAfterUpdate(ctx, ent)
	})
}

// Delete physically removes an entity.
func (s *CatalogService[T]) Delete(ctx context.Context, entityID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		ent, err := s.repo.GetByID(ctx, entityID)
		if err != nil {
			return normalizeGetErr(err)
		}
		if err := s.hooks.RunBeforeDelete(ctx, ent); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, entityID); err != nil {
			return err
		}
		return s.hooks.RunAfterDelete(ctx, ent)
	})
}

// DeleteMany removes the given ids and reports how many were deleted.
// Missing ids are skipped, not errors.
func (s *CatalogService[T]) DeleteMany(ctx context.Context, ids []id.ID) (int64, error) {
	if len(ids) == 0 {
		return 0, apperror.NewValidation("ids list is empty")
	}
	var deleted int64
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var txErr error
		deleted, txErr = s.repo.DeleteMany(ctx, ids)
		return txErr
	})
	return deleted, err
}

// SetDeletionMark soft-deletes or restores an entity.
func (s *CatalogService[T]) SetDeletionMark(ctx context.Context, entityID id.ID, marked bool) error {
	if err := s.repo.SetDeletionMark(ctx, entityID, marked); err != nil {
		return normalizeGetErr(err)
	}
	return nil
}

// List retrieves entities with filtering and pagination.
func (s *CatalogService[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultListFilter().Limit
	}
	if filter.OrderBy == "" {
		filter.OrderBy = DefaultListFilter().OrderBy
	}
	return s.repo.List(ctx, filter)
}

// normalizeValidationErr keeps AppError as-is, wraps anything else as
// a validation error so handlers map it to 400.
func normalizeValidationErr(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

// normalizeGetErr keeps AppError as-is, wraps anything else as internal.
func normalizeGetErr(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.NewInternal(err)
}
