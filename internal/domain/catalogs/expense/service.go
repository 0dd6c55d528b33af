package expense

import (
	"context"

	"tillpoint/internal/core/sequence"
	"tillpoint/internal/core/tx"
	"tillpoint/internal/domain"
)

// Repository persists expenses.
type Repository interface {
	domain.CatalogRepository[*Expense]
}

// Service provides business logic for expenses.
type Service struct {
	*domain.CatalogService[*Expense]
}

// NewService creates an expense service with code generation wired in.
func NewService(repo Repository, txManager tx.Manager, seq sequence.Generator) *Service {
	svc := &Service{
		CatalogService: domain.NewCatalogService[*Expense](repo, txManager),
	}

	svc.Hooks().OnBeforeCreate(func(ctx context.Context, e *Expense) error {
		if e.Code != "" {
			return nil
		}
		code, err := seq.Next(ctx, sequence.Expenses)
		if err != nil {
			return err
		}
		e.Code = code
		return nil
	})

	return svc
}
