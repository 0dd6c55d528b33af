package stockitem

import (
	"context"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/core/sequence"
	"tillpoint/internal/core/tx"
	"tillpoint/internal/core/types"
	"tillpoint/internal/domain"
)

// Service provides business logic for the stock catalog.
type Service struct {
	*domain.CatalogService[*StockItem]
	repo      Repository
	txManager tx.Manager
}

// NewService creates a stock service with code generation wired in.
func NewService(repo Repository, txManager tx.Manager, seq sequence.Generator) *Service {
	svc := &Service{
		CatalogService: domain.NewCatalogService[*StockItem](repo, txManager),
		repo:           repo,
		txManager:      txManager,
	}

	svc.Hooks().OnBeforeCreate(func(ctx context.Context, item *StockItem) error {
		if item.Code != "" {
			return nil
		}
		code, err := seq.Next(ctx, sequence.Products)
		if err != nil {
			return err
		}
		item.Code = code
		return nil
	})

	svc.Hooks().OnBeforeCreate(func(ctx context.Context, item *StockItem) error {
		item.TotalPrice = item.UnitPrice.Mul(types.NewMoneyFromInt(item.Quantity))
		return nil
	})

	return svc
}

// RestockInput describes a replenishment of an existing item.
type RestockInput struct {
	Quantity  int64
	UnitPrice types.Money
	SalePrice types.Money
}

// Restock adds quantity to an item and replaces its prices. The
// total price is recomputed from the new quantity and unit price.
func (s *Service) Restock(ctx context.Context, itemID id.ID, in RestockInput) (*StockItem, error) {
	if in.Quantity <= 0 {
		return nil, apperror.NewValidation("restock quantity must be positive")
	}
	if in.UnitPrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, apperror.NewValidation("prices cannot be negative")
	}

	var item *StockItem
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var txErr error
		item, txErr = s.repo.GetByID(ctx, itemID)
		if txErr != nil {
			return txErr
		}

		item.Quantity += in.Quantity
		item.UnitPrice = in.UnitPrice
		item.SalePrice = in.SalePrice
		item.TotalPrice = item.UnitPrice.Mul(types.NewMoneyFromInt(item.Quantity))
		item.Touch()

		return s.repo.Update(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Report computes ledger-wide aggregates.
func (s *Service) Report(ctx context.Context) (*Report, error) {
	return s.repo.Report(ctx)
}
