package stockitem

import (
	"context"

	"tillpoint/internal/core/id"
	"tillpoint/internal/domain/billing"
)

// Ledger adapts the stock repository to the billing stock interface.
type Ledger struct {
	repo Repository
}

// NewLedger creates a ledger adapter.
func NewLedger(repo Repository) *Ledger {
	return &Ledger{repo: repo}
}

var _ billing.StockLedger = (*Ledger)(nil)

func (l *Ledger) GetStockItem(ctx context.Context, itemID id.ID) (billing.StockInfo, error) {
	item, err := l.repo.GetByID(ctx, itemID)
	if err != nil {
		return billing.StockInfo{}, err
	}
	return billing.StockInfo{
		ID:        item.ID,
		Name:      item.Name,
		Quantity:  item.Quantity,
		SalePrice: item.SalePrice,
	}, nil
}

func (l *Ledger) Decrement(ctx context.Context, itemID id.ID, qty int64) (bool, error) {
	return l.repo.Decrement(ctx, itemID, qty)
}

func (l *Ledger) Increment(ctx context.Context, itemID id.ID, qty int64) error {
	return l.repo.Increment(ctx, itemID, qty)
}
