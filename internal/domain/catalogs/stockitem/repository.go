package stockitem

import (
	"context"

	"tillpoint/internal/core/id"
	"tillpoint/internal/core/types"
	"tillpoint/internal/domain"
)

// Report aggregates the current state of the stock ledger.
type Report struct {
	TotalItems      int64       `json:"totalItems"`
	TotalQuantity   int64       `json:"totalQuantity"`
	TotalStockValue types.Money `json:"totalStockValue"`
	LowStockCount   int64       `json:"lowStockCount"`
	LowStockItems   []StockItem `json:"lowStockItems"`
}

// LowStockThreshold marks items as running low when quantity drops
// to or below this value.
const LowStockThreshold = 5

// Repository extends the generic catalog repository with stock
// ledger operations.
type Repository interface {
	domain.CatalogRepository[*StockItem]

	// Decrement atomically reduces quantity if and only if at least
	// qty units are available. Returns false when stock is short.
	Decrement(ctx context.Context, itemID id.ID, qty int64) (bool, error)

	// Increment atomically adds qty units back to the item.
	Increment(ctx context.Context, itemID id.ID, qty int64) error

	// Report computes ledger-wide aggregates.
	Report(ctx context.Context) (*Report, error)
}
