package billing

import (
	"context"
	"time"

	"tillpoint/internal/core/id"
	"tillpoint/internal/core/types"
	"tillpoint/internal/domain"
)

// ListFilter narrows bill listings.
type ListFilter struct {
	// Search matches code, payment mode, staff or customer name
	Search string

	Shift       Shift
	StaffName   string
	PendingOnly bool

	From *time.Time
	To   *time.Time

	Limit  int
	Offset int
}

// PendingSummary aggregates outstanding bills.
type PendingSummary struct {
	Bills          []*Bill     `json:"bills"`
	Count          int64       `json:"count"`
	TotalRemaining types.Money `json:"totalRemaining"`
}

// ActivityEntry is one row of the recent sales rollup.
type ActivityEntry struct {
	Code      string      `db:"code" json:"code"`
	StaffName string      `db:"staff_name" json:"staffName"`
	Total     types.Money `db:"total" json:"total"`
	Paid      bool        `db:"paid" json:"paid"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`
}

// ReportRow is one group of the sales report.
type ReportRow struct {
	Day        time.Time   `db:"day" json:"day"`
	BillCount  int64       `db:"bill_count" json:"billCount"`
	TotalSales types.Money `db:"total_sales" json:"totalSales"`
	TotalPaid  types.Money `db:"total_paid" json:"totalPaid"`
}

// Repository persists bills with their lines and payment history.
type Repository interface {
	Create(ctx context.Context, bill *Bill) error
	GetByID(ctx context.Context, billID id.ID) (*Bill, error)
	GetByCode(ctx context.Context, code string) (*Bill, error)

	// Update rewrites the bill row, its lines and payments, with an
	// optimistic version check.
	Update(ctx context.Context, bill *Bill) error

	// DeleteMany hard-deletes the given ids, returning the count
	// actually removed. When pendingOnly is set, settled bills among
	// the ids are skipped.
	DeleteMany(ctx context.Context, ids []id.ID, pendingOnly bool) (int64, error)

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Bill], error)

	// Pending returns every bill with remaining > 0 plus totals.
	Pending(ctx context.Context) (*PendingSummary, error)

	// RecentActivity returns the latest limit bills, newest first.
	RecentActivity(ctx context.Context, limit int) ([]ActivityEntry, error)

	// Report groups sales per day over the half-open range [from, to).
	Report(ctx context.Context, from, to time.Time) ([]ReportRow, error)
}

// StockLedger is the slice of the stock catalog billing needs.
// Decrement must be atomic and conditional on availability.
type StockLedger interface {
	GetStockItem(ctx context.Context, itemID id.ID) (StockInfo, error)
	Decrement(ctx context.Context, itemID id.ID, qty int64) (bool, error)
	Increment(ctx context.Context, itemID id.ID, qty int64) error
}

// StockInfo is what checkout needs to know about a product.
type StockInfo struct {
	ID        id.ID
	Name      string
	Quantity  int64
	SalePrice types.Money
}
