package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tillpoint/internal/core/id"
	"tillpoint/internal/core/types"
	"tillpoint/internal/domain/catalogs/stockitem"
	"tillpoint/internal/infrastructure/storage/postgres"
)

const stockItemTable = "cat_stock_items"

// StockItemRepo implements stockitem.Repository.
type StockItemRepo struct {
	*BaseCatalogRepo[*stockitem.StockItem]
}

var _ stockitem.Repository = (*StockItemRepo)(nil)

// NewStockItemRepo creates a new stock item repository.
func NewStockItemRepo(tx *postgres.TxManager) *StockItemRepo {
	return &StockItemRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*stockitem.StockItem](
			tx,
			stockItemTable,
			postgres.ExtractDBColumns[stockitem.StockItem](),
			[]string{"name", "code", "supplier"},
			func() *stockitem.StockItem { return &stockitem.StockItem{} },
		),
	}
}

// Decrement reduces quantity only when at least qty units remain. The
// condition and the write are one statement, so concurrent checkouts
// cannot oversell.
func (r *StockItemRepo) Decrement(ctx context.Context, itemID id.ID, qty int64) (bool, error) {
	q := r.Builder().
		Update(stockItemTable).
		Set("quantity", squirrel.Expr("quantity - ?", qty)).
		Set("total_price", squirrel.Expr("unit_price * (quantity - ?)", qty)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": itemID}).
		Where(squirrel.GtOrEq{"quantity": qty})

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build decrement: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// Increment adds qty units back to the item.
func (r *StockItemRepo) Increment(ctx context.Context, itemID id.ID, qty int64) error {
	q := r.Builder().
		Update(stockItemTable).
		Set("quantity", squirrel.Expr("quantity + ?", qty)).
		Set("total_price", squirrel.Expr("unit_price * (quantity + ?)", qty)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": itemID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build increment: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	return nil
}

// Report computes ledger-wide aggregates plus the low stock list.
func (r *StockItemRepo) Report(ctx context.Context) (*stockitem.Report, error) {
	report := &stockitem.Report{
		TotalStockValue: types.Zero(),
		LowStockItems:   []stockitem.StockItem{},
	}

	aggQ := r.Builder().
		Select(
			"COUNT(*)",
			"COALESCE(SUM(quantity), 0)",
			"COALESCE(SUM(total_price), 0)",
		).
		From(stockItemTable).
		Where(squirrel.Eq{"deletion_mark": false})

	sql, args, err := aggQ.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build report query: %w", err)
	}

	querier := r.Querier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(
		&report.TotalItems,
		&report.TotalQuantity,
		&report.TotalStockValue,
	); err != nil {
		return nil, fmt.Errorf("stock report aggregates: %w", err)
	}

	lowQ := r.Builder().
		Select(postgres.ExtractDBColumns[stockitem.StockItem]()...).
		From(stockItemTable).
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.LtOrEq{"quantity": stockitem.LowStockThreshold}).
		OrderBy("quantity ASC")

	sql, args, err = lowQ.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build low stock query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &report.LowStockItems, sql, args...); err != nil {
		return nil, fmt.Errorf("low stock list: %w", err)
	}
	report.LowStockCount = int64(len(report.LowStockItems))

	return report, nil
}
