// Package report_repo runs the aggregate queries behind the dashboard.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"tillpoint/internal/core/types"
	"tillpoint/internal/domain/reports"
	"tillpoint/internal/infrastructure/storage/postgres"
)

// DashboardRepo implements reports.Repository.
type DashboardRepo struct {
	tx *postgres.TxManager
}

var _ reports.Repository = (*DashboardRepo)(nil)

// NewDashboardRepo creates a new dashboard repository.
func NewDashboardRepo(tx *postgres.TxManager) *DashboardRepo {
	return &DashboardRepo{tx: tx}
}

// Counts returns live entity counts for the dashboard header.
func (r *DashboardRepo) Counts(ctx context.Context) (reports.Counts, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM cat_stock_items WHERE deletion_mark = false),
			(SELECT COUNT(*) FROM doc_bills WHERE deletion_mark = false),
			(SELECT COUNT(*) FROM cat_expenses WHERE deletion_mark = false),
			(SELECT COUNT(*) FROM cat_users WHERE deletion_mark = false),
			(SELECT COUNT(*) FROM cat_roles WHERE deletion_mark = false)`

	var counts reports.Counts
	err := r.tx.GetQuerier(ctx).QueryRow(ctx, query).Scan(
		&counts.StockItems,
		&counts.Bills,
		&counts.Expenses,
		&counts.Users,
		&counts.Roles,
	)
	if err != nil {
		return counts, fmt.Errorf("dashboard counts: %w", err)
	}
	return counts, nil
}

// SalesTotals aggregates bills created in [from, to).
func (r *DashboardRepo) SalesTotals(ctx context.Context, from, to time.Time) (types.Money, types.Money, int64, error) {
	const query = `
		SELECT COALESCE(SUM(total), 0), COALESCE(SUM(paid_amount), 0), COUNT(*)
		FROM doc_bills
		WHERE deletion_mark = false
		  AND created_at >= $1 AND created_at < $2`

	var sales, paid types.Money
	var count int64
	err := r.tx.GetQuerier(ctx).QueryRow(ctx, query, from, to).Scan(&sales, &paid, &count)
	if err != nil {
		return types.Zero(), types.Zero(), 0, fmt.Errorf("sales totals: %w", err)
	}
	return sales, paid, count, nil
}

// ExpenseTotals aggregates expenses created in [from, to).
func (r *DashboardRepo) ExpenseTotals(ctx context.Context, from, to time.Time) (types.Money, int64, error) {
	const query = `
		SELECT COALESCE(SUM(amount), 0), COUNT(*)
		FROM cat_expenses
		WHERE deletion_mark = false
		  AND created_at >= $1 AND created_at < $2`

	var total types.Money
	var count int64
	err := r.tx.GetQuerier(ctx).QueryRow(ctx, query, from, to).Scan(&total, &count)
	if err != nil {
		return types.Zero(), 0, fmt.Errorf("expense totals: %w", err)
	}
	return total, count, nil
}
