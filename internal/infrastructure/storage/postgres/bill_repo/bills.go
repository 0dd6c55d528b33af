// Package bill_repo provides the PostgreSQL bill repository. A bill
// spans three tables: the document row, its lines and its payment
// history.
package bill_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/core/types"
	"tillpoint/internal/domain"
	"tillpoint/internal/domain/billing"
	"tillpoint/internal/infrastructure/storage/postgres"
)

const (
	billTable    = "doc_bills"
	lineTable    = "doc_bill_lines"
	paymentTable = "doc_bill_payments"
)

// BillRepo implements billing.Repository.
type BillRepo struct {
	tx         *postgres.TxManager
	selectCols []string
}

var _ billing.Repository = (*BillRepo)(nil)

// NewBillRepo creates a new bill repository.
func NewBillRepo(tx *postgres.TxManager) *BillRepo {
	return &BillRepo{
		tx:         tx,
		selectCols: postgres.ExtractDBColumns[billing.Bill](),
	}
}

func (r *BillRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts the bill row, its lines and payment history.
func (r *BillRepo) Create(ctx context.Context, bill *billing.Bill) error {
	data := postgres.StructToMap(bill)
	row := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			row[col] = val
		}
	}

	sql, args, err := r.builder().Insert(billTable).SetMap(row).ToSql()
	if err != nil {
		return fmt.Errorf("build bill insert: %w", err)
	}

	querier := r.tx.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert bill: %w", err)
	}

	if err := r.insertLines(ctx, bill.ID, bill.Lines); err != nil {
		return err
	}
	return r.insertPayments(ctx, bill.ID, bill.Payments)
}

func (r *BillRepo) insertLines(ctx context.Context, billID id.ID, lines []billing.Line) error {
	if len(lines) == 0 {
		return nil
	}

	q := r.builder().
		Insert(lineTable).
		Columns("bill_id", "position", "product_id", "product_name", "quantity", "sale_price", "line_total")
	for i, line := range lines {
		q = q.Values(billID, i+1, line.ProductID, line.ProductName, line.Quantity, line.SalePrice, line.LineTotal)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build lines insert: %w", err)
	}
	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert bill lines: %w", err)
	}
	return nil
}

func (r *BillRepo) insertPayments(ctx context.Context, billID id.ID, payments []billing.Payment) error {
	if len(payments) == 0 {
		return nil
	}

	q := r.builder().
		Insert(paymentTable).
		Columns("bill_id", "position", "amount", "paid_at")
	for i, p := range payments {
		q = q.Values(billID, i+1, p.Amount, p.PaidAt)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build payments insert: %w", err)
	}
	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert bill payments: %w", err)
	}
	return nil
}

// GetByID retrieves a bill with lines and payments.
func (r *BillRepo) GetByID(ctx context.Context, billID id.ID) (*billing.Bill, error) {
	return r.getOne(ctx, squirrel.Eq{"id": billID}, billID.String())
}

// GetByCode retrieves a bill with lines and payments.
func (r *BillRepo) GetByCode(ctx context.Context, code string) (*billing.Bill, error) {
	return r.getOne(ctx, squirrel.Eq{"code": code}, code)
}

func (r *BillRepo) getOne(ctx context.Context, cond squirrel.Eq, key string) (*billing.Bill, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(billTable).
		Where(cond).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build bill query: %w", err)
	}

	var bill billing.Bill
	querier := r.tx.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &bill, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("bill", key)
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}

	if err := r.loadChildren(ctx, []*billing.Bill{&bill}); err != nil {
		return nil, err
	}
	return &bill, nil
}

// loadChildren fills lines and payments for the given bills.
func (r *BillRepo) loadChildren(ctx context.Context, bills []*billing.Bill) error {
	if len(bills) == 0 {
		return nil
	}

	byID := make(map[id.ID]*billing.Bill, len(bills))
	ids := make([]id.ID, 0, len(bills))
	for _, b := range bills {
		byID[b.ID] = b
		ids = append(ids, b.ID)
	}

	querier := r.tx.GetQuerier(ctx)

	type lineRow struct {
		BillID id.ID `db:"bill_id"`
		billing.Line
	}
	lineQ := r.builder().
		Select("bill_id", "product_id", "product_name", "quantity", "sale_price", "line_total").
		From(lineTable).
		Where(squirrel.Eq{"bill_id": ids}).
		OrderBy("bill_id", "position")
	sql, args, err := lineQ.ToSql()
	if err != nil {
		return fmt.Errorf("build lines query: %w", err)
	}
	var lineRows []lineRow
	if err := pgxscan.Select(ctx, querier, &lineRows, sql, args...); err != nil {
		return fmt.Errorf("load bill lines: %w", err)
	}
	for _, lr := range lineRows {
		if b, ok := byID[lr.BillID]; ok {
			b.Lines = append(b.Lines, lr.Line)
		}
	}

	type paymentRow struct {
		BillID id.ID `db:"bill_id"`
		billing.Payment
	}
	payQ := r.builder().
		Select("bill_id", "amount", "paid_at").
		From(paymentTable).
		Where(squirrel.Eq{"bill_id": ids}).
		OrderBy("bill_id", "position")
	sql, args, err = payQ.ToSql()
	if err != nil {
		return fmt.Errorf("build payments query: %w", err)
	}
	var payRows []paymentRow
	if err := pgxscan.Select(ctx, querier, &payRows, sql, args...); err != nil {
		return fmt.Errorf("load bill payments: %w", err)
	}
	for _, pr := range payRows {
		if b, ok := byID[pr.BillID]; ok {
			b.Payments = append(b.Payments, pr.Payment)
		}
	}

	return nil
}

// Update rewrites the bill row with optimistic locking, then replaces
// its lines and payment history.
func (r *BillRepo) Update(ctx context.Context, bill *billing.Bill) error {
	data := postgres.StructToMap(bill)
	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("bill has no version field")
	}

	row := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "version" {
			continue
		}
		if val, ok := data[col]; ok {
			row[col] = val
		}
	}

	q := r.builder().
		Update(billTable).
		SetMap(row).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": bill.ID}).
		Where(squirrel.Eq{"version": version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build bill update: %w", err)
	}

	querier := r.tx.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update bill: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("bill", bill.ID.String())
	}
	bill.Version = version + 1

	for _, table := range []string{lineTable, paymentTable} {
		delQ := r.builder().Delete(table).Where(squirrel.Eq{"bill_id": bill.ID})
		sql, args, err := delQ.ToSql()
		if err != nil {
			return fmt.Errorf("build children delete: %w", err)
		}
		if _, err := querier.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("delete bill children: %w", err)
		}
	}

	if err := r.insertLines(ctx, bill.ID, bill.Lines); err != nil {
		return err
	}
	return r.insertPayments(ctx, bill.ID, bill.Payments)
}

// DeleteMany hard-deletes bills; children go via ON DELETE CASCADE.
func (r *BillRepo) DeleteMany(ctx context.Context, ids []id.ID, pendingOnly bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	q := r.builder().
		Delete(billTable).
		Where(squirrel.Eq{"id": ids})
	if pendingOnly {
		q = q.Where(squirrel.Eq{"paid": false})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build bills delete: %w", err)
	}

	result, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete bills: %w", err)
	}
	return result.RowsAffected(), nil
}

// List retrieves bills with filtering and pagination, newest first.
func (r *BillRepo) List(ctx context.Context, filter billing.ListFilter) (domain.ListResult[*billing.Bill], error) {
	result := domain.ListResult[*billing.Bill]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.builder().
		Select(r.selectCols...).
		From(billTable).
		Where(squirrel.Eq{"deletion_mark": false})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"code": pattern},
			squirrel.ILike{"payment_mode": pattern},
			squirrel.ILike{"staff_name": pattern},
			squirrel.ILike{"customer_name": pattern},
		})
	}
	if filter.Shift != "" {
		q = q.Where(squirrel.Eq{"shift": filter.Shift})
	}
	if filter.StaffName != "" {
		q = q.Where(squirrel.Eq{"staff_name": filter.StaffName})
	}
	if filter.PendingOnly {
		q = q.Where(squirrel.Eq{"paid": false})
	}
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.Lt{"created_at": *filter.To})
	}

	countQ := r.builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}
	querier := r.tx.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count bills: %w", err)
	}

	q = q.OrderBy("created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build bills query: %w", err)
	}
	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list bills: %w", err)
	}

	if err := r.loadChildren(ctx, result.Items); err != nil {
		return result, err
	}
	return result, nil
}

// Pending returns every outstanding bill plus totals.
func (r *BillRepo) Pending(ctx context.Context) (*billing.PendingSummary, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(billTable).
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.Eq{"paid": false}).
		OrderBy("created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build pending query: %w", err)
	}

	summary := &billing.PendingSummary{
		Bills:          []*billing.Bill{},
		TotalRemaining: types.Zero(),
	}
	querier := r.tx.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &summary.Bills, sql, args...); err != nil {
		return nil, fmt.Errorf("list pending bills: %w", err)
	}

	if err := r.loadChildren(ctx, summary.Bills); err != nil {
		return nil, err
	}

	summary.Count = int64(len(summary.Bills))
	for _, b := range summary.Bills {
		summary.TotalRemaining = summary.TotalRemaining.Add(b.RemainingAmount)
	}
	return summary, nil
}

// RecentActivity returns the latest limit bills, newest first.
func (r *BillRepo) RecentActivity(ctx context.Context, limit int) ([]billing.ActivityEntry, error) {
	q := r.builder().
		Select("code", "staff_name", "total", "paid", "created_at").
		From(billTable).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build activity query: %w", err)
	}

	var entries []billing.ActivityEntry
	if err := pgxscan.Select(ctx, r.tx.GetQuerier(ctx), &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	return entries, nil
}

// Report groups sales per day over [from, to).
func (r *BillRepo) Report(ctx context.Context, from, to time.Time) ([]billing.ReportRow, error) {
	const query = `
		SELECT date_trunc('day', created_at) AS day,
		       COUNT(*) AS bill_count,
		       COALESCE(SUM(total), 0) AS total_sales,
		       COALESCE(SUM(paid_amount), 0) AS total_paid
		FROM doc_bills
		WHERE deletion_mark = false
		  AND created_at >= $1 AND created_at < $2
		GROUP BY 1
		ORDER BY 1`

	var rows []billing.ReportRow
	if err := pgxscan.Select(ctx, r.tx.GetQuerier(ctx), &rows, query, from, to); err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}
	return rows, nil
}
