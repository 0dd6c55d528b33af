package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillpoint/internal/core/types"
)

// fakeRepo aggregates over an in-memory list of dated amounts.
type fakeRepo struct {
	counts   Counts
	sales    []datedAmount
	expenses []datedAmount
}

type datedAmount struct {
	at     time.Time
	amount types.Money
	paid   types.Money
}

func (f *fakeRepo) Counts(context.Context) (Counts, error) {
	return f.counts, nil
}

func (f *fakeRepo) SalesTotals(_ context.Context, from, to time.Time) (types.Money, types.Money, int64, error) {
	w := Window{From: from, To: to}
	sales, paid := types.Zero(), types.Zero()
	var count int64
	for _, s := range f.sales {
		if w.Contains(s.at) {
			sales = sales.Add(s.amount)
			paid = paid.Add(s.paid)
			count++
		}
	}
	return sales, paid, count, nil
}

func (f *fakeRepo) ExpenseTotals(_ context.Context, from, to time.Time) (types.Money, int64, error) {
	w := Window{From: from, To: to}
	total := types.Zero()
	var count int64
	for _, e := range f.expenses {
		if w.Contains(e.at) {
			total = total.Add(e.amount)
			count++
		}
	}
	return total, count, nil
}

func TestSummary_BucketsPerWindow(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 18, 12, 0, 0, 0, loc) // Wednesday

	repo := &fakeRepo{
		counts: Counts{StockItems: 3, Bills: 2, Expenses: 1, Users: 1, Roles: 1},
		sales: []datedAmount{
			{at: now.Add(-time.Hour), amount: types.MustMoney("100"), paid: types.MustMoney("60")},
			{at: now.AddDate(0, 0, -1), amount: types.MustMoney("50"), paid: types.MustMoney("50")},
			{at: now.AddDate(0, -1, 0), amount: types.MustMoney("30"), paid: types.MustMoney("30")},
		},
		expenses: []datedAmount{
			{at: now.Add(-2 * time.Hour), amount: types.MustMoney("20")},
		},
	}

	svc := NewService(repo, loc)
	svc.now = func() time.Time { return now }

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, repo.counts, summary.Counts)

	today := summary.Windows["today"]
	assert.True(t, today.Sales.Equal(types.MustMoney("100")))
	assert.True(t, today.Paid.Equal(types.MustMoney("60")))
	assert.EqualValues(t, 1, today.BillCount)
	assert.True(t, today.Expenses.Equal(types.MustMoney("20")))

	yesterday := summary.Windows["yesterday"]
	assert.True(t, yesterday.Sales.Equal(types.MustMoney("50")))
	assert.EqualValues(t, 1, yesterday.BillCount)

	// Tuesday sale falls inside the Monday-started week too.
	week := summary.Windows["thisWeek"]
	assert.True(t, week.Sales.Equal(types.MustMoney("150")))

	lastMonth := summary.Windows["lastMonth"]
	assert.True(t, lastMonth.Sales.Equal(types.MustMoney("30")))

	allTime := summary.Windows["allTime"]
	assert.EqualValues(t, 3, allTime.BillCount)
	assert.True(t, allTime.Sales.Equal(types.MustMoney("180")))
}
