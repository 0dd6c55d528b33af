package reports

import (
	"context"
	"time"

	"tillpoint/internal/core/types"
)

// WindowTotals holds sales and expense aggregates for one window.
type WindowTotals struct {
	Sales        types.Money `json:"sales"`
	Paid         types.Money `json:"paid"`
	BillCount    int64       `json:"billCount"`
	Expenses     types.Money `json:"expenses"`
	ExpenseCount int64       `json:"expenseCount"`
}

// Counts holds entity counts for the dashboard header.
type Counts struct {
	StockItems int64 `json:"stockItems"`
	Bills      int64 `json:"bills"`
	Expenses   int64 `json:"expenses"`
	Users      int64 `json:"users"`
	Roles      int64 `json:"roles"`
}

// Summary is the full dashboard payload.
type Summary struct {
	Counts  Counts                  `json:"counts"`
	Windows map[string]WindowTotals `json:"windows"`
}

// Repository runs the aggregate queries.
type Repository interface {
	Counts(ctx context.Context) (Counts, error)

	// SalesTotals aggregates bills created in [from, to).
	SalesTotals(ctx context.Context, from, to time.Time) (sales, paid types.Money, count int64, err error)

	// ExpenseTotals aggregates expenses created in [from, to).
	ExpenseTotals(ctx context.Context, from, to time.Time) (total types.Money, count int64, err error)
}

// Service computes dashboard summaries.
type Service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

// NewService creates a reports service. The location fixes which
// midnight the windows snap to.
func NewService(repo Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo: repo,
		loc:  loc,
		now:  time.Now,
	}
}

// Summary computes entity counts plus sales/expense totals per window.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, err
	}

	ref := s.now().In(s.loc)
	windows := Windows(ref)

	out := &Summary{
		Counts:  counts,
		Windows: make(map[string]WindowTotals, len(windows)),
	}
	for name, w := range windows {
		sales, paid, billCount, err := s.repo.SalesTotals(ctx, w.From, w.To)
		if err != nil {
			return nil, err
		}
		expenses, expenseCount, err := s.repo.ExpenseTotals(ctx, w.From, w.To)
		if err != nil {
			return nil, err
		}
		out.Windows[name] = WindowTotals{
			Sales:        sales,
			Paid:         paid,
			BillCount:    billCount,
			Expenses:     expenses,
			ExpenseCount: expenseCount,
		}
	}
	return out, nil
}
