package billing

import (
	"context"
	"time"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/audit"
	"tillpoint/internal/core/id"
	"tillpoint/internal/core/sequence"
	"tillpoint/internal/core/tx"
	"tillpoint/internal/core/types"
	"tillpoint/internal/domain"
	"tillpoint/pkg/logger"
)

// LineInput is one requested position at checkout or edit.
type LineInput struct {
	ProductID id.ID
	Quantity  int64
}

// CreateInput is a checkout request. Prices are never taken from the
// caller; they come from the stock record.
type CreateInput struct {
	StaffName     string
	Shift         Shift
	PaymentMode   PaymentMode
	CustomerName  string
	CustomerPhone string
	Lines         []LineInput
	DiscountType  DiscountType
	DiscountValue types.Money
	LabourCost    types.Money
	PaidAmount    types.Money
}

// UpdateInput is a full bill edit.
type UpdateInput struct {
	StaffName     string
	Shift         Shift
	PaymentMode   PaymentMode
	CustomerName  string
	CustomerPhone string
	Lines         []LineInput
	DiscountType  DiscountType
	DiscountValue types.Money
	LabourCost    types.Money
	PaidAmount    types.Money
}

// Service implements checkout, edit reconciliation, partial payments
// and bill removal.
type Service struct {
	bills     Repository
	stock     StockLedger
	txManager tx.Manager
	seq       sequence.Generator
	auditor   audit.Recorder
}

// NewService creates a billing service.
func NewService(bills Repository, stock StockLedger, txManager tx.Manager, seq sequence.Generator, auditor audit.Recorder) *Service {
	return &Service{
		bills:     bills,
		stock:     stock,
		txManager: txManager,
		seq:       seq,
		auditor:   auditor,
	}
}

// Create performs checkout. Every line is verified against the stock
// ledger and decremented conditionally; the whole operation runs in
// one transaction, so a failing line leaves no partial decrements.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Bill, error) {
	bill := NewBill()
	bill.StaffName = in.StaffName
	bill.Shift = in.Shift
	bill.PaymentMode = in.PaymentMode
	bill.CustomerName = in.CustomerName
	bill.CustomerPhone = in.CustomerPhone
	bill.DiscountType = in.DiscountType
	if bill.DiscountType == "" {
		bill.DiscountType = DiscountAmount
	}
	bill.DiscountValue = in.DiscountValue
	bill.LabourCost = in.LabourCost
	bill.PaidAmount = in.PaidAmount
	for _, line := range in.Lines {
		bill.Lines = append(bill.Lines, Line{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	if err := bill.Validate(); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for i := range bill.Lines {
			line := &bill.Lines[i]

			item, err := s.stock.GetStockItem(ctx, line.ProductID)
			if err != nil {
				return err
			}
			line.ProductName = item.Name
			line.SalePrice = item.SalePrice

			ok, err := s.stock.Decrement(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.NewInsufficientStock(item.Name, line.Quantity, item.Quantity)
			}
		}

		bill.ComputeTotals()
		if bill.PaidAmount.IsPositive() {
			bill.Payments = []Payment{{Amount: bill.PaidAmount, PaidAt: time.Now()}}
		}

		code, err := s.seq.Next(ctx, sequence.Bills)
		if err != nil {
			return err
		}
		bill.Code = code

		return s.bills.Create(ctx, bill)
	})
	if err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, "bill", bill.ID, audit.ActionCreate, bill)
	logger.Info(ctx, "bill created", "code", bill.Code, "total", bill.Total, "paid", bill.Paid)
	return bill, nil
}

// GetByCode fetches one bill.
func (s *Service) GetByCode(ctx context.Context, code string) (*Bill, error) {
	return s.bills.GetByCode(ctx, code)
}

// List retrieves bills with filtering and pagination.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Bill], error) {
	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	return s.bills.List(ctx, filter)
}

// Update performs a full bill edit with stock reconciliation: for each
// product the stock delta between the old and new quantity is applied,
// and products dropped from the bill get their full quantity returned.
// Totals are recomputed server-side; payment history is preserved.
func (s *Service) Update(ctx context.Context, code string, in UpdateInput) (*Bill, error) {
	var bill *Bill
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var txErr error
		bill, txErr = s.bills.GetByCode(ctx, code)
		if txErr != nil {
			return txErr
		}

		oldQty := make(map[id.ID]int64, len(bill.Lines))
		for _, line := range bill.Lines {
			oldQty[line.ProductID] = line.Quantity
		}

		newLines := make([]Line, 0, len(in.Lines))
		for _, line := range in.Lines {
			item, err := s.stock.GetStockItem(ctx, line.ProductID)
			if err != nil {
				return err
			}

			delta := line.Quantity - oldQty[line.ProductID]
			switch {
			case delta > 0:
				ok, err := s.stock.Decrement(ctx, line.ProductID, delta)
				if err != nil {
					return err
				}
				if !ok {
					return apperror.NewInsufficientStock(item.Name, delta, item.Quantity)
				}
			case delta < 0:
				if err := s.stock.Increment(ctx, line.ProductID, -delta); err != nil {
					return err
				}
			}
			delete(oldQty, line.ProductID)

			newLines = append(newLines, Line{
				ProductID:   line.ProductID,
				ProductName: item.Name,
				Quantity:    line.Quantity,
				SalePrice:   item.SalePrice,
			})
		}

		// Products no longer on the bill go back on the shelf.
		for productID, qty := range oldQty {
			if err := s.stock.Increment(ctx, productID, qty); err != nil {
				return err
			}
		}

		bill.StaffName = in.StaffName
		bill.Shift = in.Shift
		bill.PaymentMode = in.PaymentMode
		bill.CustomerName = in.CustomerName
		bill.CustomerPhone = in.CustomerPhone
		bill.Lines = newLines
		bill.DiscountType = in.DiscountType
		if bill.DiscountType == "" {
			bill.DiscountType = DiscountAmount
		}
		bill.DiscountValue = in.DiscountValue
		bill.LabourCost = in.LabourCost
		bill.PaidAmount = in.PaidAmount

		if err := bill.Validate(); err != nil {
			return err
		}
		bill.ComputeTotals()
		bill.Touch()

		return s.bills.Update(ctx, bill)
	})
	if err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, "bill", bill.ID, audit.ActionUpdate, bill)
	logger.Info(ctx, "bill updated", "code", bill.Code, "total", bill.Total)
	return bill, nil
}

// PayPending applies a partial payment to an outstanding bill. The
// payment is appended to history; overpayment clamps remaining at
// zero without recording the excess.
func (s *Service) PayPending(ctx context.Context, code string, amount types.Money) (*Bill, error) {
	if !amount.IsPositive() {
		return nil, apperror.NewValidation("payment amount must be positive")
	}

	var bill *Bill
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var txErr error
		bill, txErr = s.bills.GetByCode(ctx, code)
		if txErr != nil {
			return txErr
		}

		bill.PaidAmount = bill.PaidAmount.Add(amount)
		bill.Payments = append(bill.Payments, Payment{Amount: amount, PaidAt: time.Now()})
		bill.ComputeTotals()
		bill.Touch()

		return s.bills.Update(ctx, bill)
	})
	if err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, "bill", bill.ID, audit.ActionUpdate, bill)
	logger.Info(ctx, "bill payment recorded", "code", bill.Code, "remaining", bill.RemainingAmount)
	return bill, nil
}

// DeleteMany hard-deletes bills. Stock is not restored: deleted bills
// represent completed sales being purged, not reversed.
func (s *Service) DeleteMany(ctx context.Context, ids []id.ID, pendingOnly bool) (int64, error) {
	if len(ids) == 0 {
		return 0, apperror.NewValidation("ids list is empty")
	}

	var deleted int64
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var txErr error
		deleted, txErr = s.bills.DeleteMany(ctx, ids, pendingOnly)
		return txErr
	})
	if err != nil {
		return 0, err
	}

	for _, billID := range ids {
		s.auditor.Record(ctx, "bill", billID, audit.ActionDelete, nil)
	}
	logger.Info(ctx, "bills deleted", "requested", len(ids), "deleted", deleted)
	return deleted, nil
}

// Pending lists outstanding bills with totals.
func (s *Service) Pending(ctx context.Context) (*PendingSummary, error) {
	return s.bills.Pending(ctx)
}

// RecentActivity returns the latest bills for the activity feed.
func (s *Service) RecentActivity(ctx context.Context, limit int) ([]ActivityEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.bills.RecentActivity(ctx, limit)
}

// Report groups sales per day over [from, to).
func (s *Service) Report(ctx context.Context, from, to time.Time) ([]ReportRow, error) {
	if !to.After(from) {
		return nil, apperror.NewValidation("report range is empty")
	}
	return s.bills.Report(ctx, from, to)
}
