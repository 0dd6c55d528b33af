package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/audit"
	"tillpoint/internal/core/id"
	"tillpoint/internal/core/sequence"
	"tillpoint/internal/core/types"
	"tillpoint/internal/domain"
)

// passthroughTx runs the function without a real transaction.
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLedger struct {
	items map[id.ID]*StockInfo
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{items: make(map[id.ID]*StockInfo)}
}

func (f *fakeLedger) add(name string, qty int64, price string) id.ID {
	itemID := id.New()
	f.items[itemID] = &StockInfo{
		ID:        itemID,
		Name:      name,
		Quantity:  qty,
		SalePrice: types.MustMoney(price),
	}
	return itemID
}

func (f *fakeLedger) GetStockItem(_ context.Context, itemID id.ID) (StockInfo, error) {
	item, ok := f.items[itemID]
	if !ok {
		return StockInfo{}, apperror.NewNotFound("stock item", itemID.String())
	}
	return *item, nil
}

func (f *fakeLedger) Decrement(_ context.Context, itemID id.ID, qty int64) (bool, error) {
	item, ok := f.items[itemID]
	if !ok {
		return false, apperror.NewNotFound("stock item", itemID.String())
	}
	if item.Quantity < qty {
		return false, nil
	}
	item.Quantity -= qty
	return true, nil
}

func (f *fakeLedger) Increment(_ context.Context, itemID id.ID, qty int64) error {
	item, ok := f.items[itemID]
	if !ok {
		return apperror.NewNotFound("stock item", itemID.String())
	}
	item.Quantity += qty
	return nil
}

type fakeBillRepo struct {
	byCode  map[string]*Bill
	deleted []id.ID
}

func newFakeBillRepo() *fakeBillRepo {
	return &fakeBillRepo{byCode: make(map[string]*Bill)}
}

func (f *fakeBillRepo) Create(_ context.Context, bill *Bill) error {
	f.byCode[bill.Code] = bill
	return nil
}

func (f *fakeBillRepo) GetByID(_ context.Context, billID id.ID) (*Bill, error) {
	for _, b := range f.byCode {
		if b.ID == billID {
			return b, nil
		}
	}
	return nil, apperror.NewNotFound("bill", billID.String())
}

func (f *fakeBillRepo) GetByCode(_ context.Context, code string) (*Bill, error) {
	if b, ok := f.byCode[code]; ok {
		return b, nil
	}
	return nil, apperror.NewNotFound("bill", code)
}

func (f *fakeBillRepo) Update(_ context.Context, bill *Bill) error {
	f.byCode[bill.Code] = bill
	return nil
}

func (f *fakeBillRepo) DeleteMany(_ context.Context, ids []id.ID, pendingOnly bool) (int64, error) {
	var deleted int64
	for _, targetID := range ids {
		for code, b := range f.byCode {
			if b.ID != targetID {
				continue
			}
			if pendingOnly && b.Paid {
				continue
			}
			delete(f.byCode, code)
			f.deleted = append(f.deleted, targetID)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeBillRepo) List(_ context.Context, _ ListFilter) (domain.ListResult[*Bill], error) {
	result := domain.ListResult[*Bill]{}
	for _, b := range f.byCode {
		result.Items = append(result.Items, b)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (f *fakeBillRepo) Pending(_ context.Context) (*PendingSummary, error) {
	summary := &PendingSummary{TotalRemaining: types.Zero()}
	for _, b := range f.byCode {
		if b.Paid {
			continue
		}
		summary.Bills = append(summary.Bills, b)
		summary.Count++
		summary.TotalRemaining = summary.TotalRemaining.Add(b.RemainingAmount)
	}
	return summary, nil
}

func (f *fakeBillRepo) RecentActivity(_ context.Context, limit int) ([]ActivityEntry, error) {
	var out []ActivityEntry
	for _, b := range f.byCode {
		if len(out) >= limit {
			break
		}
		out = append(out, ActivityEntry{Code: b.Code, StaffName: b.StaffName, Total: b.Total, Paid: b.Paid, CreatedAt: b.CreatedAt})
	}
	return out, nil
}

func (f *fakeBillRepo) Report(_ context.Context, _, _ time.Time) ([]ReportRow, error) {
	return nil, nil
}

func newTestService(repo *fakeBillRepo, ledger *fakeLedger) *Service {
	return NewService(repo, ledger, passthroughTx{}, sequence.NewMockGenerator(), audit.Nop{})
}

func validInput(lines ...LineInput) CreateInput {
	return CreateInput{
		StaffName:   "Alice",
		Shift:       ShiftMorning,
		PaymentMode: PayCash,
		Lines:       lines,
	}
}

func TestCreate_DecrementsStockPerLine(t *testing.T) {
	ledger := newFakeLedger()
	soapID := ledger.add("Soap", 10, "2.50")
	brushID := ledger.add("Brush", 4, "5.00")

	svc := newTestService(newFakeBillRepo(), ledger)

	in := validInput(
		LineInput{ProductID: soapID, Quantity: 3},
		LineInput{ProductID: brushID, Quantity: 2},
	)
	in.PaidAmount = types.MustMoney("17.50")

	bill, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	assert.EqualValues(t, 7, ledger.items[soapID].Quantity)
	assert.EqualValues(t, 2, ledger.items[brushID].Quantity)

	require.Len(t, bill.Lines, 2)
	assert.Equal(t, "Soap", bill.Lines[0].ProductName)
	assert.True(t, bill.Lines[0].LineTotal.Equal(types.MustMoney("7.50")))
	assert.True(t, bill.Subtotal.Equal(types.MustMoney("17.50")))
	assert.True(t, bill.Paid)
	require.Len(t, bill.Payments, 1)
	assert.True(t, bill.Payments[0].Amount.Equal(types.MustMoney("17.50")))
}

func TestCreate_InsufficientStock(t *testing.T) {
	ledger := newFakeLedger()
	itemID := ledger.add("Soap", 2, "2.50")

	repo := newFakeBillRepo()
	svc := newTestService(repo, ledger)

	_, err := svc.Create(context.Background(), validInput(LineInput{ProductID: itemID, Quantity: 5}))
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
	assert.Contains(t, err.Error(), "Soap")
	assert.Empty(t, repo.byCode)
}

func TestCreate_SequentialCodes(t *testing.T) {
	ledger := newFakeLedger()
	itemID := ledger.add("Soap", 100, "1.00")
	svc := newTestService(newFakeBillRepo(), ledger)

	first, err := svc.Create(context.Background(), validInput(LineInput{ProductID: itemID, Quantity: 1}))
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), validInput(LineInput{ProductID: itemID, Quantity: 1}))
	require.NoError(t, err)

	assert.Equal(t, "B000001", first.Code)
	assert.Equal(t, "B000002", second.Code)
}

func TestCreate_PartialPaymentRemaining(t *testing.T) {
	ledger := newFakeLedger()
	itemID := ledger.add("Soap", 10, "10.00")
	svc := newTestService(newFakeBillRepo(), ledger)

	in := validInput(LineInput{ProductID: itemID, Quantity: 2})
	in.PaidAmount = types.MustMoney("5.00")

	bill, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, bill.RemainingAmount.Equal(types.MustMoney("15.00")))
	assert.True(t, bill.ChangeGiven.IsZero())
	assert.False(t, bill.Paid)
}

func TestUpdate_ReducedQuantityReturnsStock(t *testing.T) {
	ledger := newFakeLedger()
	itemID := ledger.add("Soap", 10, "2.00")

	repo := newFakeBillRepo()
	svc := newTestService(repo, ledger)

	bill, err := svc.Create(context.Background(), validInput(LineInput{ProductID: itemID, Quantity: 3}))
	require.NoError(t, err)
	require.EqualValues(t, 7, ledger.items[itemID].Quantity)

	_, err = svc.Update(context.Background(), bill.Code, UpdateInput{
		StaffName:   "Alice",
		Shift:       ShiftMorning,
		PaymentMode: PayCash,
		Lines:       []LineInput{{ProductID: itemID, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.EqualValues(t, 9, ledger.items[itemID].Quantity)
}

func TestUpdate_IncreasedQuantityTakesDelta(t *testing.T) {
	ledger := newFakeLedger()
	itemID := ledger.add("Soap", 10, "2.00")

	repo := newFakeBillRepo()
	svc := newTestService(repo, ledger)

	bill, err := svc.Create(context.Background(), validInput(LineInput{ProductID: itemID, Quantity: 3}))
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), bill.Code, UpdateInput{
		StaffName:   "Alice",
		Shift:       ShiftMorning,
		PaymentMode: PayCash,
		Lines:       []LineInput{{ProductID: itemID, Quantity: 5}},
	})
	require.NoError(t, err)

	assert.EqualValues(t, 5, ledger.items[itemID].Quantity)
}

func TestUpdate_DroppedProductFullyReturned(t *testing.T) {
	ledger := newFakeLedger()
	soapID := ledger.add("Soap", 10, "2.00")
	brushID := ledger.add("Brush", 10, "5.00")

	repo := newFakeBillRepo()
	svc := newTestService(repo, ledger)

	bill, err := svc.Create(context.Background(), validInput(
		LineInput{ProductID: soapID, Quantity: 4},
		LineInput{ProductID: brushID, Quantity: 2},
	))
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), bill.Code, UpdateInput{
		StaffName:   "Alice",
		Shift:       ShiftMorning,
		PaymentMode: PayCash,
		Lines:       []LineInput{{ProductID: brushID, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.EqualValues(t, 10, ledger.items[soapID].Quantity)
	assert.EqualValues(t, 8, ledger.items[brushID].Quantity)
	require.Len(t, updated.Lines, 1)
	assert.True(t, updated.Subtotal.Equal(types.MustMoney("10.00")))
}

func TestUpdate_PreservesPaymentHistory(t *testing.T) {
	ledger := newFakeLedger()
	itemID := ledger.add("Soap", 10, "2.00")
	svc := newTestService(newFakeBillRepo(), ledger)

	in := validInput(LineInput{ProductID: itemID, Quantity: 2})
	in.PaidAmount = types.MustMoney("1.00")
	bill, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), bill.Code, UpdateInput{
		StaffName:   "Bob",
		Shift:       ShiftEvening,
		PaymentMode: PayCard,
		Lines:       []LineInput{{ProductID: itemID, Quantity: 2}},
		PaidAmount:  types.MustMoney("1.00"),
	})
	require.NoError(t, err)

	require.Len(t, updated.Payments, 1)
	assert.Equal(t, "Bob", updated.StaffName)
}

func TestPayPending_PartialThenSettled(t *testing.T) {
	ledger := newFakeLedger()
	itemID := ledger.add("Soap", 10, "10.00")
	svc := newTestService(newFakeBillRepo(), ledger)

	bill, err := svc.Create(context.Background(), validInput(LineInput{ProductID: itemID, Quantity: 2}))
	require.NoError(t, err)
	require.True(t, bill.RemainingAmount.Equal(types.MustMoney("20.00")))

	bill, err = svc.PayPending(context.Background(), bill.Code, types.MustMoney("12.00"))
	require.NoError(t, err)
	assert.True(t, bill.RemainingAmount.Equal(types.MustMoney("8.00")))
	assert.False(t, bill.Paid)

	bill, err = svc.PayPending(context.Background(), bill.Code, types.MustMoney("8.00"))
	require.NoError(t, err)
	assert.True(t, bill.RemainingAmount.IsZero())
	assert.True(t, bill.Paid)
	assert.Len(t, bill.Payments, 2)
}

func TestPayPending_OverpaymentClampsRemaining(t *testing.T) {
	ledger := newFakeLedger()
	itemID := ledger.add("Soap", 10, "10.00")
	svc := newTestService(newFakeBillRepo(), ledger)

	bill, err := svc.Create(context.Background(), validInput(LineInput{ProductID: itemID, Quantity: 1}))
	require.NoError(t, err)

	bill, err = svc.PayPending(context.Background(), bill.Code, types.MustMoney("25.00"))
	require.NoError(t, err)

	assert.True(t, bill.RemainingAmount.IsZero())
	assert.True(t, bill.ChangeGiven.Equal(types.MustMoney("15.00")))
	assert.True(t, bill.Paid)
}

func TestPayPending_RejectsNonPositiveAmount(t *testing.T) {
	svc := newTestService(newFakeBillRepo(), newFakeLedger())

	_, err := svc.PayPending(context.Background(), "B000001", types.Zero())
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestDeleteMany_DoesNotRestoreStock(t *testing.T) {
	ledger := newFakeLedger()
	itemID := ledger.add("Soap", 10, "2.00")

	repo := newFakeBillRepo()
	svc := newTestService(repo, ledger)

	bill, err := svc.Create(context.Background(), validInput(LineInput{ProductID: itemID, Quantity: 4}))
	require.NoError(t, err)

	deleted, err := svc.DeleteMany(context.Background(), []id.ID{bill.ID}, false)
	require.NoError(t, err)

	assert.EqualValues(t, 1, deleted)
	assert.EqualValues(t, 6, ledger.items[itemID].Quantity)
}

func TestDeleteMany_PendingOnlySkipsSettled(t *testing.T) {
	ledger := newFakeLedger()
	itemID := ledger.add("Soap", 100, "1.00")

	repo := newFakeBillRepo()
	svc := newTestService(repo, ledger)

	settled := validInput(LineInput{ProductID: itemID, Quantity: 1})
	settled.PaidAmount = types.MustMoney("1.00")
	paidBill, err := svc.Create(context.Background(), settled)
	require.NoError(t, err)

	pendingBill, err := svc.Create(context.Background(), validInput(LineInput{ProductID: itemID, Quantity: 1}))
	require.NoError(t, err)

	deleted, err := svc.DeleteMany(context.Background(), []id.ID{paidBill.ID, pendingBill.ID}, true)
	require.NoError(t, err)

	assert.EqualValues(t, 1, deleted)
	_, err = svc.GetByCode(context.Background(), paidBill.Code)
	assert.NoError(t, err)
}

func TestDeleteMany_EmptyIDs(t *testing.T) {
	svc := newTestService(newFakeBillRepo(), newFakeLedger())

	_, err := svc.DeleteMany(context.Background(), nil, false)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestReport_EmptyRange(t *testing.T) {
	svc := newTestService(newFakeBillRepo(), newFakeLedger())

	now := time.Now()
	_, err := svc.Report(context.Background(), now, now)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}
