package stockitem

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/core/sequence"
	"tillpoint/internal/core/types"
	"tillpoint/internal/domain"
)

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memRepo is an in-memory Repository for service tests.
type memRepo struct {
	items map[id.ID]*StockItem
}

func newMemRepo() *memRepo {
	return &memRepo{items: make(map[id.ID]*StockItem)}
}

func (m *memRepo) Create(_ context.Context, item *StockItem) error {
	m.items[item.ID] = item
	return nil
}

func (m *memRepo) GetByID(_ context.Context, itemID id.ID) (*StockItem, error) {
	if item, ok := m.items[itemID]; ok {
		return item, nil
	}
	return nil, apperror.NewNotFound("stock item", itemID.String())
}

func (m *memRepo) GetByCode(_ context.Context, code string) (*StockItem, error) {
	for _, item := range m.items {
		if item.Code == code {
			return item, nil
		}
	}
	return nil, apperror.NewNotFound("stock item", code)
}

func (m *memRepo) Update(_ context.Context, item *StockItem) error {
	if _, ok := m.items[item.ID]; !ok {
		return apperror.NewNotFound("stock item", item.ID.String())
	}
	m.items[item.ID] = item
	return nil
}

func (m *memRepo) Delete(_ context.Context, itemID id.ID) error {
	if _, ok := m.items[itemID]; !ok {
		return apperror.NewNotFound("stock item", itemID.String())
	}
	delete(m.items, itemID)
	return nil
}

func (m *memRepo) DeleteMany(_ context.Context, ids []id.ID) (int64, error) {
	var deleted int64
	for _, itemID := range ids {
		if _, ok := m.items[itemID]; ok {
			delete(m.items, itemID)
			deleted++
		}
	}
	return deleted, nil
}

func (m *memRepo) SetDeletionMark(_ context.Context, itemID id.ID, marked bool) error {
	item, ok := m.items[itemID]
	if !ok {
		return apperror.NewNotFound("stock item", itemID.String())
	}
	item.DeletionMark = marked
	return nil
}

func (m *memRepo) List(_ context.Context, _ domain.ListFilter) (domain.ListResult[*StockItem], error) {
	result := domain.ListResult[*StockItem]{}
	for _, item := range m.items {
		result.Items = append(result.Items, item)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (m *memRepo) Exists(_ context.Context, itemID id.ID) (bool, error) {
	_, ok := m.items[itemID]
	return ok, nil
}

func (m *memRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	for _, item := range m.items {
		if item.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) Decrement(_ context.Context, itemID id.ID, qty int64) (bool, error) {
	item, ok := m.items[itemID]
	if !ok {
		return false, apperror.NewNotFound("stock item", itemID.String())
	}
	if item.Quantity < qty {
		return false, nil
	}
	item.Quantity -= qty
	return true, nil
}

func (m *memRepo) Increment(_ context.Context, itemID id.ID, qty int64) error {
	item, ok := m.items[itemID]
	if !ok {
		return apperror.NewNotFound("stock item", itemID.String())
	}
	item.Quantity += qty
	return nil
}

func (m *memRepo) Report(_ context.Context) (*Report, error) {
	report := &Report{TotalStockValue: types.Zero()}
	for _, item := range m.items {
		report.TotalItems++
		report.TotalQuantity += item.Quantity
		report.TotalStockValue = report.TotalStockValue.Add(item.TotalPrice)
		if item.Quantity <= LowStockThreshold {
			report.LowStockCount++
			report.LowStockItems = append(report.LowStockItems, *item)
		}
	}
	return report, nil
}

func newTestService(repo *memRepo) *Service {
	return NewService(repo, passthroughTx{}, sequence.NewMockGenerator())
}

func validItem() *StockItem {
	item := New("Soap")
	item.Supplier = "Acme Supplies"
	item.Quantity = 20
	item.UnitPrice = types.MustMoney("1.50")
	item.SalePrice = types.MustMoney("2.50")
	return item
}

func TestCreate_AssignsCodeAndTotalPrice(t *testing.T) {
	svc := newTestService(newMemRepo())

	item := validItem()
	require.NoError(t, svc.Create(context.Background(), item))

	assert.Equal(t, "P0001", item.Code)
	assert.True(t, item.TotalPrice.Equal(types.MustMoney("30.00")))

	second := validItem()
	require.NoError(t, svc.Create(context.Background(), second))
	assert.Equal(t, "P0002", second.Code)
}

func TestCreate_RejectsInvalidItem(t *testing.T) {
	svc := newTestService(newMemRepo())

	item := New("")
	err := svc.Create(context.Background(), item)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestRestock_AddsQuantityAndReplacesPrices(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	item := validItem()
	require.NoError(t, svc.Create(context.Background(), item))

	updated, err := svc.Restock(context.Background(), item.ID, RestockInput{
		Quantity:  10,
		UnitPrice: types.MustMoney("2.00"),
		SalePrice: types.MustMoney("3.00"),
	})
	require.NoError(t, err)

	assert.EqualValues(t, 30, updated.Quantity)
	assert.True(t, updated.UnitPrice.Equal(types.MustMoney("2.00")))
	assert.True(t, updated.SalePrice.Equal(types.MustMoney("3.00")))
	assert.True(t, updated.TotalPrice.Equal(types.MustMoney("60.00")))
}

func TestRestock_RejectsBadInput(t *testing.T) {
	svc := newTestService(newMemRepo())

	_, err := svc.Restock(context.Background(), id.New(), RestockInput{Quantity: 0})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Restock(context.Background(), id.New(), RestockInput{
		Quantity:  1,
		UnitPrice: types.MustMoney("-1"),
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestLedger_AdaptsRepository(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	item := validItem()
	require.NoError(t, svc.Create(context.Background(), item))

	ledger := NewLedger(repo)

	info, err := ledger.GetStockItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Soap", info.Name)
	assert.EqualValues(t, 20, info.Quantity)
	assert.True(t, info.SalePrice.Equal(types.MustMoney("2.50")))

	ok, err := ledger.Decrement(context.Background(), item.ID, 5)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ledger.Decrement(context.Background(), item.ID, 100)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, ledger.Increment(context.Background(), item.ID, 5))
	assert.EqualValues(t, 20, repo.items[item.ID].Quantity)
}

func TestReport_FlagsLowStock(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	healthy := validItem()
	require.NoError(t, svc.Create(context.Background(), healthy))

	low := validItem()
	low.Quantity = 2
	require.NoError(t, svc.Create(context.Background(), low))

	report, err := svc.Report(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, report.TotalItems)
	assert.EqualValues(t, 22, report.TotalQuantity)
	assert.EqualValues(t, 1, report.LowStockCount)
}
