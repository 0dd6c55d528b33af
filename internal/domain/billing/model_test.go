package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/core/types"
)

func billWithLines(qtys ...int64) *Bill {
	bill := NewBill()
	bill.StaffName = "Alice"
	bill.Shift = ShiftMorning
	bill.PaymentMode = PayCash
	for _, qty := range qtys {
		bill.Lines = append(bill.Lines, Line{
			ProductID: id.New(),
			Quantity:  qty,
			SalePrice: types.MustMoney("10.00"),
		})
	}
	return bill
}

func TestComputeTotals_AmountDiscount(t *testing.T) {
	bill := billWithLines(2, 3)
	bill.DiscountValue = types.MustMoney("5.00")
	bill.LabourCost = types.MustMoney("3.00")
	bill.PaidAmount = types.MustMoney("20.00")

	bill.ComputeTotals()

	assert.True(t, bill.Subtotal.Equal(types.MustMoney("50.00")))
	assert.True(t, bill.DiscountAmount.Equal(types.MustMoney("5.00")))
	assert.True(t, bill.Total.Equal(types.MustMoney("48.00")))
	assert.True(t, bill.RemainingAmount.Equal(types.MustMoney("28.00")))
	assert.True(t, bill.ChangeGiven.IsZero())
	assert.False(t, bill.Paid)
}

func TestComputeTotals_PercentDiscount(t *testing.T) {
	bill := billWithLines(10)
	bill.DiscountType = DiscountPercent
	bill.DiscountValue = types.MustMoney("10")

	bill.ComputeTotals()

	assert.True(t, bill.Subtotal.Equal(types.MustMoney("100.00")))
	assert.True(t, bill.DiscountAmount.Equal(types.MustMoney("10.00")))
	assert.True(t, bill.Total.Equal(types.MustMoney("90.00")))
}

func TestComputeTotals_OverpaymentBecomesChange(t *testing.T) {
	bill := billWithLines(1)
	bill.PaidAmount = types.MustMoney("15.00")

	bill.ComputeTotals()

	assert.True(t, bill.RemainingAmount.IsZero())
	assert.True(t, bill.ChangeGiven.Equal(types.MustMoney("5.00")))
	assert.True(t, bill.Paid)
}

func TestComputeTotals_LineTotals(t *testing.T) {
	bill := billWithLines(4)

	bill.ComputeTotals()

	assert.True(t, bill.Lines[0].LineTotal.Equal(types.MustMoney("40.00")))
}

func TestValidate_CollectsAllMissingFields(t *testing.T) {
	bill := NewBill()

	err := bill.Validate()
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)

	fields, ok := appErr.Details["missingFields"].([]apperror.MissingField)
	require.True(t, ok)
	assert.Len(t, fields, 4)
}

func TestValidate_RejectsBadEnums(t *testing.T) {
	bill := billWithLines(1)
	bill.Shift = "afternoon"
	assert.Error(t, bill.Validate())

	bill = billWithLines(1)
	bill.PaymentMode = "barter"
	assert.Error(t, bill.Validate())

	bill = billWithLines(1)
	bill.DiscountType = "half"
	assert.Error(t, bill.Validate())
}

func TestValidate_RejectsNonPositiveQuantity(t *testing.T) {
	bill := billWithLines(0)
	assert.Error(t, bill.Validate())
}

func TestValidate_RejectsNegativeAmounts(t *testing.T) {
	bill := billWithLines(1)
	bill.DiscountValue = types.MustMoney("-1")
	assert.Error(t, bill.Validate())
}

func TestValidate_AcceptsCompleteBill(t *testing.T) {
	assert.NoError(t, billWithLines(1).Validate())
}
