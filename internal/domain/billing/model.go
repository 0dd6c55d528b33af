// Package billing implements bill checkout, edit reconciliation and
// partial payments.
package billing

import (
	"time"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/entity"
	"tillpoint/internal/core/id"
	"tillpoint/internal/core/types"
)

// Shift values accepted on a bill.
type Shift string

const (
	ShiftMorning Shift = "morning"
	ShiftEvening Shift = "evening"
	ShiftNight   Shift = "night"
)

func (s Shift) Valid() bool {
	switch s {
	case ShiftMorning, ShiftEvening, ShiftNight:
		return true
	}
	return false
}

// PaymentMode values accepted on a bill.
type PaymentMode string

const (
	PayCash   PaymentMode = "cash"
	PayCard   PaymentMode = "card"
	PayCredit PaymentMode = "credit"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case PayCash, PayCard, PayCredit:
		return true
	}
	return false
}

// DiscountType selects how the discount value is applied.
type DiscountType string

const (
	DiscountAmount  DiscountType = "amount"
	DiscountPercent DiscountType = "percent"
)

// Line is one sold position on a bill. Product name and sale price
// are snapshots taken at checkout time.
type Line struct {
	ProductID   id.ID       `db:"product_id" json:"productId"`
	ProductName string      `db:"product_name" json:"productName"`
	Quantity    int64       `db:"quantity" json:"quantity"`
	SalePrice   types.Money `db:"sale_price" json:"salePrice"`
	LineTotal   types.Money `db:"line_total" json:"lineTotal"`
}

// Payment is one entry in a bill's payment history.
type Payment struct {
	Amount types.Money `db:"amount" json:"amount"`
	PaidAt time.Time   `db:"paid_at" json:"paidAt"`
}

// Bill is a finalized sale document.
type Bill struct {
	entity.Base

	StaffName     string      `db:"staff_name" json:"staffName"`
	Shift         Shift       `db:"shift" json:"shift"`
	PaymentMode   PaymentMode `db:"payment_mode" json:"paymentMode"`
	CustomerName  string      `db:"customer_name" json:"customerName,omitempty"`
	CustomerPhone string      `db:"customer_phone" json:"customerPhone,omitempty"`

	Lines []Line `db:"-" json:"items"`

	Subtotal       types.Money  `db:"subtotal" json:"subtotal"`
	DiscountType   DiscountType `db:"discount_type" json:"discountType"`
	DiscountValue  types.Money  `db:"discount_value" json:"discountValue"`
	DiscountAmount types.Money  `db:"discount_amount" json:"discountAmount"`
	LabourCost     types.Money  `db:"labour_cost" json:"labourCost"`
	Total          types.Money  `db:"total" json:"total"`

	PaidAmount      types.Money `db:"paid_amount" json:"paidAmount"`
	RemainingAmount types.Money `db:"remaining_amount" json:"remainingAmount"`
	ChangeGiven     types.Money `db:"change_given" json:"changeGiven"`
	Paid            bool        `db:"paid" json:"paid"`

	Payments []Payment `db:"-" json:"paymentHistory"`
}

// NewBill creates a bill with initialized base fields.
func NewBill() *Bill {
	return &Bill{
		Base:         entity.NewBase(),
		DiscountType: DiscountAmount,
	}
}

// Validate checks required fields, collecting every absent one.
func (b *Bill) Validate() error {
	var missing []apperror.MissingField
	if b.StaffName == "" {
		missing = append(missing, apperror.MissingField{Name: "staffName", Message: "Staff name is required"})
	}
	if b.Shift == "" {
		missing = append(missing, apperror.MissingField{Name: "shift", Message: "Shift is required"})
	}
	if b.PaymentMode == "" {
		missing = append(missing, apperror.MissingField{Name: "paymentMode", Message: "Payment mode is required"})
	}
	if len(b.Lines) == 0 {
		missing = append(missing, apperror.MissingField{Name: "items", Message: "At least one item is required"})
	}
	if len(missing) > 0 {
		return apperror.NewMissingFields(missing)
	}

	if !b.Shift.Valid() {
		return apperror.NewValidation("shift must be morning, evening or night")
	}
	if !b.PaymentMode.Valid() {
		return apperror.NewValidation("payment mode must be cash, card or credit")
	}
	for _, line := range b.Lines {
		if line.Quantity <= 0 {
			return apperror.NewValidation("item quantity must be positive")
		}
	}
	switch b.DiscountType {
	case DiscountAmount, DiscountPercent:
	default:
		return apperror.NewValidation("discount type must be amount or percent")
	}
	if b.DiscountValue.IsNegative() || b.LabourCost.IsNegative() || b.PaidAmount.IsNegative() {
		return apperror.NewValidation("amounts cannot be negative")
	}
	return nil
}

// ComputeTotals derives every money field from the lines, discount,
// labour cost and paid amount. Remaining is clamped at zero; the
// excess over the total is recorded as change given.
func (b *Bill) ComputeTotals() {
	subtotal := types.Zero()
	for i := range b.Lines {
		line := &b.Lines[i]
		line.LineTotal = line.SalePrice.Mul(types.NewMoneyFromInt(line.Quantity))
		subtotal = subtotal.Add(line.LineTotal)
	}
	b.Subtotal = subtotal

	switch b.DiscountType {
	case DiscountPercent:
		b.DiscountAmount = types.Percent(subtotal, b.DiscountValue)
	default:
		b.DiscountAmount = b.DiscountValue
	}

	b.Total = subtotal.Sub(b.DiscountAmount).Add(b.LabourCost)

	diff := b.Total.Sub(b.PaidAmount)
	b.RemainingAmount = types.ClampNonNegative(diff)
	b.ChangeGiven = types.ClampNonNegative(diff.Neg())
	b.Paid = !b.RemainingAmount.IsPositive()
}
