// Package expense implements the operating expense catalog.
package expense

import (
	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/entity"
	"tillpoint/internal/core/types"
)

// Expense is a recorded business outgoing, tracked alongside sales
// for the dashboard windows.
type Expense struct {
	entity.Base

	Name    string      `db:"name" json:"name"`
	Amount  types.Money `db:"amount" json:"amount"`
	Comment string      `db:"comment" json:"comment,omitempty"`
}

// New creates an expense with initialized base fields.
func New(name string) *Expense {
	return &Expense{
		Base: entity.NewBase(),
		Name: name,
	}
}

// Validate checks business rules.
func (e *Expense) Validate() error {
	var missing []apperror.MissingField
	if e.Name == "" {
		missing = append(missing, apperror.MissingField{Name: "name", Message: "Expense name is required"})
	}
	if e.Amount.IsZero() {
		missing = append(missing, apperror.MissingField{Name: "amount", Message: "Expense amount is required"})
	}
	if len(missing) > 0 {
		return apperror.NewMissingFields(missing)
	}

	if e.Amount.IsNegative() {
		return apperror.NewValidation("amount cannot be negative")
	}
	return nil
}
