package dto

import (
	"tillpoint/internal/core/types"
	"tillpoint/internal/domain/catalogs/expense"
)

// CreateExpenseRequest records a new outgoing.
type CreateExpenseRequest struct {
	Name    string      `json:"name" binding:"required"`
	Amount  types.Money `json:"amount"`
	Comment string      `json:"comment"`
}

// ToEntity converts the request to an expense.
func (r *CreateExpenseRequest) ToEntity() *expense.Expense {
	e := expense.New(r.Name)
	e.Amount = r.Amount
	e.Comment = r.Comment
	return e
}

// UpdateExpenseRequest edits an existing expense.
type UpdateExpenseRequest struct {
	Name    string      `json:"name" binding:"required"`
	Amount  types.Money `json:"amount"`
	Comment string      `json:"comment"`
	Version int         `json:"version" binding:"required,min=1"`
}

// Apply copies the request onto an existing expense.
func (r *UpdateExpenseRequest) Apply(e *expense.Expense) {
	e.Name = r.Name
	e.Amount = r.Amount
	e.Comment = r.Comment
	e.Version = r.Version
	e.Touch()
}

// ExpenseListRequest filters the expense listing.
type ExpenseListRequest struct {
	PaginationRequest
	Search string `form:"search"`
}
