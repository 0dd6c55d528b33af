package catalog_repo

import (
	"tillpoint/internal/domain/catalogs/expense"
	"tillpoint/internal/infrastructure/storage/postgres"
)

const expenseTable = "cat_expenses"

// ExpenseRepo implements expense.Repository.
type ExpenseRepo struct {
	*BaseCatalogRepo[*expense.Expense]
}

var _ expense.Repository = (*ExpenseRepo)(nil)

// NewExpenseRepo creates a new expense repository.
func NewExpenseRepo(tx *postgres.TxManager) *ExpenseRepo {
	return &ExpenseRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*expense.Expense](
			tx,
			expenseTable,
			postgres.ExtractDBColumns[expense.Expense](),
			[]string{"name", "code", "comment"},
			func() *expense.Expense { return &expense.Expense{} },
		),
	}
}
