package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListExpensesFilter narrows an expense listing. Nil fields are not applied.
type ListExpensesFilter struct {
	UserID       *string
	Category     *domain.ExpenseCategory
	CurrencyCode *string
	DateFrom     *time.Time
	DateTo       *time.Time
	Limit        int
	Offset       int
}

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves a single expense by its ID.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves expenses matching the filter, newest first.
	ListExpenses(ctx context.Context, filter ListExpensesFilter) ([]domain.Expense, error)

	// SumExpenseAmounts sums the amounts of all persisted expenses for the
	// user, category and currency whose expense date falls inside
	// [windowStart, windowEnd]. All statuses count toward the total.
	SumExpenseAmounts(ctx context.Context, userID string, category domain.ExpenseCategory, currencyCode string, windowStart, windowEnd time.Time) (decimal.Decimal, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense with its already-decided status.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpenseStatus overwrites the status (and notes) of an expense in
	// a single atomic update keyed by expense id.
	UpdateExpenseStatus(ctx context.Context, expenseID string, status domain.ExpenseStatus, notes string, updaterUserID string, now time.Time) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
