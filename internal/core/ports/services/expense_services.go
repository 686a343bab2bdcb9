package services

import (
	"context"

	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approval_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_approval_app/internal/dto"
)

// ExpenseReaderSvc defines read operations for expenses
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves a single expense.
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves expenses matching the filter.
	ListExpenses(ctx context.Context, filter portsrepo.ListExpensesFilter) ([]domain.Expense, error)
}

// ExpenseWriterSvc defines submission and transition operations for expenses
type ExpenseWriterSvc interface {
	// SubmitExpense runs the fraud heuristic and the policy evaluation on a
	// manually entered expense, then persists it with the decided status.
	SubmitExpense(ctx context.Context, req dto.SubmitExpenseRequest, submitterUserID string) (*domain.Expense, error)

	// SubmitReceiptExpense is the receipt-scan submission path. The receipt
	// heuristic's reasons are unioned with the general heuristic's.
	SubmitReceiptExpense(ctx context.Context, req dto.SubmitReceiptExpenseRequest, submitterUserID string) (*domain.Expense, error)

	// UpdateExpenseStatus applies a manager-initiated status transition.
	// Non-manager actors are rejected with apperrors.ErrForbidden.
	UpdateExpenseStatus(ctx context.Context, expenseID string, req dto.UpdateExpenseStatusRequest, actorUserID string, actorRole domain.UserRole) (*domain.Expense, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
