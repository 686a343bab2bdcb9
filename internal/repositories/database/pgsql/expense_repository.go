package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/expense_approval_app/internal/apperrors"
	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approval_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_approval_app/internal/models"
	"github.com/SscSPs/expense_approval_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const expenseColumns = `expense_id, user_id, amount, currency_code, expense_date, category, description, receipt_ref, notes, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func scanExpense(row pgx.Row) (models.Expense, error) {
	var expense models.Expense
	err := row.Scan(
		&expense.ExpenseID,
		&expense.UserID,
		&expense.Amount,
		&expense.CurrencyCode,
		&expense.ExpenseDate,
		&expense.Category,
		&expense.Description,
		&expense.ReceiptRef,
		&expense.Notes,
		&expense.Status,
		&expense.CreatedAt,
		&expense.CreatedBy,
		&expense.LastUpdatedAt,
		&expense.LastUpdatedBy,
	)
	return expense, err
}

// SaveExpense inserts a new expense with its already-decided status.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	modelExpense := mapping.ToModelExpense(expense)

	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelExpense.ExpenseID,
		modelExpense.UserID,
		modelExpense.Amount,
		modelExpense.CurrencyCode,
		modelExpense.ExpenseDate,
		modelExpense.Category,
		modelExpense.Description,
		modelExpense.ReceiptRef,
		modelExpense.Notes,
		modelExpense.Status,
		modelExpense.CreatedAt,
		modelExpense.CreatedBy,
		modelExpense.LastUpdatedAt,
		modelExpense.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to save expense %s: %w", modelExpense.ExpenseID, err)
	}
	return nil
}

// FindExpenseByID retrieves a single expense by its ID.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE expense_id = $1;
	`
	modelExpense, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("expense %s not found", expenseID))
		}
		return nil, fmt.Errorf("failed to find expense by id %s: %w", expenseID, err)
	}

	domainExpense := mapping.ToDomainExpense(modelExpense)
	return &domainExpense, nil
}

// ListExpenses retrieves expenses matching the filter, newest first.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, filter portsrepo.ListExpensesFilter) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE 1=1
	`
	args := []any{}
	argPos := 1

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argPos)
		args = append(args, *filter.UserID)
		argPos++
	}
	if filter.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", argPos)
		args = append(args, string(*filter.Category))
		argPos++
	}
	if filter.CurrencyCode != nil {
		query += fmt.Sprintf(" AND currency_code = $%d", argPos)
		args = append(args, *filter.CurrencyCode)
		argPos++
	}
	if filter.DateFrom != nil {
		query += fmt.Sprintf(" AND expense_date >= $%d", argPos)
		args = append(args, *filter.DateFrom)
		argPos++
	}
	if filter.DateTo != nil {
		query += fmt.Sprintf(" AND expense_date <= $%d", argPos)
		args = append(args, *filter.DateTo)
		argPos++
	}

	query += " ORDER BY expense_date DESC, created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d;", argPos, argPos+1)
	args = append(args, limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	modelExpenses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Expense, error) {
		return scanExpense(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan expenses: %w", err)
	}

	domainExpenses := make([]domain.Expense, len(modelExpenses))
	for i, modelExpense := range modelExpenses {
		domainExpenses[i] = mapping.ToDomainExpense(modelExpense)
	}
	return domainExpenses, nil
}

// SumExpenseAmounts sums the amounts of all of the user's expenses for the
// category and currency whose expense date falls inside the closed window.
// Every status counts toward the total.
func (r *PgxExpenseRepository) SumExpenseAmounts(ctx context.Context, userID string, category domain.ExpenseCategory, currencyCode string, windowStart, windowEnd time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE user_id = $1
		  AND category = $2
		  AND currency_code = $3
		  AND expense_date >= $4
		  AND expense_date <= $5;
	`

	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, userID, string(category), currencyCode, windowStart, windowEnd).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expense amounts for user %s: %w", userID, err)
	}
	return total, nil
}

// UpdateExpenseStatus overwrites the status and notes of an expense in a
// single statement. Concurrent updates resolve last-write-wins.
func (r *PgxExpenseRepository) UpdateExpenseStatus(ctx context.Context, expenseID string, status domain.ExpenseStatus, notes string, updaterUserID string, now time.Time) error {
	query := `
		UPDATE expenses
		SET status = $2, notes = $3, last_updated_at = $4, last_updated_by = $5
		WHERE expense_id = $1;
	`

	tag, err := r.Pool.Exec(ctx, query, expenseID, string(status), notes, now, updaterUserID)
	if err != nil {
		return fmt.Errorf("failed to update status of expense %s: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("expense %s not found", expenseID))
	}
	return nil
}
