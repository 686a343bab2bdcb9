package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SpendRow is one aggregated bucket of spend for the dashboard.
type SpendRow struct {
	Category     domain.ExpenseCategory
	UserID       string
	CurrencyCode string
	Status       domain.ExpenseStatus
	Total        decimal.Decimal
	Count        int
}

// ReportingRepository defines the read operations backing the dashboard.
type ReportingRepository interface {
	// GetSpendRows returns expense totals grouped by category, user,
	// currency and status for expenses dated within [from, to].
	GetSpendRows(ctx context.Context, from, to time.Time) ([]SpendRow, error)
}
