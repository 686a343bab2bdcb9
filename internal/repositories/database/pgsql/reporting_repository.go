package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approval_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for dashboard aggregations.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetSpendRows returns expense totals grouped by category, user, currency and
// status for expenses dated within [from, to].
func (r *PgxReportingRepository) GetSpendRows(ctx context.Context, from, to time.Time) ([]portsrepo.SpendRow, error) {
	query := `
		SELECT category, user_id, currency_code, status, COALESCE(SUM(amount), 0), COUNT(*)
		FROM expenses
		WHERE expense_date >= $1 AND expense_date <= $2
		GROUP BY category, user_id, currency_code, status
		ORDER BY category, user_id, currency_code, status;
	`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query spend rows: %w", err)
	}
	defer rows.Close()

	spendRows, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (portsrepo.SpendRow, error) {
		var (
			spendRow portsrepo.SpendRow
			category string
			status   string
		)
		err := row.Scan(
			&category,
			&spendRow.UserID,
			&spendRow.CurrencyCode,
			&status,
			&spendRow.Total,
			&spendRow.Count,
		)
		spendRow.Category = domain.ExpenseCategory(category)
		spendRow.Status = domain.ExpenseStatus(status)
		return spendRow, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan spend rows: %w", err)
	}

	return spendRows, nil
}
