package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/expense_approval_app/internal/apperrors"
	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approval_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_approval_app/internal/models"
	"github.com/SscSPs/expense_approval_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const policyColumns = `policy_id, category, max_per_transaction, daily_limit, weekly_limit, monthly_limit, description, currency_code, created_at, created_by, last_updated_at, last_updated_by`

type PgxPolicyRepository struct {
	BaseRepository
}

// newPgxPolicyRepository creates a new repository for expense policy data.
func newPgxPolicyRepository(pool *pgxpool.Pool) portsrepo.PolicyRepositoryFacade {
	return &PgxPolicyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PolicyRepositoryFacade = (*PgxPolicyRepository)(nil)

func scanPolicy(row pgx.Row) (models.ExpensePolicy, error) {
	var policy models.ExpensePolicy
	err := row.Scan(
		&policy.PolicyID,
		&policy.Category,
		&policy.MaxPerTransaction,
		&policy.DailyLimit,
		&policy.WeeklyLimit,
		&policy.MonthlyLimit,
		&policy.Description,
		&policy.CurrencyCode,
		&policy.CreatedAt,
		&policy.CreatedBy,
		&policy.LastUpdatedAt,
		&policy.LastUpdatedBy,
	)
	return policy, err
}

// SavePolicy inserts or replaces the policy for a category. The category has
// a unique constraint, so the upsert keeps at most one policy per category.
func (r *PgxPolicyRepository) SavePolicy(ctx context.Context, policy domain.ExpensePolicy) error {
	modelPolicy := mapping.ToModelExpensePolicy(policy)

	query := `
		INSERT INTO expense_policies (` + policyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (category) DO UPDATE SET
			max_per_transaction = EXCLUDED.max_per_transaction,
			daily_limit = EXCLUDED.daily_limit,
			weekly_limit = EXCLUDED.weekly_limit,
			monthly_limit = EXCLUDED.monthly_limit,
			description = EXCLUDED.description,
			currency_code = EXCLUDED.currency_code,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`

	_, err := r.Pool.Exec(ctx, query,
		modelPolicy.PolicyID,
		modelPolicy.Category,
		modelPolicy.MaxPerTransaction,
		modelPolicy.DailyLimit,
		modelPolicy.WeeklyLimit,
		modelPolicy.MonthlyLimit,
		modelPolicy.Description,
		modelPolicy.CurrencyCode,
		modelPolicy.CreatedAt,
		modelPolicy.CreatedBy,
		modelPolicy.LastUpdatedAt,
		modelPolicy.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to save policy for category %s: %w", modelPolicy.Category, err)
	}
	return nil
}

// FindPolicyByCategory retrieves the policy configured for a category.
func (r *PgxPolicyRepository) FindPolicyByCategory(ctx context.Context, category domain.ExpenseCategory) (*domain.ExpensePolicy, error) {
	query := `
		SELECT ` + policyColumns + `
		FROM expense_policies
		WHERE category = $1;
	`
	modelPolicy, err := scanPolicy(r.Pool.QueryRow(ctx, query, string(category)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no policy for category %s", category))
		}
		return nil, fmt.Errorf("failed to find policy for category %s: %w", category, err)
	}

	domainPolicy := mapping.ToDomainExpensePolicy(modelPolicy)
	return &domainPolicy, nil
}

// ListPolicies retrieves all configured policies.
func (r *PgxPolicyRepository) ListPolicies(ctx context.Context) ([]domain.ExpensePolicy, error) {
	query := `
		SELECT ` + policyColumns + `
		FROM expense_policies
		ORDER BY category;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query policies: %w", err)
	}
	defer rows.Close()

	modelPolicies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExpensePolicy, error) {
		return scanPolicy(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan policies: %w", err)
	}

	domainPolicies := make([]domain.ExpensePolicy, len(modelPolicies))
	for i, modelPolicy := range modelPolicies {
		domainPolicies[i] = mapping.ToDomainExpensePolicy(modelPolicy)
	}
	return domainPolicies, nil
}
