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
)

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rate data.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

// SaveExchangeRate inserts or overwrites the rate for a currency pair on its
// effective day. The upsert is idempotent so concurrent same-day refreshes
// are safe to race.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	modelRate := mapping.ToModelExchangeRate(rate)

	query := `
		INSERT INTO exchange_rates (exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9)
		ON CONFLICT (from_currency_code, to_currency_code, date_effective) DO UPDATE SET
			rate = EXCLUDED.rate,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`

	_, err := r.Pool.Exec(ctx, query,
		modelRate.ExchangeRateID,
		modelRate.FromCurrencyCode,
		modelRate.ToCurrencyCode,
		modelRate.Rate,
		modelRate.DateEffective,
		modelRate.CreatedAt,
		modelRate.CreatedBy,
		modelRate.LastUpdatedAt,
		modelRate.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to save exchange rate %s->%s: %w", modelRate.FromCurrencyCode, modelRate.ToCurrencyCode, err)
	}
	return nil
}

// SaveExchangeRates upserts a batch of rates atomically. Used by the daily
// refresh so a partial failure never leaves a half-written rate set.
func (r *PgxExchangeRateRepository) SaveExchangeRates(ctx context.Context, rates []domain.ExchangeRate) error {
	if len(rates) == 0 {
		return nil
	}

	query := `
		INSERT INTO exchange_rates (exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9)
		ON CONFLICT (from_currency_code, to_currency_code, date_effective) DO UPDATE SET
			rate = EXCLUDED.rate,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`

	return r.runInTx(ctx, func(tx pgx.Tx) error {
		for _, rate := range rates {
			modelRate := mapping.ToModelExchangeRate(rate)
			_, err := tx.Exec(ctx, query,
				modelRate.ExchangeRateID,
				modelRate.FromCurrencyCode,
				modelRate.ToCurrencyCode,
				modelRate.Rate,
				modelRate.DateEffective,
				modelRate.CreatedAt,
				modelRate.CreatedBy,
				modelRate.LastUpdatedAt,
				modelRate.LastUpdatedBy,
			)
			if err != nil {
				return fmt.Errorf("failed to save exchange rate %s->%s: %w", modelRate.FromCurrencyCode, modelRate.ToCurrencyCode, err)
			}
		}
		return nil
	})
}

// FindExchangeRate retrieves the rate for a pair effective on the given date,
// falling back to the most recent earlier rate.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, onDate time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective, created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2 AND date_effective <= $3::date
		ORDER BY date_effective DESC
		LIMIT 1;
	`
	var modelRate models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, fromCurrencyCode, toCurrencyCode, onDate).Scan(
		&modelRate.ExchangeRateID,
		&modelRate.FromCurrencyCode,
		&modelRate.ToCurrencyCode,
		&modelRate.Rate,
		&modelRate.DateEffective,
		&modelRate.CreatedAt,
		&modelRate.CreatedBy,
		&modelRate.LastUpdatedAt,
		&modelRate.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no exchange rate for %s->%s", fromCurrencyCode, toCurrencyCode))
		}
		return nil, fmt.Errorf("failed to find exchange rate %s->%s: %w", fromCurrencyCode, toCurrencyCode, err)
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}
