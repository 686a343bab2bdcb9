package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindExchangeRate retrieves the rate between two currencies effective on
	// the given date, falling back to the most recent earlier rate.
	FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, onDate time.Time) (*domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate persists an exchange rate. Saving the same
	// (from, to, dateEffective) twice overwrites the rate; the upsert is
	// idempotent so concurrent same-day refreshes are safe to race.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// SaveExchangeRates upserts a batch of rates in a single transaction.
	SaveExchangeRates(ctx context.Context, rates []domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}

// DailyRateSource is the boundary to the external rate provider. It is called
// at most once per stale cache entry; callers apply their own retry policy.
type DailyRateSource interface {
	// FetchDailyRates returns today's rates relative to baseCurrency: one
	// unit of baseCurrency equals rates[code] units of code.
	FetchDailyRates(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error)
}
