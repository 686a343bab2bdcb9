package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/expense_approval_app/internal/apperrors"
	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approval_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approval_app/internal/core/ports/services"
	"github.com/SscSPs/expense_approval_app/internal/dto"
	"github.com/avast/retry-go"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	rateFetchAttempts = 3
	rateFetchDelay    = 500 * time.Millisecond
)

// fallbackReferenceRates are the hard-coded rates relative to the reference
// currency, used when the external rate source is unreachable: one unit of
// the reference currency buys this much of each code.
var fallbackReferenceRates = map[string]decimal.Decimal{
	domain.CurrencyUSD:       decimal.NewFromFloat(0.012),
	domain.CurrencyEUR:       decimal.NewFromFloat(0.011),
	domain.CurrencyGBP:       decimal.NewFromFloat(0.0094),
	domain.ReferenceCurrency: decimal.NewFromInt(1),
}

// rateKey identifies one cached conversion rate for one calendar day.
type rateKey struct {
	day  string
	from string
	to   string
}

// ExchangeRateService provides business logic for exchange rates and
// currency conversion. The rate cache is process-wide, keyed by
// (day, from, to); refreshes are idempotent overwrites so concurrent
// same-day refreshes are safe to race.
type ExchangeRateService struct {
	BaseService
	rateRepo    portsrepo.ExchangeRateRepositoryFacade
	currencySvc portssvc.CurrencyReaderSvc
	rateSource  portsrepo.DailyRateSource
	now         func() time.Time

	mu       sync.RWMutex
	cache    map[rateKey]decimal.Decimal
	cacheDay string
}

// ExchangeRateServiceOption is a functional option for configuring the service
type ExchangeRateServiceOption func(*ExchangeRateService)

// WithRateClock overrides the clock used for cache-day bucketing.
func WithRateClock(now func() time.Time) ExchangeRateServiceOption {
	return func(s *ExchangeRateService) {
		s.now = now
	}
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencySvc portssvc.CurrencyReaderSvc, rateSource portsrepo.DailyRateSource, options ...ExchangeRateServiceOption) *ExchangeRateService {
	svc := &ExchangeRateService{
		rateRepo:    rateRepo,
		currencySvc: currencySvc,
		rateSource:  rateSource,
		now:         time.Now,
		cache:       make(map[rateKey]decimal.Decimal),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure ExchangeRateService implements the service interfaces
var (
	_ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)
	_ portssvc.CurrencyConverterSvc  = (*ExchangeRateService)(nil)
)

// CreateExchangeRate handles the creation of a manually entered exchange rate.
// Only managers may enter rates.
func (s *ExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string, creatorRole domain.UserRole) (*domain.ExchangeRate, error) {
	if err := s.RequireManager(ctx, creatorUserID, creatorRole); err != nil {
		return nil, err
	}

	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if req.FromCurrencyCode == req.ToCurrencyCode {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}

	// Check if currencies exist
	_, errFrom := s.currencySvc.GetCurrencyByCode(ctx, req.FromCurrencyCode)
	if errFrom != nil {
		if errors.Is(errFrom, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: 'from' currency code '%s' not found", apperrors.ErrValidation, req.FromCurrencyCode)
		}
		return nil, fmt.Errorf("failed to validate 'from' currency '%s': %w", req.FromCurrencyCode, errFrom)
	}

	_, errTo := s.currencySvc.GetCurrencyByCode(ctx, req.ToCurrencyCode)
	if errTo != nil {
		if errors.Is(errTo, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: 'to' currency code '%s' not found", apperrors.ErrValidation, req.ToCurrencyCode)
		}
		return nil, fmt.Errorf("failed to validate 'to' currency '%s': %w", req.ToCurrencyCode, errTo)
	}

	now := s.now()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: req.FromCurrencyCode,
		ToCurrencyCode:   req.ToCurrencyCode,
		Rate:             req.Rate,
		DateEffective:    req.DateEffective,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to create exchange rate in service: %w", err)
	}

	s.storeCachedRate(rate.DateEffective, rate.FromCurrencyCode, rate.ToCurrencyCode, rate.Rate)

	return &rate, nil
}

// GetExchangeRate retrieves the current exchange rate for a currency pair.
func (s *ExchangeRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if len(fromCode) != 3 || len(toCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	rate, err := s.rateRepo.FindExchangeRate(ctx, fromCode, toCode, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}

	return rate, nil
}

// Convert converts an amount between two supported currencies using the
// day's cached rates. Identity conversions are exact and bypass the cache.
// When no direct rate is available the conversion is bridged through the
// reference currency; when no rate can be found even after a refresh
// attempt, the original amount is returned unchanged as a degraded
// best-effort estimate.
func (s *ExchangeRateService) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) decimal.Decimal {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)

	if fromCode == toCode {
		return amount
	}

	if !domain.IsSupportedCurrency(fromCode) || !domain.IsSupportedCurrency(toCode) {
		s.LogWarn(ctx, "Conversion requested for unsupported currency pair, returning amount unchanged",
			slog.String("from", fromCode), slog.String("to", toCode))
		return amount
	}

	now := s.now()
	day := now.Format("2006-01-02")

	// Same-day cached direct rate
	if rate, ok := s.cachedRate(day, fromCode, toCode); ok {
		return amount.Mul(rate)
	}

	// Same-day rate persisted earlier (e.g. entered by a manager, or
	// refreshed by another process sharing the table)
	if stored, err := s.rateRepo.FindExchangeRate(ctx, fromCode, toCode, now); err == nil && sameCalendarDay(stored.DateEffective, now) {
		s.storeCachedRate(now, fromCode, toCode, stored.Rate)
		return amount.Mul(stored.Rate)
	}

	// Stale or missing: refresh from the external source, then bridge
	// through the reference currency.
	referenceRates, err := s.refreshDailyRates(ctx)
	if err != nil {
		s.LogWarn(ctx, "Daily rate refresh failed, using fallback rate table",
			slog.String("error", err.Error()))
		referenceRates = fallbackReferenceRates
	}

	fromRate, okFrom := referenceRates[fromCode]
	toRate, okTo := referenceRates[toCode]
	if !okFrom || !okTo || fromRate.IsZero() {
		s.LogWarn(ctx, "No conversion rate available, returning amount unchanged",
			slog.String("from", fromCode), slog.String("to", toCode))
		return amount
	}

	// One unit of the reference currency buys fromRate of 'from' and
	// toRate of 'to', so one 'from' buys toRate/fromRate of 'to'.
	bridged := toRate.Div(fromRate)
	s.storeCachedRate(now, fromCode, toCode, bridged)

	return amount.Mul(bridged)
}

// refreshDailyRates fetches today's reference-relative rates with retries and
// persists them as idempotent upserts before returning them.
func (s *ExchangeRateService) refreshDailyRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	var rates map[string]decimal.Decimal

	err := retry.Do(
		func() error {
			fetched, err := s.rateSource.FetchDailyRates(ctx, domain.ReferenceCurrency)
			if err != nil {
				return err
			}
			rates = fetched
			return nil
		},
		retry.Attempts(rateFetchAttempts),
		retry.Delay(rateFetchDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch daily rates after %d attempts: %w", rateFetchAttempts, err)
	}

	now := s.now()
	persisted := make([]domain.ExchangeRate, 0, len(rates))
	for code, rate := range rates {
		if code == domain.ReferenceCurrency || rate.IsZero() {
			continue
		}
		s.storeCachedRate(now, domain.ReferenceCurrency, code, rate)
		persisted = append(persisted, domain.ExchangeRate{
			ExchangeRateID:   uuid.NewString(),
			FromCurrencyCode: domain.ReferenceCurrency,
			ToCurrencyCode:   code,
			Rate:             rate,
			DateEffective:    now,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     "system",
				LastUpdatedAt: now,
				LastUpdatedBy: "system",
			},
		})
	}
	if err := s.rateRepo.SaveExchangeRates(ctx, persisted); err != nil {
		// Persisting the refresh is best-effort; the in-memory cache
		// already carries the rates for this process.
		s.LogWarn(ctx, "Failed to persist refreshed rates",
			slog.String("error", err.Error()))
	}
	if _, ok := rates[domain.ReferenceCurrency]; !ok {
		rates[domain.ReferenceCurrency] = decimal.NewFromInt(1)
	}

	return rates, nil
}

func (s *ExchangeRateService) cachedRate(day, from, to string) (decimal.Decimal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rate, ok := s.cache[rateKey{day: day, from: from, to: to}]
	return rate, ok
}

func (s *ExchangeRateService) storeCachedRate(at time.Time, from, to string, rate decimal.Decimal) {
	day := at.Format("2006-01-02")
	s.mu.Lock()
	defer s.mu.Unlock()
	// The first store of a new day drops entries for earlier days so the
	// cache stays bounded over long uptimes. Backfilled past-day rates do
	// not trigger eviction.
	if day > s.cacheDay {
		for k := range s.cache {
			if k.day < day {
				delete(s.cache, k)
			}
		}
		s.cacheDay = day
	}
	s.cache[rateKey{day: day, from: from, to: to}] = rate
	if !rate.IsZero() {
		s.cache[rateKey{day: day, from: to, to: from}] = decimal.NewFromInt(1).Div(rate)
	}
}

func sameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
