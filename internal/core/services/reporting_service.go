package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/expense_approval_app/internal/apperrors"
	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approval_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approval_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService builds the dashboard aggregations from grouped spend rows.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	converter     portssvc.CurrencyConverterSvc
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, converter portssvc.CurrencyConverterSvc) portssvc.ReportingSvc {
	return &reportingService{
		reportingRepo: reportingRepo,
		converter:     converter,
	}
}

// Ensure reportingService implements the service interface
var _ portssvc.ReportingSvc = (*reportingService)(nil)

// SpendSummary aggregates spend by category, user and currency for expenses
// dated within [from, to]. Totals are additionally converted into
// targetCurrency; converted figures are best-effort when rates are degraded.
func (s *reportingService) SpendSummary(ctx context.Context, from, to time.Time, targetCurrency string) (*domain.SpendSummary, error) {
	targetCurrency = strings.ToUpper(targetCurrency)
	if !domain.IsSupportedCurrency(targetCurrency) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported currency code '%s'", targetCurrency))
	}
	if to.Before(from) {
		return nil, apperrors.NewValidationError("'to' date must not be before 'from' date")
	}

	rows, err := s.reportingRepo.GetSpendRows(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load spend rows in service: %w", err)
	}

	summary := &domain.SpendSummary{
		TargetCurrency: targetCurrency,
		ByStatus:       make(map[string]int),
		GrandTotal:     decimal.Zero,
	}

	byCategory := make(map[string]*domain.SpendBucket)
	byUser := make(map[string]*domain.SpendBucket)
	byCurrency := make(map[string]*domain.SpendBucket)

	for _, row := range rows {
		converted := s.converter.Convert(ctx, row.Total, row.CurrencyCode, targetCurrency)

		// Category and user buckets can mix currencies, so their Total is
		// kept in the target currency. Currency buckets keep the original
		// unconverted total alongside the converted one.
		accumulate(byCategory, string(row.Category), targetCurrency, converted, converted, row.Count)
		accumulate(byUser, row.UserID, targetCurrency, converted, converted, row.Count)
		accumulate(byCurrency, row.CurrencyCode, row.CurrencyCode, row.Total, converted, row.Count)

		summary.ByStatus[string(row.Status)] += row.Count
		summary.GrandTotal = summary.GrandTotal.Add(converted)
	}

	summary.ByCategory = sortedBuckets(byCategory)
	summary.ByUser = sortedBuckets(byUser)
	summary.ByCurrency = sortedBuckets(byCurrency)

	return summary, nil
}

// accumulate adds a row's totals into the keyed bucket, creating it on first use.
func accumulate(buckets map[string]*domain.SpendBucket, key, currencyCode string, total, converted decimal.Decimal, count int) {
	bucket, ok := buckets[key]
	if !ok {
		bucket = &domain.SpendBucket{Key: key, CurrencyCode: currencyCode}
		buckets[key] = bucket
	}
	bucket.Total = bucket.Total.Add(total)
	bucket.ConvertedTotal = bucket.ConvertedTotal.Add(converted)
	bucket.Count += count
}

// sortedBuckets flattens a bucket map into a deterministic key-ordered slice.
func sortedBuckets(buckets map[string]*domain.SpendBucket) []domain.SpendBucket {
	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]domain.SpendBucket, 0, len(keys))
	for _, key := range keys {
		out = append(out, *buckets[key])
	}
	return out
}
