package services

import (
	"context"
	"time"

	"github.com/SscSPs/expense_approval_app/internal/core/domain"
)

// ReportingSvc produces the dashboard aggregations.
type ReportingSvc interface {
	// SpendSummary aggregates spend by category, user and currency for
	// expenses dated within [from, to], with totals additionally converted
	// into targetCurrency. Converted figures are best-effort estimates when
	// rates are degraded.
	SpendSummary(ctx context.Context, from, to time.Time, targetCurrency string) (*domain.SpendSummary, error)
}
