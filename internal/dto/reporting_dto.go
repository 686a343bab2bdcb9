package dto

import (
	"time"

	"github.com/SscSPs/expense_approval_app/internal/core/domain"
)

// SpendSummaryParams defines query parameters for the dashboard summary.
type SpendSummaryParams struct {
	From     time.Time `form:"from" time_format:"2006-01-02"`
	To       time.Time `form:"to" time_format:"2006-01-02"`
	Currency string    `form:"currency,default=INR"`
}

// SpendSummaryResponse wraps the dashboard aggregation.
type SpendSummaryResponse struct {
	*domain.SpendSummary
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}
