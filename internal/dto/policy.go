package dto

import (
	"time"

	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertPolicyRequest defines the structure for creating or replacing the
// policy of a category. Omitted limits mean "no constraint".
type UpsertPolicyRequest struct {
	MaxPerTransaction *decimal.Decimal `json:"maxPerTransaction"`
	DailyLimit        *decimal.Decimal `json:"dailyLimit"`
	WeeklyLimit       *decimal.Decimal `json:"weeklyLimit"`
	MonthlyLimit      *decimal.Decimal `json:"monthlyLimit"`
	Description       string           `json:"description"`
	CurrencyCode      string           `json:"currencyCode" binding:"required,len=3,uppercase"`
}

// PolicyResponse defines the structure for API responses containing policy details.
type PolicyResponse struct {
	PolicyID          string           `json:"policyID"`
	Category          string           `json:"category"`
	MaxPerTransaction *decimal.Decimal `json:"maxPerTransaction,omitempty"`
	DailyLimit        *decimal.Decimal `json:"dailyLimit,omitempty"`
	WeeklyLimit       *decimal.Decimal `json:"weeklyLimit,omitempty"`
	MonthlyLimit      *decimal.Decimal `json:"monthlyLimit,omitempty"`
	Description       string           `json:"description"`
	CurrencyCode      string           `json:"currencyCode"`
	LastUpdatedAt     time.Time        `json:"lastUpdatedAt"`
	LastUpdatedBy     string           `json:"lastUpdatedBy"`
}

// ToPolicyResponse converts a domain.ExpensePolicy to PolicyResponse DTO
func ToPolicyResponse(p *domain.ExpensePolicy) PolicyResponse {
	return PolicyResponse{
		PolicyID:          p.PolicyID,
		Category:          string(p.Category),
		MaxPerTransaction: p.MaxPerTransaction,
		DailyLimit:        p.DailyLimit,
		WeeklyLimit:       p.WeeklyLimit,
		MonthlyLimit:      p.MonthlyLimit,
		Description:       p.Description,
		CurrencyCode:      p.CurrencyCode,
		LastUpdatedAt:     p.LastUpdatedAt,
		LastUpdatedBy:     p.LastUpdatedBy,
	}
}

// ToListPolicyResponse converts a slice of domain.ExpensePolicy to response DTOs.
func ToListPolicyResponse(policies []domain.ExpensePolicy) []PolicyResponse {
	responses := make([]PolicyResponse, len(policies))
	for i := range policies {
		responses[i] = ToPolicyResponse(&policies[i])
	}
	return responses
}
