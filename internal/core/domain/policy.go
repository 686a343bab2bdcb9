package domain

import "github.com/shopspring/decimal"

// ExpensePolicy holds the configured spending limits for one category.
// Exactly one policy may exist per category.
//
// A nil limit means "no constraint", not "zero allowed".
// MaxPerTransaction and DailyLimit are carried for configuration parity but
// the evaluator does not enforce them; the receipt heuristic covers the
// single-transaction signal instead.
type ExpensePolicy struct {
	PolicyID          string           `json:"policyID"` // Primary Key (UUID)
	Category          ExpenseCategory  `json:"category"` // Unique
	MaxPerTransaction *decimal.Decimal `json:"maxPerTransaction,omitempty"`
	DailyLimit        *decimal.Decimal `json:"dailyLimit,omitempty"`
	WeeklyLimit       *decimal.Decimal `json:"weeklyLimit,omitempty"`
	MonthlyLimit      *decimal.Decimal `json:"monthlyLimit,omitempty"`
	Description       string           `json:"description"`
	CurrencyCode      string           `json:"currencyCode"` // Currency the limits are denominated in
	AuditFields
}
