package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the database representation of a submitted expense.
// Status and category use the fixed string vocabularies; amounts use a
// precise decimal type.
type Expense struct {
	ExpenseID    string          `json:"expenseID"`    // Primary Key (UUID)
	UserID       string          `json:"userID"`       // FK -> users.user_id (Not Null)
	Amount       decimal.Decimal `json:"amount"`       // Positive value
	CurrencyCode string          `json:"currencyCode"` // FK -> currencies.currency_code
	ExpenseDate  time.Time       `json:"expenseDate"`  // Business date, not creation time
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	ReceiptRef   string          `json:"receiptRef"` // Nullable
	Notes        string          `json:"notes"`      // Nullable
	Status       string          `json:"status"`
	AuditFields
}

// ExpensePolicy is the database representation of a per-category policy.
// Optional limits are nullable columns.
type ExpensePolicy struct {
	PolicyID          string           `json:"policyID"` // Primary Key (UUID)
	Category          string           `json:"category"` // Unique (Not Null)
	MaxPerTransaction *decimal.Decimal `json:"maxPerTransaction"`
	DailyLimit        *decimal.Decimal `json:"dailyLimit"`
	WeeklyLimit       *decimal.Decimal `json:"weeklyLimit"`
	MonthlyLimit      *decimal.Decimal `json:"monthlyLimit"`
	Description       string           `json:"description"`
	CurrencyCode      string           `json:"currencyCode"`
	AuditFields
}
