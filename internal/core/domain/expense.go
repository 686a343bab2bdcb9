package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus is the expense's current disposition in the approval lifecycle.
// The string values are persisted and must not change.
type ExpenseStatus string

const (
	StatusPending  ExpenseStatus = "pending"
	StatusApproved ExpenseStatus = "approved"
	StatusRejected ExpenseStatus = "rejected"
	StatusFlagged  ExpenseStatus = "flagged"
)

// IsValid reports whether s is one of the four known statuses.
func (s ExpenseStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusFlagged:
		return true
	}
	return false
}

// ExpenseCategory is one of the six fixed spend categories.
type ExpenseCategory string

const (
	CategoryTravelling     ExpenseCategory = "Travelling"
	CategoryFood           ExpenseCategory = "Food"
	CategoryAccommodation  ExpenseCategory = "Accommodation"
	CategoryOfficeSupplies ExpenseCategory = "Office Supplies"
	CategoryEntertainment  ExpenseCategory = "Entertainment"
	CategoryMiscellaneous  ExpenseCategory = "Miscellaneous"
)

// Categories lists every known category, in seeding order.
func Categories() []ExpenseCategory {
	return []ExpenseCategory{
		CategoryTravelling,
		CategoryFood,
		CategoryAccommodation,
		CategoryOfficeSupplies,
		CategoryEntertainment,
		CategoryMiscellaneous,
	}
}

// IsValid reports whether c is one of the six known categories.
func (c ExpenseCategory) IsValid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Expense represents a single submitted expense.
// ExpenseDate is the business date of the spend and is distinct from the
// CreatedAt audit timestamp.
type Expense struct {
	ExpenseID    string          `json:"expenseID"` // Primary Key (UUID)
	UserID       string          `json:"userID"`    // FK -> User.userID
	Amount       decimal.Decimal `json:"amount"`    // Positive value
	CurrencyCode string          `json:"currencyCode"`
	ExpenseDate  time.Time       `json:"expenseDate"`
	Category     ExpenseCategory `json:"category"`
	Description  string          `json:"description"`
	ReceiptRef   string          `json:"receiptRef,omitempty"` // Reference to an uploaded receipt image, if any
	Notes        string          `json:"notes,omitempty"`      // Decision rationale for non-approved dispositions
	Status       ExpenseStatus   `json:"status"`
	AuditFields
}
