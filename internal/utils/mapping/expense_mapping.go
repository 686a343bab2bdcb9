package mapping

import (
	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	"github.com/SscSPs/expense_approval_app/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense.
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:    d.ExpenseID,
		UserID:       d.UserID,
		Amount:       d.Amount,
		CurrencyCode: d.CurrencyCode,
		ExpenseDate:  d.ExpenseDate,
		Category:     string(d.Category),
		Description:  d.Description,
		ReceiptRef:   d.ReceiptRef,
		Notes:        d.Notes,
		Status:       string(d.Status),
		AuditFields:  toModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense.
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:    m.ExpenseID,
		UserID:       m.UserID,
		Amount:       m.Amount,
		CurrencyCode: m.CurrencyCode,
		ExpenseDate:  m.ExpenseDate,
		Category:     domain.ExpenseCategory(m.Category),
		Description:  m.Description,
		ReceiptRef:   m.ReceiptRef,
		Notes:        m.Notes,
		Status:       domain.ExpenseStatus(m.Status),
		AuditFields:  toDomainAuditFields(m.AuditFields),
	}
}

// ToModelExpensePolicy converts a domain ExpensePolicy to a model ExpensePolicy.
func ToModelExpensePolicy(d domain.ExpensePolicy) models.ExpensePolicy {
	return models.ExpensePolicy{
		PolicyID:          d.PolicyID,
		Category:          string(d.Category),
		MaxPerTransaction: d.MaxPerTransaction,
		DailyLimit:        d.DailyLimit,
		WeeklyLimit:       d.WeeklyLimit,
		MonthlyLimit:      d.MonthlyLimit,
		Description:       d.Description,
		CurrencyCode:      d.CurrencyCode,
		AuditFields:       toModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpensePolicy converts a model ExpensePolicy to a domain ExpensePolicy.
func ToDomainExpensePolicy(m models.ExpensePolicy) domain.ExpensePolicy {
	return domain.ExpensePolicy{
		PolicyID:          m.PolicyID,
		Category:          domain.ExpenseCategory(m.Category),
		MaxPerTransaction: m.MaxPerTransaction,
		DailyLimit:        m.DailyLimit,
		WeeklyLimit:       m.WeeklyLimit,
		MonthlyLimit:      m.MonthlyLimit,
		Description:       m.Description,
		CurrencyCode:      m.CurrencyCode,
		AuditFields:       toDomainAuditFields(m.AuditFields),
	}
}
