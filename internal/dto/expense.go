package dto

import (
	"time"

	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SubmitExpenseRequest defines the structure for a manual expense submission.
type SubmitExpenseRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	ExpenseDate  time.Time       `json:"expenseDate" binding:"required"`
	Category     string          `json:"category" binding:"required,expensecategory"`
	Description  string          `json:"description" binding:"required"`
	ReceiptRef   string          `json:"receiptRef"`
}

// SubmitReceiptExpenseRequest is the receipt-scan submission path: the
// extracted tuple plus the user-confirmed expense fields.
type SubmitReceiptExpenseRequest struct {
	SubmitExpenseRequest
	ExtractedAmount *decimal.Decimal `json:"extractedAmount"`
	ExtractedDate   *time.Time       `json:"extractedDate"`
	ExtractedVendor string           `json:"extractedVendor"`
	RawText         string           `json:"rawText"`
}

// Extraction rebuilds the boundary tuple from the request fields.
func (r SubmitReceiptExpenseRequest) Extraction() domain.ReceiptExtraction {
	return domain.ReceiptExtraction{
		Amount:  r.ExtractedAmount,
		Date:    r.ExtractedDate,
		Vendor:  r.ExtractedVendor,
		RawText: r.RawText,
	}
}

// UpdateExpenseStatusRequest defines a manager-initiated status transition.
// By convention the UI offers pending->{approved,rejected},
// flagged->{approved,rejected,pending} and decision reversals; the engine
// itself accepts any target status.
type UpdateExpenseStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected flagged"`
	Notes  string `json:"notes"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	UserID       string `form:"userID"`
	Category     string `form:"category"`
	CurrencyCode string `form:"currency"`
	Limit        int    `form:"limit,default=20"`
	Offset       int    `form:"offset,default=0"`
}

// ExpenseResponse defines the structure for API responses containing expense details.
type ExpenseResponse struct {
	ExpenseID    string          `json:"expenseID"`
	UserID       string          `json:"userID"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	ExpenseDate  time.Time       `json:"expenseDate"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	ReceiptRef   string          `json:"receiptRef,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:    e.ExpenseID,
		UserID:       e.UserID,
		Amount:       e.Amount,
		CurrencyCode: e.CurrencyCode,
		ExpenseDate:  e.ExpenseDate,
		Category:     string(e.Category),
		Description:  e.Description,
		ReceiptRef:   e.ReceiptRef,
		Notes:        e.Notes,
		Status:       string(e.Status),
		CreatedAt:    e.CreatedAt,
	}
}

// ToListExpenseResponse converts a slice of domain.Expense to response DTOs.
func ToListExpenseResponse(expenses []domain.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}
