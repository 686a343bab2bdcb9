package services

import (
	"github.com/SscSPs/expense_approval_app/internal/core/domain"
)

// FraudResult is the outcome of a heuristic evaluation.
// IsFraud is true iff Reasons is non-empty.
type FraudResult struct {
	IsFraud bool
	Reasons []string
}

// Union merges two heuristic results, keeping the reason order of the receiver first.
func (r FraudResult) Union(other FraudResult) FraudResult {
	merged := FraudResult{
		IsFraud: r.IsFraud || other.IsFraud,
		Reasons: append(append([]string{}, r.Reasons...), other.Reasons...),
	}
	return merged
}

// FraudCheckerSvc evaluates fixed fraud heuristics over a single expense.
// Both checks are pure given a fixed clock; no history is consulted.
type FraudCheckerSvc interface {
	// EvaluateExpense runs the general submission heuristic.
	EvaluateExpense(expense domain.Expense) FraudResult

	// EvaluateReceipt runs the receipt-ingestion heuristic over the
	// extraction tuple and the expense built from it.
	EvaluateReceipt(extraction domain.ReceiptExtraction, expense domain.Expense) FraudResult
}
