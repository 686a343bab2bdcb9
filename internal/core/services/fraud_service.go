package services

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_approval_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// benchmarkMultiplier flags amounts above this multiple of the category's
// monthly industry benchmark.
var benchmarkMultiplier = decimal.NewFromInt(3)

// typicalMaxMultiplier flags receipt amounts above this multiple of the
// category's typical single-transaction maximum.
var typicalMaxMultiplier = decimal.NewFromFloat(1.5)

// randomFlagChance is the fixed probability that the receipt heuristic flags
// an expense regardless of content, simulating an imperfect detector.
const randomFlagChance = 0.05

// minReceiptTextLength is the shortest raw receipt text considered verifiable.
const minReceiptTextLength = 20

// monthlyBenchmarks holds the fixed per-category industry monthly benchmarks.
var monthlyBenchmarks = map[domain.ExpenseCategory]decimal.Decimal{
	domain.CategoryTravelling:     decimal.NewFromInt(20000),
	domain.CategoryFood:           decimal.NewFromInt(8000),
	domain.CategoryAccommodation:  decimal.NewFromInt(15000),
	domain.CategoryOfficeSupplies: decimal.NewFromInt(5000),
	domain.CategoryEntertainment:  decimal.NewFromInt(6000),
	domain.CategoryMiscellaneous:  decimal.NewFromInt(4000),
}

// typicalMaxAmounts holds the fixed per-category typical single-transaction maximums.
var typicalMaxAmounts = map[domain.ExpenseCategory]decimal.Decimal{
	domain.CategoryTravelling:     decimal.NewFromInt(10000),
	domain.CategoryFood:           decimal.NewFromInt(2500),
	domain.CategoryAccommodation:  decimal.NewFromInt(8000),
	domain.CategoryOfficeSupplies: decimal.NewFromInt(3000),
	domain.CategoryEntertainment:  decimal.NewFromInt(4000),
	domain.CategoryMiscellaneous:  decimal.NewFromInt(2000),
}

// suspiciousKeywords are matched case-insensitively against the description;
// only the first match is reported.
var suspiciousKeywords = []string{"gift", "personal", "cash", "advance", "reimbursement"}

// FraudService evaluates the fixed fraud heuristics. The clock and the
// randomness source are injectable so tests can force every branch.
type FraudService struct {
	now       func() time.Time
	randFloat func() float64
}

// FraudServiceOption is a functional option for configuring the fraud service
type FraudServiceOption func(*FraudService)

// WithFraudClock overrides the clock used for the future-date rule.
func WithFraudClock(now func() time.Time) FraudServiceOption {
	return func(s *FraudService) {
		s.now = now
	}
}

// WithFraudRand overrides the uniform [0,1) randomness source used by the
// receipt heuristic's random audit flag.
func WithFraudRand(randFloat func() float64) FraudServiceOption {
	return func(s *FraudService) {
		s.randFloat = randFloat
	}
}

// NewFraudService creates a new FraudService.
func NewFraudService(options ...FraudServiceOption) *FraudService {
	svc := &FraudService{
		now:       time.Now,
		randFloat: rand.Float64,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure FraudService implements the FraudCheckerSvc interface
var _ portssvc.FraudCheckerSvc = (*FraudService)(nil)

// EvaluateExpense runs the general submission heuristic. All rules are
// evaluated independently and every matching reason is collected.
func (s *FraudService) EvaluateExpense(expense domain.Expense) portssvc.FraudResult {
	var reasons []string

	if benchmark, ok := monthlyBenchmarks[expense.Category]; ok {
		threshold := benchmark.Mul(benchmarkMultiplier)
		if expense.Amount.GreaterThan(threshold) {
			reasons = append(reasons, fmt.Sprintf(
				"amount %s is more than 3x the monthly benchmark of %s for %s",
				expense.Amount.String(), benchmark.String(), expense.Category))
		}
	}

	switch expense.ExpenseDate.Weekday() {
	case time.Saturday, time.Sunday:
		reasons = append(reasons, "submitted on a weekend")
	}

	if expense.ExpenseDate.After(s.now()) {
		reasons = append(reasons, "dated in the future")
	}

	description := strings.ToLower(expense.Description)
	for _, keyword := range suspiciousKeywords {
		if strings.Contains(description, keyword) {
			reasons = append(reasons, fmt.Sprintf("description contains suspicious keyword %q", keyword))
			break
		}
	}

	return portssvc.FraudResult{IsFraud: len(reasons) > 0, Reasons: reasons}
}

// EvaluateReceipt runs the receipt-ingestion heuristic over the extraction
// tuple and the expense built from it.
func (s *FraudService) EvaluateReceipt(extraction domain.ReceiptExtraction, expense domain.Expense) portssvc.FraudResult {
	var reasons []string

	if len(strings.TrimSpace(extraction.RawText)) < minReceiptTextLength {
		reasons = append(reasons, "receipt text too short to verify")
	}

	if typicalMax, ok := typicalMaxAmounts[expense.Category]; ok {
		threshold := typicalMax.Mul(typicalMaxMultiplier)
		if expense.Amount.GreaterThan(threshold) {
			reasons = append(reasons, fmt.Sprintf(
				"amount %s exceeds 1.5x the typical maximum of %s for %s",
				expense.Amount.String(), typicalMax.String(), expense.Category))
		}
	}

	if s.randFloat() < randomFlagChance {
		reasons = append(reasons, "flagged by random audit check")
	}

	return portssvc.FraudResult{IsFraud: len(reasons) > 0, Reasons: reasons}
}
