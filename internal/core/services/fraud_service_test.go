package services_test

import (
	"testing"
	"time"

	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	"github.com/SscSPs/expense_approval_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow is a Wednesday, so weekday-sensitive cases construct their own dates.
var fixedNow = time.Date(2025, time.June, 18, 12, 0, 0, 0, time.UTC)

func newFraudServiceAt(now time.Time, randValue float64) *services.FraudService {
	return services.NewFraudService(
		services.WithFraudClock(func() time.Time { return now }),
		services.WithFraudRand(func() float64 { return randValue }),
	)
}

func baseExpense(amount int64, date time.Time, category domain.ExpenseCategory, description string) domain.Expense {
	return domain.Expense{
		ExpenseID:    "exp-1",
		UserID:       "user-1",
		Amount:       decimal.NewFromInt(amount),
		CurrencyCode: domain.CurrencyINR,
		ExpenseDate:  date,
		Category:     category,
		Description:  description,
		Status:       domain.StatusPending,
	}
}

func TestEvaluateExpense(t *testing.T) {
	monday := time.Date(2025, time.June, 16, 10, 0, 0, 0, time.UTC)
	saturday := time.Date(2025, time.June, 14, 10, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)
	future := fixedNow.AddDate(0, 0, 5) // Monday, keeps the weekend rule out of this case

	tests := []struct {
		name        string
		expense     domain.Expense
		wantFraud   bool
		wantReasons []string
	}{
		{
			name:      "clean weekday expense passes",
			expense:   baseExpense(500, monday, domain.CategoryFood, "Team lunch"),
			wantFraud: false,
		},
		{
			name:      "amount above three times the monthly benchmark",
			expense:   baseExpense(25000, monday, domain.CategoryFood, "Conference catering"),
			wantFraud: true,
			wantReasons: []string{
				"amount 25000 is more than 3x the monthly benchmark of 8000 for Food",
			},
		},
		{
			name:      "amount exactly at three times the benchmark passes",
			expense:   baseExpense(24000, monday, domain.CategoryFood, "Conference catering"),
			wantFraud: false,
		},
		{
			name:        "saturday expense is flagged",
			expense:     baseExpense(500, saturday, domain.CategoryFood, "Team lunch"),
			wantFraud:   true,
			wantReasons: []string{"submitted on a weekend"},
		},
		{
			name:        "sunday expense is flagged",
			expense:     baseExpense(500, sunday, domain.CategoryFood, "Team lunch"),
			wantFraud:   true,
			wantReasons: []string{"submitted on a weekend"},
		},
		{
			name:        "future dated expense is flagged",
			expense:     baseExpense(500, future, domain.CategoryTravelling, "Flight booking"),
			wantFraud:   true,
			wantReasons: []string{"dated in the future"},
		},
		{
			name:        "suspicious keyword in description",
			expense:     baseExpense(500, monday, domain.CategoryMiscellaneous, "Cash advance for supplies"),
			wantFraud:   true,
			wantReasons: []string{`description contains suspicious keyword "cash"`},
		},
		{
			name:        "keyword match is case insensitive",
			expense:     baseExpense(500, monday, domain.CategoryMiscellaneous, "GIFT for client"),
			wantFraud:   true,
			wantReasons: []string{`description contains suspicious keyword "gift"`},
		},
		{
			name:        "only the first matching keyword is reported",
			expense:     baseExpense(500, monday, domain.CategoryMiscellaneous, "personal cash gift"),
			wantFraud:   true,
			wantReasons: []string{`description contains suspicious keyword "gift"`},
		},
		{
			name:      "multiple rules stack their reasons",
			expense:   baseExpense(25000, saturday, domain.CategoryFood, "personal catering"),
			wantFraud: true,
			wantReasons: []string{
				"amount 25000 is more than 3x the monthly benchmark of 8000 for Food",
				"submitted on a weekend",
				`description contains suspicious keyword "personal"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFraudServiceAt(fixedNow, 0.99)
			result := svc.EvaluateExpense(tt.expense)

			assert.Equal(t, tt.wantFraud, result.IsFraud)
			if tt.wantReasons == nil {
				assert.Empty(t, result.Reasons)
			} else {
				assert.Equal(t, tt.wantReasons, result.Reasons)
			}
		})
	}
}

func TestEvaluateExpense_SameInputSameResult(t *testing.T) {
	svc := newFraudServiceAt(fixedNow, 0.99)
	expense := baseExpense(25000, fixedNow.AddDate(0, 0, -2), domain.CategoryFood, "personal catering")

	first := svc.EvaluateExpense(expense)
	second := svc.EvaluateExpense(expense)

	assert.Equal(t, first, second)
}

func TestEvaluateReceipt(t *testing.T) {
	monday := time.Date(2025, time.June, 16, 10, 0, 0, 0, time.UTC)
	longText := "RECEIPT #4821 Cafe Aroma, 2x coffee, total 540.00 INR"

	tests := []struct {
		name        string
		rawText     string
		amount      int64
		category    domain.ExpenseCategory
		randValue   float64
		wantFraud   bool
		wantReasons []string
	}{
		{
			name:      "verifiable receipt passes",
			rawText:   longText,
			amount:    540,
			category:  domain.CategoryFood,
			randValue: 0.99,
			wantFraud: false,
		},
		{
			name:        "short receipt text is unverifiable",
			rawText:     "TOTAL 540",
			amount:      540,
			category:    domain.CategoryFood,
			randValue:   0.99,
			wantFraud:   true,
			wantReasons: []string{"receipt text too short to verify"},
		},
		{
			name:      "amount above typical maximum",
			rawText:   longText,
			amount:    4000,
			category:  domain.CategoryFood,
			randValue: 0.99,
			wantFraud: true,
			wantReasons: []string{
				"amount 4000 exceeds 1.5x the typical maximum of 2500 for Food",
			},
		},
		{
			name:      "amount exactly at the typical maximum threshold passes",
			rawText:   longText,
			amount:    3750,
			category:  domain.CategoryFood,
			randValue: 0.99,
			wantFraud: false,
		},
		{
			name:        "random audit flag fires below the threshold",
			rawText:     longText,
			amount:      540,
			category:    domain.CategoryFood,
			randValue:   0.01,
			wantFraud:   true,
			wantReasons: []string{"flagged by random audit check"},
		},
		{
			name:      "random audit flag does not fire at the threshold",
			rawText:   longText,
			amount:    540,
			category:  domain.CategoryFood,
			randValue: 0.05,
			wantFraud: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFraudServiceAt(fixedNow, tt.randValue)
			expense := baseExpense(tt.amount, monday, tt.category, "Team lunch")
			extraction := domain.ReceiptExtraction{
				Amount:  &expense.Amount,
				Date:    &monday,
				Vendor:  "Cafe Aroma",
				RawText: tt.rawText,
			}

			result := svc.EvaluateReceipt(extraction, expense)

			assert.Equal(t, tt.wantFraud, result.IsFraud)
			if tt.wantReasons == nil {
				assert.Empty(t, result.Reasons)
			} else {
				assert.Equal(t, tt.wantReasons, result.Reasons)
			}
		})
	}
}

func TestFraudResultUnion(t *testing.T) {
	general := services.NewFraudService(
		services.WithFraudClock(func() time.Time { return fixedNow }),
		services.WithFraudRand(func() float64 { return 0.01 }),
	)

	saturday := time.Date(2025, time.June, 14, 10, 0, 0, 0, time.UTC)
	expense := baseExpense(540, saturday, domain.CategoryFood, "Team lunch")
	extraction := domain.ReceiptExtraction{RawText: "TOTAL 540"}

	merged := general.EvaluateExpense(expense).Union(general.EvaluateReceipt(extraction, expense))

	require.True(t, merged.IsFraud)
	assert.Equal(t, []string{
		"submitted on a weekend",
		"receipt text too short to verify",
		"flagged by random audit check",
	}, merged.Reasons)
}
