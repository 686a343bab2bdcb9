package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/expense_approval_app/internal/apperrors"
	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approval_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approval_app/internal/core/ports/services"
	"github.com/SscSPs/expense_approval_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const fraudNotePrefix = "Potential fraud detected: "

// expenseService provides submission, evaluation and transition logic for
// expenses.
type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
	policySvc   portssvc.PolicyReaderSvc
	fraudSvc    portssvc.FraudCheckerSvc
	converter   portssvc.CurrencyConverterSvc
	now         func() time.Time
}

// ExpenseServiceOption is a functional option for configuring the expense service
type ExpenseServiceOption func(*expenseService)

// WithExpenseClock overrides the clock used for audit timestamps.
func WithExpenseClock(now func() time.Time) ExpenseServiceOption {
	return func(s *expenseService) {
		s.now = now
	}
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, policySvc portssvc.PolicyReaderSvc, fraudSvc portssvc.FraudCheckerSvc, converter portssvc.CurrencyConverterSvc, options ...ExpenseServiceOption) portssvc.ExpenseSvcFacade {
	svc := &expenseService{
		expenseRepo: expenseRepo,
		policySvc:   policySvc,
		fraudSvc:    fraudSvc,
		converter:   converter,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure expenseService implements the service interface
var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// SubmitExpense handles a manual expense submission: validate, run the
// general fraud heuristic, evaluate the category policy, persist with the
// decided status.
func (s *expenseService) SubmitExpense(ctx context.Context, req dto.SubmitExpenseRequest, submitterUserID string) (*domain.Expense, error) {
	expense, err := s.buildExpense(req, submitterUserID)
	if err != nil {
		return nil, err
	}

	fraud := s.fraudSvc.EvaluateExpense(*expense)
	s.decide(ctx, expense, fraud)

	if err := s.expenseRepo.SaveExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.String("userID", submitterUserID))
		return nil, fmt.Errorf("failed to save expense in service: %w", err)
	}

	s.LogInfo(ctx, "Expense submitted",
		slog.String("expenseID", expense.ExpenseID),
		slog.String("status", string(expense.Status)))

	return expense, nil
}

// SubmitReceiptExpense handles the receipt-scan submission path. The receipt
// heuristic runs in addition to the general one and their reasons are merged,
// general reasons first.
func (s *expenseService) SubmitReceiptExpense(ctx context.Context, req dto.SubmitReceiptExpenseRequest, submitterUserID string) (*domain.Expense, error) {
	expense, err := s.buildExpense(req.SubmitExpenseRequest, submitterUserID)
	if err != nil {
		return nil, err
	}

	fraud := s.fraudSvc.EvaluateExpense(*expense).
		Union(s.fraudSvc.EvaluateReceipt(req.Extraction(), *expense))
	s.decide(ctx, expense, fraud)

	if err := s.expenseRepo.SaveExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "Failed to save receipt expense", slog.String("userID", submitterUserID))
		return nil, fmt.Errorf("failed to save receipt expense in service: %w", err)
	}

	s.LogInfo(ctx, "Receipt expense submitted",
		slog.String("expenseID", expense.ExpenseID),
		slog.String("status", string(expense.Status)))

	return expense, nil
}

// buildExpense validates the request fields and assembles a pending expense.
func (s *expenseService) buildExpense(req dto.SubmitExpenseRequest, submitterUserID string) (*domain.Expense, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("expense amount must be positive")
	}
	currencyCode := strings.ToUpper(req.CurrencyCode)
	if !domain.IsSupportedCurrency(currencyCode) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported currency code '%s'", currencyCode))
	}
	category := domain.ExpenseCategory(req.Category)
	if !category.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown expense category '%s'", req.Category))
	}

	now := s.now()
	return &domain.Expense{
		ExpenseID:    uuid.NewString(),
		UserID:       submitterUserID,
		Amount:       req.Amount,
		CurrencyCode: currencyCode,
		ExpenseDate:  req.ExpenseDate,
		Category:     category,
		Description:  req.Description,
		ReceiptRef:   req.ReceiptRef,
		Status:       domain.StatusPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     submitterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: submitterUserID,
		},
	}, nil
}

// decide sets the expense's status and notes. Fraud signals win outright;
// otherwise the category policy is evaluated, weekly limit before monthly.
// A category with no policy, and any unexpected evaluation error, leaves the
// expense pending for a manager to review.
func (s *expenseService) decide(ctx context.Context, expense *domain.Expense, fraud portssvc.FraudResult) {
	if fraud.IsFraud {
		expense.Status = domain.StatusFlagged
		expense.Notes = fraudNotePrefix + strings.Join(fraud.Reasons, ", ")
		return
	}

	policy, err := s.policySvc.GetPolicyByCategory(ctx, expense.Category)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			expense.Status = domain.StatusPending
			expense.Notes = ""
			return
		}
		s.LogError(ctx, err, "Policy lookup failed, leaving expense pending",
			slog.String("category", string(expense.Category)))
		expense.Status = domain.StatusPending
		expense.Notes = ""
		return
	}

	status, notes, err := s.evaluatePolicy(ctx, expense, policy)
	if err != nil {
		s.LogError(ctx, err, "Policy evaluation failed, leaving expense pending",
			slog.String("category", string(expense.Category)))
		expense.Status = domain.StatusPending
		expense.Notes = ""
		return
	}
	expense.Status = status
	expense.Notes = notes
}

// evaluatePolicy checks the expense against the weekly then the monthly limit.
// The projected total for each window is the sum of the user's already
// persisted spend in that window plus this expense's amount, converted into
// the policy's currency when they differ. A breached limit never
// auto-rejects: the expense is held pending with a note naming the exceeded
// limit, and only a manager may reject it.
func (s *expenseService) evaluatePolicy(ctx context.Context, expense *domain.Expense, policy *domain.ExpensePolicy) (domain.ExpenseStatus, string, error) {
	if policy.WeeklyLimit != nil {
		window := domain.WeekWindowOf(expense.ExpenseDate)
		total, err := s.projectedWindowTotal(ctx, expense, policy, window)
		if err != nil {
			return "", "", fmt.Errorf("failed to compute weekly spend: %w", err)
		}
		if total.GreaterThan(*policy.WeeklyLimit) {
			notes := fmt.Sprintf("Weekly total %s exceeds weekly limit of %s %s for %s",
				total.String(), policy.WeeklyLimit.String(), policy.CurrencyCode, expense.Category)
			return domain.StatusPending, notes, nil
		}
	}

	if policy.MonthlyLimit != nil {
		window := domain.MonthWindowOf(expense.ExpenseDate)
		total, err := s.projectedWindowTotal(ctx, expense, policy, window)
		if err != nil {
			return "", "", fmt.Errorf("failed to compute monthly spend: %w", err)
		}
		if total.GreaterThan(*policy.MonthlyLimit) {
			notes := fmt.Sprintf("Monthly total %s exceeds monthly limit of %s %s for %s",
				total.String(), policy.MonthlyLimit.String(), policy.CurrencyCode, expense.Category)
			return domain.StatusPending, notes, nil
		}
	}

	return domain.StatusApproved, "", nil
}

// projectedWindowTotal sums the user's persisted spend for the category and
// expense currency inside the window, then adds the candidate amount, all
// expressed in the policy's currency.
func (s *expenseService) projectedWindowTotal(ctx context.Context, expense *domain.Expense, policy *domain.ExpensePolicy, window domain.SpendWindow) (decimal.Decimal, error) {
	prior, err := s.expenseRepo.SumExpenseAmounts(ctx, expense.UserID, expense.Category, expense.CurrencyCode, window.Start, window.End)
	if err != nil {
		return decimal.Zero, err
	}
	total := prior.Add(expense.Amount)
	if expense.CurrencyCode != policy.CurrencyCode {
		total = s.converter.Convert(ctx, total, expense.CurrencyCode, policy.CurrencyCode)
	}
	return total, nil
}

// UpdateExpenseStatus applies a manager-initiated status transition. Any
// target status is accepted and the write is a single atomic update, so
// concurrent transitions resolve last-write-wins.
func (s *expenseService) UpdateExpenseStatus(ctx context.Context, expenseID string, req dto.UpdateExpenseStatusRequest, actorUserID string, actorRole domain.UserRole) (*domain.Expense, error) {
	if err := s.RequireManager(ctx, actorUserID, actorRole); err != nil {
		return nil, err
	}

	status := domain.ExpenseStatus(req.Status)
	if !status.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown expense status '%s'", req.Status))
	}

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense for status update: %w", err)
	}

	now := s.now()
	if err := s.expenseRepo.UpdateExpenseStatus(ctx, expenseID, status, req.Notes, actorUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to update expense status", slog.String("expenseID", expenseID))
		return nil, fmt.Errorf("failed to update expense status in service: %w", err)
	}

	s.LogInfo(ctx, "Expense status updated",
		slog.String("expenseID", expenseID),
		slog.String("from", string(expense.Status)),
		slog.String("to", string(status)),
		slog.String("actorUserID", actorUserID))

	expense.Status = status
	expense.Notes = req.Notes
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = actorUserID
	return expense, nil
}

// GetExpenseByID retrieves a single expense.
func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense by ID in service: %w", err)
	}
	return expense, nil
}

// ListExpenses retrieves expenses matching the filter, newest first.
func (s *expenseService) ListExpenses(ctx context.Context, filter portsrepo.ListExpensesFilter) ([]domain.Expense, error) {
	expenses, err := s.expenseRepo.ListExpenses(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses in service: %w", err)
	}
	return expenses, nil
}
