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

// defaultPolicyLimits holds the seeded per-category limits, denominated in
// the reference currency. A nil entry leaves that window unconstrained.
type defaultPolicyLimits struct {
	weekly  *decimal.Decimal
	monthly *decimal.Decimal
}

func decimalPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

var defaultPolicies = map[domain.ExpenseCategory]defaultPolicyLimits{
	domain.CategoryTravelling:     {weekly: decimalPtr(2500), monthly: decimalPtr(10000)},
	domain.CategoryFood:           {weekly: decimalPtr(1500), monthly: decimalPtr(6000)},
	domain.CategoryAccommodation:  {weekly: decimalPtr(5000), monthly: decimalPtr(15000)},
	domain.CategoryOfficeSupplies: {weekly: decimalPtr(1000), monthly: decimalPtr(4000)},
	domain.CategoryEntertainment:  {weekly: decimalPtr(1000), monthly: decimalPtr(3000)},
	domain.CategoryMiscellaneous:  {weekly: decimalPtr(750), monthly: decimalPtr(2500)},
}

// policyService provides business logic for expense policies.
type policyService struct {
	BaseService
	policyRepo portsrepo.PolicyRepositoryFacade
	now        func() time.Time
}

// PolicyServiceOption is a functional option for configuring the policy service
type PolicyServiceOption func(*policyService)

// WithPolicyClock overrides the clock used for audit timestamps.
func WithPolicyClock(now func() time.Time) PolicyServiceOption {
	return func(s *policyService) {
		s.now = now
	}
}

// NewPolicyService creates a new policy service.
func NewPolicyService(policyRepo portsrepo.PolicyRepositoryFacade, options ...PolicyServiceOption) portssvc.PolicySvcFacade {
	svc := &policyService{
		policyRepo: policyRepo,
		now:        time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure policyService implements the service interface
var _ portssvc.PolicySvcFacade = (*policyService)(nil)

// GetPolicyByCategory retrieves the policy configured for a category.
func (s *policyService) GetPolicyByCategory(ctx context.Context, category domain.ExpenseCategory) (*domain.ExpensePolicy, error) {
	policy, err := s.policyRepo.FindPolicyByCategory(ctx, category)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get policy by category in service: %w", err)
	}
	return policy, nil
}

// ListPolicies retrieves all configured policies.
func (s *policyService) ListPolicies(ctx context.Context) ([]domain.ExpensePolicy, error) {
	policies, err := s.policyRepo.ListPolicies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies in service: %w", err)
	}
	return policies, nil
}

// UpsertPolicy creates or replaces the policy for a category. Only managers
// may edit policies. The PolicyID is preserved on update so references stay
// stable.
func (s *policyService) UpsertPolicy(ctx context.Context, category domain.ExpenseCategory, req dto.UpsertPolicyRequest, actorUserID string, actorRole domain.UserRole) (*domain.ExpensePolicy, error) {
	if err := s.RequireManager(ctx, actorUserID, actorRole); err != nil {
		return nil, err
	}

	if !category.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown expense category '%s'", category))
	}
	currencyCode := strings.ToUpper(req.CurrencyCode)
	if !domain.IsSupportedCurrency(currencyCode) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported currency code '%s'", currencyCode))
	}
	for name, limit := range map[string]*decimal.Decimal{
		"maxPerTransaction": req.MaxPerTransaction,
		"dailyLimit":        req.DailyLimit,
		"weeklyLimit":       req.WeeklyLimit,
		"monthlyLimit":      req.MonthlyLimit,
	} {
		if limit != nil && limit.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("%s must be positive when set", name))
		}
	}

	now := s.now()
	policy := domain.ExpensePolicy{
		PolicyID:          uuid.NewString(),
		Category:          category,
		MaxPerTransaction: req.MaxPerTransaction,
		DailyLimit:        req.DailyLimit,
		WeeklyLimit:       req.WeeklyLimit,
		MonthlyLimit:      req.MonthlyLimit,
		Description:       req.Description,
		CurrencyCode:      currencyCode,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	existing, err := s.policyRepo.FindPolicyByCategory(ctx, category)
	if err == nil {
		policy.PolicyID = existing.PolicyID
		policy.CreatedAt = existing.CreatedAt
		policy.CreatedBy = existing.CreatedBy
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing policy in service: %w", err)
	}

	if err := s.policyRepo.SavePolicy(ctx, policy); err != nil {
		s.LogError(ctx, err, "Failed to save policy", slog.String("category", string(category)))
		return nil, fmt.Errorf("failed to save policy in service: %w", err)
	}

	s.LogInfo(ctx, "Policy upserted",
		slog.String("category", string(category)),
		slog.String("actorUserID", actorUserID))

	return &policy, nil
}

// SeedDefaultPolicies installs the default policy for every category that
// does not yet have one. Existing policies are never touched, so edits
// survive restarts.
func (s *policyService) SeedDefaultPolicies(ctx context.Context) error {
	now := s.now()
	for _, category := range domain.Categories() {
		_, err := s.policyRepo.FindPolicyByCategory(ctx, category)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check policy for category '%s': %w", category, err)
		}

		limits := defaultPolicies[category]
		policy := domain.ExpensePolicy{
			PolicyID:     uuid.NewString(),
			Category:     category,
			WeeklyLimit:  limits.weekly,
			MonthlyLimit: limits.monthly,
			Description:  fmt.Sprintf("Default policy for %s", category),
			CurrencyCode: domain.ReferenceCurrency,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     "system",
				LastUpdatedAt: now,
				LastUpdatedBy: "system",
			},
		}
		if err := s.policyRepo.SavePolicy(ctx, policy); err != nil {
			return fmt.Errorf("failed to seed policy for category '%s': %w", category, err)
		}
		s.LogInfo(ctx, "Seeded default policy", slog.String("category", string(category)))
	}
	return nil
}
