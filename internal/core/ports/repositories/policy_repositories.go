package repositories

import (
	"context"

	"github.com/SscSPs/expense_approval_app/internal/core/domain"
)

// PolicyReader defines read operations for expense policy data
type PolicyReader interface {
	// FindPolicyByCategory retrieves the policy configured for a category.
	// Returns apperrors.ErrNotFound when the category has no policy.
	FindPolicyByCategory(ctx context.Context, category domain.ExpenseCategory) (*domain.ExpensePolicy, error)

	// ListPolicies retrieves all configured policies.
	ListPolicies(ctx context.Context) ([]domain.ExpensePolicy, error)
}

// PolicyWriter defines write operations for expense policy data
type PolicyWriter interface {
	// SavePolicy inserts or updates the policy for its category. At most one
	// policy exists per category.
	SavePolicy(ctx context.Context, policy domain.ExpensePolicy) error
}

// PolicyRepositoryFacade combines all policy-related repository interfaces
type PolicyRepositoryFacade interface {
	PolicyReader
	PolicyWriter
}
