package services

import (
	"context"

	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	"github.com/SscSPs/expense_approval_app/internal/dto"
)

// PolicyReaderSvc defines read operations for expense policies
type PolicyReaderSvc interface {
	// GetPolicyByCategory retrieves the policy for a category.
	GetPolicyByCategory(ctx context.Context, category domain.ExpenseCategory) (*domain.ExpensePolicy, error)

	// ListPolicies retrieves all configured policies.
	ListPolicies(ctx context.Context) ([]domain.ExpensePolicy, error)
}

// PolicyWriterSvc defines write operations for expense policies
type PolicyWriterSvc interface {
	// UpsertPolicy creates or replaces the policy for a category.
	// Only managers may edit policies.
	UpsertPolicy(ctx context.Context, category domain.ExpenseCategory, req dto.UpsertPolicyRequest, actorUserID string, actorRole domain.UserRole) (*domain.ExpensePolicy, error)

	// SeedDefaultPolicies installs the six default category policies if the
	// policy table is empty. Called once at startup.
	SeedDefaultPolicies(ctx context.Context) error
}

// PolicySvcFacade combines all policy-related service interfaces
type PolicySvcFacade interface {
	PolicyReaderSvc
	PolicyWriterSvc
}
