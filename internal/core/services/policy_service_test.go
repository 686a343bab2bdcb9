package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/expense_approval_app/internal/apperrors"
	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_approval_app/internal/core/ports/services"
	"github.com/SscSPs/expense_approval_app/internal/core/services"
	"github.com/SscSPs/expense_approval_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PolicyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPolicyRepository
	service  portssvc.PolicySvcFacade
}

func (suite *PolicyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPolicyRepository)
	suite.service = services.NewPolicyService(suite.mockRepo)
}

func (suite *PolicyServiceTestSuite) TestUpsertPolicy_CreatesNewPolicy() {
	ctx := context.Background()
	managerID := uuid.NewString()
	weekly := decimal.NewFromInt(3000)
	req := dto.UpsertPolicyRequest{
		WeeklyLimit:  &weekly,
		CurrencyCode: domain.CurrencyINR,
		Description:  "Raised for conference season",
	}

	suite.mockRepo.On("FindPolicyByCategory", ctx, domain.CategoryTravelling).
		Return(nil, apperrors.NewNotFoundError("no policy")).Once()
	suite.mockRepo.On("SavePolicy", ctx, mock.MatchedBy(func(p domain.ExpensePolicy) bool {
		return p.Category == domain.CategoryTravelling &&
			p.WeeklyLimit != nil && p.WeeklyLimit.Equal(weekly) &&
			p.MonthlyLimit == nil &&
			p.CreatedBy == managerID
	})).Return(nil).Once()

	policy, err := suite.service.UpsertPolicy(ctx, domain.CategoryTravelling, req, managerID, domain.RoleManager)

	suite.Require().NoError(err)
	suite.Require().NotNil(policy)
	suite.Equal(domain.CategoryTravelling, policy.Category)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PolicyServiceTestSuite) TestUpsertPolicy_PreservesPolicyIDOnUpdate() {
	ctx := context.Background()
	managerID := uuid.NewString()
	existingID := uuid.NewString()
	weekly := decimal.NewFromInt(3000)
	req := dto.UpsertPolicyRequest{
		WeeklyLimit:  &weekly,
		CurrencyCode: domain.CurrencyINR,
	}

	existing := &domain.ExpensePolicy{
		PolicyID:     existingID,
		Category:     domain.CategoryTravelling,
		CurrencyCode: domain.CurrencyINR,
	}

	suite.mockRepo.On("FindPolicyByCategory", ctx, domain.CategoryTravelling).
		Return(existing, nil).Once()
	suite.mockRepo.On("SavePolicy", ctx, mock.MatchedBy(func(p domain.ExpensePolicy) bool {
		return p.PolicyID == existingID
	})).Return(nil).Once()

	policy, err := suite.service.UpsertPolicy(ctx, domain.CategoryTravelling, req, managerID, domain.RoleManager)

	suite.Require().NoError(err)
	suite.Equal(existingID, policy.PolicyID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PolicyServiceTestSuite) TestUpsertPolicy_EmployeeForbidden() {
	ctx := context.Background()
	req := dto.UpsertPolicyRequest{CurrencyCode: domain.CurrencyINR}

	policy, err := suite.service.UpsertPolicy(ctx, domain.CategoryFood, req, uuid.NewString(), domain.RoleEmployee)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(policy)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePolicy", mock.Anything, mock.Anything)
}

func (suite *PolicyServiceTestSuite) TestUpsertPolicy_Validation() {
	ctx := context.Background()
	managerID := uuid.NewString()
	negative := decimal.NewFromInt(-10)

	tests := []struct {
		name     string
		category domain.ExpenseCategory
		req      dto.UpsertPolicyRequest
	}{
		{
			name:     "unknown category",
			category: "Gadgets",
			req:      dto.UpsertPolicyRequest{CurrencyCode: domain.CurrencyINR},
		},
		{
			name:     "unsupported currency",
			category: domain.CategoryFood,
			req:      dto.UpsertPolicyRequest{CurrencyCode: "JPY"},
		},
		{
			name:     "negative limit",
			category: domain.CategoryFood,
			req:      dto.UpsertPolicyRequest{CurrencyCode: domain.CurrencyINR, WeeklyLimit: &negative},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			policy, err := suite.service.UpsertPolicy(ctx, tt.category, tt.req, managerID, domain.RoleManager)

			suite.Require().Error(err)
			suite.ErrorIs(err, apperrors.ErrValidation)
			suite.Nil(policy)
		})
	}
}

func (suite *PolicyServiceTestSuite) TestSeedDefaultPolicies_SeedsMissingCategories() {
	ctx := context.Background()

	// Travelling already configured; the other five get seeded.
	suite.mockRepo.On("FindPolicyByCategory", ctx, domain.CategoryTravelling).
		Return(&domain.ExpensePolicy{Category: domain.CategoryTravelling}, nil).Once()
	for _, category := range []domain.ExpenseCategory{
		domain.CategoryFood,
		domain.CategoryAccommodation,
		domain.CategoryOfficeSupplies,
		domain.CategoryEntertainment,
		domain.CategoryMiscellaneous,
	} {
		suite.mockRepo.On("FindPolicyByCategory", ctx, category).
			Return(nil, apperrors.NewNotFoundError("no policy")).Once()
	}
	suite.mockRepo.On("SavePolicy", ctx, mock.MatchedBy(func(p domain.ExpensePolicy) bool {
		return p.Category != domain.CategoryTravelling &&
			p.CurrencyCode == domain.ReferenceCurrency &&
			p.CreatedBy == "system"
	})).Return(nil).Times(5)

	err := suite.service.SeedDefaultPolicies(ctx)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PolicyServiceTestSuite) TestGetPolicyByCategory_NotFoundPassesThrough() {
	ctx := context.Background()

	suite.mockRepo.On("FindPolicyByCategory", ctx, domain.CategoryFood).
		Return(nil, apperrors.NewNotFoundError("no policy")).Once()

	policy, err := suite.service.GetPolicyByCategory(ctx, domain.CategoryFood)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(policy)
}

func TestPolicyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PolicyServiceTestSuite))
}
