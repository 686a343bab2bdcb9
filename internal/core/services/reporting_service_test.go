package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/expense_approval_app/internal/apperrors"
	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approval_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approval_app/internal/core/ports/services"
	"github.com/SscSPs/expense_approval_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockReportingRepository
	mockConverter *MockConverterSvc
	service       portssvc.ReportingSvc
	from          time.Time
	to            time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.mockConverter = new(MockConverterSvc)
	suite.service = services.NewReportingService(suite.mockRepo, suite.mockConverter)
	suite.from = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
}

func (suite *ReportingServiceTestSuite) TestSpendSummary_AggregatesAndConverts() {
	ctx := context.Background()
	rows := []portsrepo.SpendRow{
		{Category: domain.CategoryFood, UserID: "u1", CurrencyCode: domain.CurrencyINR, Status: domain.StatusApproved, Total: decimal.NewFromInt(3000), Count: 4},
		{Category: domain.CategoryFood, UserID: "u2", CurrencyCode: domain.CurrencyUSD, Status: domain.StatusApproved, Total: decimal.NewFromInt(20), Count: 1},
		{Category: domain.CategoryTravelling, UserID: "u1", CurrencyCode: domain.CurrencyINR, Status: domain.StatusRejected, Total: decimal.NewFromInt(5000), Count: 2},
	}

	suite.mockRepo.On("GetSpendRows", ctx, suite.from, suite.to).Return(rows, nil).Once()
	suite.mockConverter.On("Convert", mock.Anything, decimal.NewFromInt(3000), domain.CurrencyINR, domain.CurrencyINR).
		Return(decimal.NewFromInt(3000)).Once()
	suite.mockConverter.On("Convert", mock.Anything, decimal.NewFromInt(20), domain.CurrencyUSD, domain.CurrencyINR).
		Return(decimal.NewFromInt(1663)).Once()
	suite.mockConverter.On("Convert", mock.Anything, decimal.NewFromInt(5000), domain.CurrencyINR, domain.CurrencyINR).
		Return(decimal.NewFromInt(5000)).Once()

	summary, err := suite.service.SpendSummary(ctx, suite.from, suite.to, domain.CurrencyINR)

	suite.Require().NoError(err)
	suite.Equal(domain.CurrencyINR, summary.TargetCurrency)
	suite.True(decimal.NewFromInt(9663).Equal(summary.GrandTotal), "got %s", summary.GrandTotal)

	suite.Require().Len(summary.ByCategory, 2)
	suite.Equal("Food", summary.ByCategory[0].Key)
	suite.True(decimal.NewFromInt(4663).Equal(summary.ByCategory[0].ConvertedTotal))
	suite.Equal(5, summary.ByCategory[0].Count)
	suite.Equal("Travelling", summary.ByCategory[1].Key)

	suite.Require().Len(summary.ByUser, 2)
	suite.Equal("u1", summary.ByUser[0].Key)
	suite.True(decimal.NewFromInt(8000).Equal(summary.ByUser[0].ConvertedTotal))

	suite.Require().Len(summary.ByCurrency, 2)
	suite.Equal(domain.CurrencyINR, summary.ByCurrency[0].Key)
	suite.True(decimal.NewFromInt(8000).Equal(summary.ByCurrency[0].Total))
	suite.Equal(domain.CurrencyUSD, summary.ByCurrency[1].Key)
	suite.True(decimal.NewFromInt(20).Equal(summary.ByCurrency[1].Total))

	suite.Equal(map[string]int{"approved": 5, "rejected": 2}, summary.ByStatus)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockConverter.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestSpendSummary_EmptyRange() {
	ctx := context.Background()

	suite.mockRepo.On("GetSpendRows", ctx, suite.from, suite.to).
		Return([]portsrepo.SpendRow{}, nil).Once()

	summary, err := suite.service.SpendSummary(ctx, suite.from, suite.to, domain.CurrencyINR)

	suite.Require().NoError(err)
	suite.Empty(summary.ByCategory)
	suite.Empty(summary.ByUser)
	suite.Empty(summary.ByCurrency)
	suite.True(summary.GrandTotal.IsZero())
}

func (suite *ReportingServiceTestSuite) TestSpendSummary_Validation() {
	ctx := context.Background()

	_, err := suite.service.SpendSummary(ctx, suite.from, suite.to, "JPY")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.SpendSummary(ctx, suite.to, suite.from, domain.CurrencyINR)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
