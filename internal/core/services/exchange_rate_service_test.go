package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/expense_approval_app/internal/apperrors"
	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	"github.com/SscSPs/expense_approval_app/internal/core/services"
	"github.com/SscSPs/expense_approval_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CurrencyReaderSvc ---
type MockCurrencyReaderSvc struct {
	mock.Mock
}

func (m *MockCurrencyReaderSvc) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyReaderSvc) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockExchangeRateRepository
	mockCurrencySvc *MockCurrencyReaderSvc
	mockSource      *MockDailyRateSource
	service         *services.ExchangeRateService
	now             time.Time
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockExchangeRateRepository)
	suite.mockCurrencySvc = new(MockCurrencyReaderSvc)
	suite.mockSource = new(MockDailyRateSource)
	suite.now = time.Date(2025, time.June, 18, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewExchangeRateService(
		suite.mockRepo,
		suite.mockCurrencySvc,
		suite.mockSource,
		services.WithRateClock(func() time.Time { return suite.now }),
	)
}

// --- Test Cases ---

func (suite *ExchangeRateServiceTestSuite) TestConvert_IdentityIsExact() {
	ctx := context.Background()
	amount := decimal.RequireFromString("123.456789")

	got := suite.service.Convert(ctx, amount, domain.CurrencyUSD, domain.CurrencyUSD)

	suite.True(amount.Equal(got))
	suite.mockRepo.AssertNotCalled(suite.T(), "FindExchangeRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockSource.AssertNotCalled(suite.T(), "FetchDailyRates", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_UnsupportedCurrencyReturnsUnchanged() {
	ctx := context.Background()
	amount := decimal.NewFromInt(100)

	got := suite.service.Convert(ctx, amount, "JPY", domain.CurrencyINR)

	suite.True(amount.Equal(got))
	suite.mockRepo.AssertNotCalled(suite.T(), "FindExchangeRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_UsesTodaysStoredRate() {
	ctx := context.Background()
	stored := &domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: domain.CurrencyUSD,
		ToCurrencyCode:   domain.CurrencyINR,
		Rate:             decimal.RequireFromString("83.16"),
		DateEffective:    suite.now,
	}

	suite.mockRepo.On("FindExchangeRate", ctx, domain.CurrencyUSD, domain.CurrencyINR, suite.now).
		Return(stored, nil).Once()

	got := suite.service.Convert(ctx, decimal.NewFromInt(100), domain.CurrencyUSD, domain.CurrencyINR)

	suite.True(decimal.RequireFromString("8316").Equal(got), "got %s", got)
	suite.mockSource.AssertNotCalled(suite.T(), "FetchDailyRates", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_SecondLookupHitsCache() {
	ctx := context.Background()
	stored := &domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: domain.CurrencyUSD,
		ToCurrencyCode:   domain.CurrencyINR,
		Rate:             decimal.RequireFromString("83.16"),
		DateEffective:    suite.now,
	}

	suite.mockRepo.On("FindExchangeRate", ctx, domain.CurrencyUSD, domain.CurrencyINR, suite.now).
		Return(stored, nil).Once()

	first := suite.service.Convert(ctx, decimal.NewFromInt(100), domain.CurrencyUSD, domain.CurrencyINR)
	second := suite.service.Convert(ctx, decimal.NewFromInt(100), domain.CurrencyUSD, domain.CurrencyINR)

	suite.True(first.Equal(second))
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "FindExchangeRate", 1)
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_StaleRateTriggersRefresh() {
	ctx := context.Background()
	yesterday := suite.now.AddDate(0, 0, -1)
	stale := &domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: domain.CurrencyINR,
		ToCurrencyCode:   domain.CurrencyUSD,
		Rate:             decimal.RequireFromString("0.0119"),
		DateEffective:    yesterday,
	}

	suite.mockRepo.On("FindExchangeRate", ctx, domain.CurrencyINR, domain.CurrencyUSD, suite.now).
		Return(stale, nil).Once()
	suite.mockSource.On("FetchDailyRates", ctx, domain.CurrencyINR).
		Return(map[string]decimal.Decimal{
			domain.CurrencyUSD: decimal.RequireFromString("0.012"),
			domain.CurrencyEUR: decimal.RequireFromString("0.011"),
			domain.CurrencyGBP: decimal.RequireFromString("0.0094"),
		}, nil).Once()
	suite.mockRepo.On("SaveExchangeRates", ctx, mock.MatchedBy(func(rates []domain.ExchangeRate) bool {
		if len(rates) != 3 {
			return false
		}
		for _, r := range rates {
			if r.FromCurrencyCode != domain.CurrencyINR {
				return false
			}
		}
		return true
	})).Return(nil).Once()

	got := suite.service.Convert(ctx, decimal.NewFromInt(1000), domain.CurrencyINR, domain.CurrencyUSD)

	suite.True(decimal.NewFromInt(12).Equal(got), "got %s", got)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockSource.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_BridgesThroughReferenceCurrency() {
	ctx := context.Background()

	suite.mockRepo.On("FindExchangeRate", ctx, domain.CurrencyUSD, domain.CurrencyEUR, suite.now).
		Return(nil, apperrors.NewNotFoundError("no rate")).Once()
	suite.mockSource.On("FetchDailyRates", ctx, domain.CurrencyINR).
		Return(map[string]decimal.Decimal{
			domain.CurrencyUSD: decimal.RequireFromString("0.012"),
			domain.CurrencyEUR: decimal.RequireFromString("0.011"),
			domain.CurrencyGBP: decimal.RequireFromString("0.0094"),
		}, nil).Once()
	suite.mockRepo.On("SaveExchangeRates", ctx, mock.Anything).Return(nil).Once()

	got := suite.service.Convert(ctx, decimal.NewFromInt(120), domain.CurrencyUSD, domain.CurrencyEUR)

	// 120 USD * (0.011 / 0.012) = 110 EUR, modulo division precision.
	suite.True(decimal.NewFromInt(110).Equal(got.Round(8)), "got %s", got)
	suite.mockSource.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_FallsBackToFixedRatesWhenSourceDown() {
	ctx := context.Background()

	suite.mockRepo.On("FindExchangeRate", ctx, domain.CurrencyINR, domain.CurrencyUSD, suite.now).
		Return(nil, apperrors.NewNotFoundError("no rate")).Once()
	suite.mockSource.On("FetchDailyRates", ctx, domain.CurrencyINR).
		Return(nil, errors.New("provider unreachable")).Times(3)

	got := suite.service.Convert(ctx, decimal.NewFromInt(1000), domain.CurrencyINR, domain.CurrencyUSD)

	// Fixed fallback table: 1 INR = 0.012 USD.
	suite.True(decimal.NewFromInt(12).Equal(got), "got %s", got)
	suite.mockSource.AssertExpectations(suite.T())
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveExchangeRates", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_Success() {
	ctx := context.Background()
	managerID := uuid.NewString()
	req := dto.CreateExchangeRateRequest{
		FromCurrencyCode: domain.CurrencyUSD,
		ToCurrencyCode:   domain.CurrencyINR,
		Rate:             decimal.RequireFromString("83.16"),
		DateEffective:    suite.now,
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, domain.CurrencyUSD).
		Return(&domain.Currency{CurrencyCode: domain.CurrencyUSD}, nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, domain.CurrencyINR).
		Return(&domain.Currency{CurrencyCode: domain.CurrencyINR}, nil).Once()
	suite.mockRepo.On("SaveExchangeRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.FromCurrencyCode == domain.CurrencyUSD && r.ToCurrencyCode == domain.CurrencyINR && r.CreatedBy == managerID
	})).Return(nil).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, req, managerID, domain.RoleManager)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.True(req.Rate.Equal(rate.Rate))

	// The created rate seeds the cache for its effective day.
	got := suite.service.Convert(ctx, decimal.NewFromInt(100), domain.CurrencyUSD, domain.CurrencyINR)
	suite.True(decimal.RequireFromString("8316").Equal(got), "got %s", got)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_EmployeeForbidden() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		FromCurrencyCode: domain.CurrencyUSD,
		ToCurrencyCode:   domain.CurrencyINR,
		Rate:             decimal.RequireFromString("83.16"),
		DateEffective:    suite.now,
	}

	rate, err := suite.service.CreateExchangeRate(ctx, req, uuid.NewString(), domain.RoleEmployee)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(rate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveExchangeRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_Validation() {
	ctx := context.Background()
	managerID := uuid.NewString()

	tests := []struct {
		name   string
		mutate func(*dto.CreateExchangeRateRequest)
	}{
		{"non-positive rate", func(r *dto.CreateExchangeRateRequest) { r.Rate = decimal.Zero }},
		{"same currency pair", func(r *dto.CreateExchangeRateRequest) { r.ToCurrencyCode = r.FromCurrencyCode }},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			req := dto.CreateExchangeRateRequest{
				FromCurrencyCode: domain.CurrencyUSD,
				ToCurrencyCode:   domain.CurrencyINR,
				Rate:             decimal.RequireFromString("83.16"),
				DateEffective:    suite.now,
			}
			tt.mutate(&req)

			rate, err := suite.service.CreateExchangeRate(ctx, req, managerID, domain.RoleManager)

			suite.Require().Error(err)
			suite.ErrorIs(err, apperrors.ErrValidation)
			suite.Nil(rate)
		})
	}
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
