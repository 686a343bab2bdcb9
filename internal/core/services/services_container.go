package services

import (
	portsrepo "github.com/SscSPs/expense_approval_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approval_app/internal/core/ports/services"
)

// NewServiceContainer wires every service with its repository dependencies
// and returns the container consumed by the handlers.
func NewServiceContainer(repos portsrepo.RepositoryProvider, rateSource portsrepo.DailyRateSource) *portssvc.ServiceContainer {
	currencySvc := NewCurrencyService(repos.CurrencyRepo)
	exchangeRateSvc := NewExchangeRateService(repos.ExchangeRateRepo, currencySvc, rateSource)
	policySvc := NewPolicyService(repos.PolicyRepo)
	fraudSvc := NewFraudService()
	expenseSvc := NewExpenseService(repos.ExpenseRepo, policySvc, fraudSvc, exchangeRateSvc)
	userSvc := NewUserService(repos.UserRepo)
	reportingSvc := NewReportingService(repos.ReportingRepo, exchangeRateSvc)

	return &portssvc.ServiceContainer{
		Expense:      expenseSvc,
		Policy:       policySvc,
		Currency:     currencySvc,
		ExchangeRate: exchangeRateSvc,
		Converter:    exchangeRateSvc,
		User:         userSvc,
		Reporting:    reportingSvc,
	}
}
