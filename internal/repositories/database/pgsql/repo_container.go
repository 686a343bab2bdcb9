package pgsql

import (
	portsrepo "github.com/SscSPs/expense_approval_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ExpenseRepo:      newPgxExpenseRepository(dbPool),
		PolicyRepo:       newPgxPolicyRepository(dbPool),
		CurrencyRepo:     newPgxCurrencyRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
		ReportingRepo:    newPgxReportingRepository(dbPool),
	}
}
