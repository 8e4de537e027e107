package pgsql

import (
	portsrepo "github.com/expensly/expensly_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds the full set of postgres-backed repositories
// sharing one connection pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		UserRepo:       newPgxUserRepository(dbPool),
		ExpenseRepo:    newPgxExpenseRepository(dbPool),
		DepartmentRepo: newPgxDepartmentRepository(dbPool),
		CategoryRepo:   newPgxCategoryRepository(dbPool),
		CurrencyRepo:   newPgxCurrencyRepository(dbPool),
		AlertRepo:      newPgxAlertRepository(dbPool),
		ReportingRepo:  newReportingRepository(dbPool),
	}
}
