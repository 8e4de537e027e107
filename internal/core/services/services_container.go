package services

import (
	portsrepo "github.com/expensly/expensly_backend/internal/core/ports/repositories"
	portssvc "github.com/expensly/expensly_backend/internal/core/ports/services"
	"github.com/expensly/expensly_backend/internal/platform/config"
)

// NewServiceContainer wires every service implementation to its repositories
// and returns the container the handlers consume.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:       NewUserService(repos.UserRepo, repos.DepartmentRepo),
		Expense:    NewExpenseService(repos.ExpenseRepo, repos.UserRepo, repos.CategoryRepo, repos.CurrencyRepo),
		Department: NewDepartmentService(repos.DepartmentRepo, repos.CurrencyRepo),
		Category:   NewCategoryService(repos.CategoryRepo, repos.CurrencyRepo),
		Currency:   NewCurrencyService(repos.CurrencyRepo),
		Alert:      NewAlertService(repos.AlertRepo, repos.CategoryRepo, repos.DepartmentRepo, repos.ReportingRepo),
		Reporting:  NewReportingService(repos.ReportingRepo),
		Token:      NewTokenService(cfg, repos.UserRepo),
		GoogleAuth: NewGoogleOAuthService(cfg),
	}
}
