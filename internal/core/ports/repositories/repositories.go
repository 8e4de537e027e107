// Package repositories defines the persistence interfaces the services depend
// on. Implementations live under internal/repositories/database.
package repositories

// RepositoryProvider aggregates all repository implementations for injection
// into the service container.
type RepositoryProvider struct {
	UserRepo       UserRepository
	ExpenseRepo    ExpenseRepository
	DepartmentRepo DepartmentRepository
	CategoryRepo   CategoryRepository
	CurrencyRepo   CurrencyRepository
	AlertRepo      AlertRepository
	ReportingRepo  ReportingRepository
}
