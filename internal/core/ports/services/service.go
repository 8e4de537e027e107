// Package services defines the service interfaces the handlers depend on.
// Implementations live in internal/core/services.
package services

// ServiceContainer holds instances of all the application services. This is
// the main entry point for accessing service functionality and is what gets
// injected into the handlers.
type ServiceContainer struct {
	User       UserSvcFacade
	Expense    ExpenseSvcFacade
	Department DepartmentSvcFacade
	Category   CategorySvcFacade
	Currency   CurrencySvcFacade
	Alert      AlertSvcFacade
	Reporting  ReportingSvcFacade
	Token      TokenSvcFacade
	GoogleAuth GoogleOAuthSvcFacade
}
