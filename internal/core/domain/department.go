package domain

import "github.com/shopspring/decimal"

// Department represents an organizational unit with its own budget ceilings.
type Department struct {
	DepartmentID  string          `json:"departmentID"` // Primary Key (UUID)
	Name          string          `json:"name"`
	CurrencyCode  string          `json:"currencyCode"`
	DailyBudget   decimal.Decimal `json:"dailyBudget"`   // Non-negative
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"` // Non-negative
	IsActive      bool            `json:"isActive"`
	AuditFields
}
