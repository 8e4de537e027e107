package domain

import "github.com/shopspring/decimal"

// Category represents an expense category with its own budget ceilings.
type Category struct {
	CategoryID    string          `json:"categoryID"` // Primary Key (UUID)
	Name          string          `json:"name"`
	CurrencyCode  string          `json:"currencyCode"`
	DailyBudget   decimal.Decimal `json:"dailyBudget"`   // Non-negative
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"` // Non-negative
	IsActive      bool            `json:"isActive"`
	AuditFields
}
