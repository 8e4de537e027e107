package repositories

import (
	"context"

	"github.com/expensly/expensly_backend/internal/core/domain"
)

// DepartmentRepository defines persistence operations for departments.
type DepartmentRepository interface {
	SaveDepartment(ctx context.Context, department domain.Department) error
	FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error)
	FindDepartments(ctx context.Context, limit, offset int, sort string) ([]domain.Department, int64, error)
	UpdateDepartment(ctx context.Context, department domain.Department) error
}

// CategoryRepository defines persistence operations for expense categories.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	FindCategories(ctx context.Context, limit, offset int, sort string) ([]domain.Category, int64, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
}

// CurrencyRepository defines persistence operations for currencies.
type CurrencyRepository interface {
	SaveCurrency(ctx context.Context, currency domain.Currency) error
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)
	FindCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// AlertRepository defines persistence operations for budget alert rules.
type AlertRepository interface {
	SaveAlert(ctx context.Context, alert domain.Alert) error
	FindAlertByID(ctx context.Context, alertID string) (*domain.Alert, error)
	FindAlerts(ctx context.Context, limit, offset int, sort string) ([]domain.Alert, int64, error)
	FindActiveAlerts(ctx context.Context) ([]domain.Alert, error)
	UpdateAlert(ctx context.Context, alert domain.Alert) error
}
