package services

import (
	"context"

	"github.com/expensly/expensly_backend/internal/core/domain"
	"github.com/expensly/expensly_backend/internal/dto"
)

// DepartmentSvcFacade defines operations for managing departments.
type DepartmentSvcFacade interface {
	CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest, creatorUserID string) (*domain.Department, error)
	GetDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error)
	ListDepartments(ctx context.Context, params dto.PageParams) ([]domain.Department, int64, error)
	UpdateDepartment(ctx context.Context, departmentID string, req dto.UpdateDepartmentRequest, requestingUserID string) (*domain.Department, error)
}

// CategorySvcFacade defines operations for managing expense categories.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, params dto.PageParams) ([]domain.Category, int64, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, requestingUserID string) (*domain.Category, error)
}

// CurrencySvcFacade defines operations for managing currencies.
type CurrencySvcFacade interface {
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// AlertSvcFacade defines operations for managing and evaluating budget alerts.
type AlertSvcFacade interface {
	CreateAlert(ctx context.Context, req dto.CreateAlertRequest, creatorUserID string) (*domain.Alert, error)
	GetAlertByID(ctx context.Context, alertID string) (*domain.Alert, error)
	ListAlerts(ctx context.Context, params dto.PageParams) ([]domain.Alert, int64, error)
	UpdateAlert(ctx context.Context, alertID string, req dto.UpdateAlertRequest, requestingUserID string) (*domain.Alert, error)

	// EvaluateTriggeredAlerts evaluates every active alert against the current
	// approved spend of its window and returns the ones at or over threshold.
	EvaluateTriggeredAlerts(ctx context.Context) ([]domain.TriggeredAlert, error)
}
