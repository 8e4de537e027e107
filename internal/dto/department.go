package dto

import (
	"time"

	"github.com/expensly/expensly_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDepartmentRequest defines data for creating a department.
type CreateDepartmentRequest struct {
	Name          string          `json:"name" binding:"required,max=100"`
	CurrencyCode  string          `json:"currencyCode" binding:"required,iso4217"`
	DailyBudget   decimal.Decimal `json:"dailyBudget"`
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
}

// UpdateDepartmentRequest defines the data allowed for updating a department.
type UpdateDepartmentRequest struct {
	Name          *string          `json:"name" binding:"omitempty,max=100"`
	CurrencyCode  *string          `json:"currencyCode" binding:"omitempty,iso4217"`
	DailyBudget   *decimal.Decimal `json:"dailyBudget"`
	MonthlyBudget *decimal.Decimal `json:"monthlyBudget"`
	IsActive      *bool            `json:"isActive"`
}

// DepartmentResponse defines the department fields exposed over the API.
type DepartmentResponse struct {
	DepartmentID  string          `json:"departmentID"`
	Name          string          `json:"name"`
	CurrencyCode  string          `json:"currencyCode"`
	DailyBudget   decimal.Decimal `json:"dailyBudget"`
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToDepartmentResponse converts a domain.Department to its API representation.
func ToDepartmentResponse(d *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		DepartmentID:  d.DepartmentID,
		Name:          d.Name,
		CurrencyCode:  d.CurrencyCode,
		DailyBudget:   d.DailyBudget,
		MonthlyBudget: d.MonthlyBudget,
		IsActive:      d.IsActive,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDepartmentPage converts departments plus a total into the page envelope.
func ToDepartmentPage(departments []domain.Department, params PageParams, total int64) Page[DepartmentResponse] {
	content := make([]DepartmentResponse, len(departments))
	for i := range departments {
		content[i] = ToDepartmentResponse(&departments[i])
	}
	return NewPage(content, params, total)
}
