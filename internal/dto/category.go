package dto

import (
	"time"

	"github.com/expensly/expensly_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest defines data for creating an expense category.
type CreateCategoryRequest struct {
	Name          string          `json:"name" binding:"required,max=100"`
	CurrencyCode  string          `json:"currencyCode" binding:"required,iso4217"`
	DailyBudget   decimal.Decimal `json:"dailyBudget"`
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
type UpdateCategoryRequest struct {
	Name          *string          `json:"name" binding:"omitempty,max=100"`
	CurrencyCode  *string          `json:"currencyCode" binding:"omitempty,iso4217"`
	DailyBudget   *decimal.Decimal `json:"dailyBudget"`
	MonthlyBudget *decimal.Decimal `json:"monthlyBudget"`
	IsActive      *bool            `json:"isActive"`
}

// CategoryResponse defines the category fields exposed over the API.
type CategoryResponse struct {
	CategoryID    string          `json:"categoryID"`
	Name          string          `json:"name"`
	CurrencyCode  string          `json:"currencyCode"`
	DailyBudget   decimal.Decimal `json:"dailyBudget"`
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToCategoryResponse converts a domain.Category to its API representation.
func ToCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:    cat.CategoryID,
		Name:          cat.Name,
		CurrencyCode:  cat.CurrencyCode,
		DailyBudget:   cat.DailyBudget,
		MonthlyBudget: cat.MonthlyBudget,
		IsActive:      cat.IsActive,
		CreatedAt:     cat.CreatedAt,
	}
}

// ToCategoryPage converts categories plus a total into the page envelope.
func ToCategoryPage(categories []domain.Category, params PageParams, total int64) Page[CategoryResponse] {
	content := make([]CategoryResponse, len(categories))
	for i := range categories {
		content[i] = ToCategoryResponse(&categories[i])
	}
	return NewPage(content, params, total)
}
