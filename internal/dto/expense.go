package dto

import (
	"time"

	"github.com/expensly/expensly_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines data for submitting a new expense.
type CreateExpenseRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,iso4217"`
	CategoryID   string          `json:"categoryID" binding:"required,uuid"`
	ExpenseDate  time.Time       `json:"expenseDate" binding:"required,notinfuture"`
	Description  string          `json:"description" binding:"required,max=500"`
	ReceiptURL   *string         `json:"receiptURL" binding:"omitempty,url,max=1000"`
}

// UpdateExpenseRequest defines the fields an owner may change while the
// expense is editable. Pointers differentiate omitted fields from zero values.
type UpdateExpenseRequest struct {
	Amount       *decimal.Decimal `json:"amount"`
	CurrencyCode *string          `json:"currencyCode" binding:"omitempty,iso4217"`
	CategoryID   *string          `json:"categoryID" binding:"omitempty,uuid"`
	ExpenseDate  *time.Time       `json:"expenseDate" binding:"omitempty,notinfuture"`
	Description  *string          `json:"description" binding:"omitempty,max=500"`
	ReceiptURL   *string          `json:"receiptURL" binding:"omitempty,url,max=1000"`
}

// ReviewExpenseRequest carries an optional note for approve/reject/revision actions.
type ReviewExpenseRequest struct {
	Note string `json:"note" binding:"omitempty,max=500"`
}

// ListExpensesParams defines the query parameters of the expense list endpoint.
type ListExpensesParams struct {
	PageParams
	Status     string `form:"status" binding:"omitempty,oneof=PENDING APPROVED_BY_MANAGER APPROVED_BY_FINANCE REJECTED REQUIRES_REVISION"`
	CategoryID string `form:"categoryID" binding:"omitempty,uuid"`
	OwnerID    string `form:"ownerID" binding:"omitempty,uuid"`
	DateFrom   string `form:"dateFrom" binding:"omitempty,datetime=2006-01-02"`
	DateTo     string `form:"dateTo" binding:"omitempty,datetime=2006-01-02"`
}

// ExpenseResponse defines the expense fields exposed over the API, including
// the actions the requesting user may perform on it in its current state. The
// client uses AllowedActions to decide which controls to render; the server
// re-checks on every action regardless.
type ExpenseResponse struct {
	ExpenseID      string                 `json:"expenseID"`
	OwnerUserID    string                 `json:"ownerUserID"`
	CategoryID     string                 `json:"categoryID"`
	Amount         decimal.Decimal        `json:"amount"`
	CurrencyCode   string                 `json:"currencyCode"`
	ExpenseDate    time.Time              `json:"expenseDate"`
	Description    string                 `json:"description"`
	ReceiptURL     *string                `json:"receiptURL,omitempty"`
	Status         domain.ExpenseStatus   `json:"status"`
	ReviewNote     *string                `json:"reviewNote,omitempty"`
	ProcessedAt    *time.Time             `json:"processedAt,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	LastUpdatedAt  time.Time              `json:"lastUpdatedAt"`
	AllowedActions []domain.ExpenseAction `json:"allowedActions"`
	CanEdit        bool                   `json:"canEdit"`
	CanDelete      bool                   `json:"canDelete"`
}

// ToExpenseResponse converts a domain.Expense, computing what the requesting
// user may do with it.
func ToExpenseResponse(e *domain.Expense, requesterID string, requesterRole domain.UserRole) ExpenseResponse {
	actions := []domain.ExpenseAction{}
	for _, a := range []domain.ExpenseAction{domain.ActionApprove, domain.ActionReject, domain.ActionRequestRevision} {
		if domain.CanTransition(e.Status, requesterRole, a) {
			actions = append(actions, a)
		}
	}
	return ExpenseResponse{
		ExpenseID:      e.ExpenseID,
		OwnerUserID:    e.OwnerUserID,
		CategoryID:     e.CategoryID,
		Amount:         e.Amount,
		CurrencyCode:   e.CurrencyCode,
		ExpenseDate:    e.ExpenseDate,
		Description:    e.Description,
		ReceiptURL:     e.ReceiptURL,
		Status:         e.Status,
		ReviewNote:     e.ReviewNote,
		ProcessedAt:    e.ProcessedAt,
		CreatedAt:      e.CreatedAt,
		LastUpdatedAt:  e.LastUpdatedAt,
		AllowedActions: actions,
		CanEdit:        e.CanBeEditedBy(requesterID),
		CanDelete:      e.CanBeDeletedBy(requesterID),
	}
}

// ToExpensePage converts expenses plus a total into the page envelope.
func ToExpensePage(expenses []domain.Expense, params PageParams, total int64, requesterID string, requesterRole domain.UserRole) Page[ExpenseResponse] {
	content := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		content[i] = ToExpenseResponse(&expenses[i], requesterID, requesterRole)
	}
	return NewPage(content, params, total)
}
