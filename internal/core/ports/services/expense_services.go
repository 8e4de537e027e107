package services

import (
	"context"

	"github.com/expensly/expensly_backend/internal/core/domain"
	"github.com/expensly/expensly_backend/internal/dto"
)

// ExpenseReaderSvc defines read operations for expenses.
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves an expense the requesting user is allowed to see.
	GetExpenseByID(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error)

	// ListExpenses retrieves a page of expenses visible to the requesting user:
	// employees see their own, managers additionally their subordinates',
	// finance sees everything.
	ListExpenses(ctx context.Context, params dto.ListExpensesParams, requestingUserID string) ([]domain.Expense, int64, error)
}

// ExpenseWriterSvc defines submit/edit/delete operations for expenses.
type ExpenseWriterSvc interface {
	// CreateExpense submits a new expense in PENDING status.
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, ownerUserID string) (*domain.Expense, error)

	// UpdateExpense edits an expense; only the owner may edit and only while
	// the status is PENDING or REQUIRES_REVISION.
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, requestingUserID string) (*domain.Expense, error)

	// DeleteExpense removes an expense; only the owner may delete and only
	// while the status is PENDING.
	DeleteExpense(ctx context.Context, expenseID string, requestingUserID string) error
}

// ExpenseWorkflowSvc defines the review actions of the approval chain.
type ExpenseWorkflowSvc interface {
	// ReviewExpense applies a review action (approve / reject / request
	// revision) as the requesting user, enforcing the status transition table
	// and manager/subordinate scoping. An optional note is stored with the
	// decision.
	ReviewExpense(ctx context.Context, expenseID string, action domain.ExpenseAction, note string, requestingUserID string) (*domain.Expense, error)

	// ResubmitExpense returns a REQUIRES_REVISION expense to PENDING; owner only.
	ResubmitExpense(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces.
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
	ExpenseWorkflowSvc
}
