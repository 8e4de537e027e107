package repositories

import (
	"context"
	"time"

	"github.com/expensly/expensly_backend/internal/core/domain"
)

// ExpenseFilter narrows expense list queries. Nil fields are ignored.
type ExpenseFilter struct {
	Status      *domain.ExpenseStatus
	OwnerUserID *string
	// ManagerID restricts to expenses owned by users reporting to this manager.
	ManagerID  *string
	CategoryID *string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// ExpenseRepository defines persistence operations for expenses.
type ExpenseRepository interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// FindExpenseByID retrieves an expense by ID.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// FindExpenses retrieves a page of expenses matching filter, with total count.
	FindExpenses(ctx context.Context, filter ExpenseFilter, limit, offset int, sort string) ([]domain.Expense, int64, error)

	// UpdateExpense updates the editable fields of an expense.
	UpdateExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpenseStatus transitions an expense from one status to another,
	// storing the reviewer's note (nil clears it). The update is guarded by
	// the expected current status; if the stored row is no longer in `from`
	// (a concurrent reviewer won), it returns apperrors.ErrConflict and
	// changes nothing.
	UpdateExpenseStatus(ctx context.Context, expenseID string, from, to domain.ExpenseStatus, reviewNote *string, processedAt *time.Time, updatedAt time.Time, updatedBy string) error

	// DeleteExpense removes an expense. Only the service layer decides when
	// deletion is allowed.
	DeleteExpense(ctx context.Context, expenseID string) error
}
