package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/expensly/expensly_backend/internal/apperrors"
	"github.com/expensly/expensly_backend/internal/core/domain"
	portsrepo "github.com/expensly/expensly_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(db *pgxpool.Pool) portsrepo.ExpenseRepository {
	return &PgxExpenseRepository{BaseRepository{Pool: db}}
}

// Ensure PgxExpenseRepository implements portsrepo.ExpenseRepository
var _ portsrepo.ExpenseRepository = (*PgxExpenseRepository)(nil)

const expenseColumns = `
	e.expense_id, e.owner_user_id, e.category_id, e.amount, e.currency_code,
	e.expense_date, e.description, e.receipt_url, e.status, e.review_note, e.processed_at,
	e.created_at, e.created_by, e.last_updated_at, e.last_updated_by`

var expenseSortColumns = map[string]string{
	"expenseDate": "e.expense_date",
	"amount":      "e.amount",
	"status":      "e.status",
	"createdAt":   "e.created_at",
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var expense domain.Expense
	err := row.Scan(
		&expense.ExpenseID,
		&expense.OwnerUserID,
		&expense.CategoryID,
		&expense.Amount,
		&expense.CurrencyCode,
		&expense.ExpenseDate,
		&expense.Description,
		&expense.ReceiptURL,
		&expense.Status,
		&expense.ReviewNote,
		&expense.ProcessedAt,
		&expense.CreatedAt,
		&expense.CreatedBy,
		&expense.LastUpdatedAt,
		&expense.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	query := `
		INSERT INTO expenses (expense_id, owner_user_id, category_id, amount, currency_code,
			expense_date, description, receipt_url, status, review_note, processed_at,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		expense.ExpenseID,
		expense.OwnerUserID,
		expense.CategoryID,
		expense.Amount,
		expense.CurrencyCode,
		expense.ExpenseDate,
		expense.Description,
		expense.ReceiptURL,
		expense.Status,
		expense.ReviewNote,
		expense.ProcessedAt,
		expense.CreatedAt,
		expense.CreatedBy,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses e WHERE e.expense_id = $1;`
	expense, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}
	return expense, nil
}

// expenseFilterClause builds the WHERE clause and its positional arguments
// from a filter. The ManagerID condition joins through users so the list
// query stays a single round trip.
func expenseFilterClause(filter portsrepo.ExpenseFilter) (string, []any) {
	conditions := []string{}
	args := []any{}

	add := func(condition string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.Status != nil {
		add("e.status = $%d", *filter.Status)
	}
	if filter.OwnerUserID != nil {
		add("e.owner_user_id = $%d", *filter.OwnerUserID)
	}
	if filter.ManagerID != nil {
		add("e.owner_user_id IN (SELECT user_id FROM users WHERE manager_id = $%d)", *filter.ManagerID)
	}
	if filter.CategoryID != nil {
		add("e.category_id = $%d", *filter.CategoryID)
	}
	if filter.DateFrom != nil {
		add("e.expense_date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		add("e.expense_date <= $%d", *filter.DateTo)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *PgxExpenseRepository) FindExpenses(ctx context.Context, filter portsrepo.ExpenseFilter, limit, offset int, sort string) ([]domain.Expense, int64, error) {
	where, args := expenseFilterClause(filter)

	var total int64
	countQuery := `SELECT count(*) FROM expenses e` + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses e` + where +
		` ORDER BY ` + orderClause(sort, expenseSortColumns, "e.created_at DESC") +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d;", len(args)+1, len(args)+2)
	rows, err := r.Pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate expense rows: %w", err)
	}
	return expenses, total, nil
}

func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	query := `
		UPDATE expenses
		SET category_id = $2, amount = $3, currency_code = $4, expense_date = $5,
			description = $6, receipt_url = $7, last_updated_at = $8, last_updated_by = $9
		WHERE expense_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		expense.ExpenseID,
		expense.CategoryID,
		expense.Amount,
		expense.CurrencyCode,
		expense.ExpenseDate,
		expense.Description,
		expense.ReceiptURL,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", expense.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateExpenseStatus is the only way an expense changes status. The WHERE
// clause pins the expected current status, so of two concurrent reviewers
// exactly one wins and the other gets ErrConflict.
func (r *PgxExpenseRepository) UpdateExpenseStatus(ctx context.Context, expenseID string, from, to domain.ExpenseStatus, reviewNote *string, processedAt *time.Time, updatedAt time.Time, updatedBy string) error {
	query := `
		UPDATE expenses
		SET status = $3, review_note = $4, processed_at = $5, last_updated_at = $6, last_updated_by = $7
		WHERE expense_id = $1 AND status = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, expenseID, from, to, reviewNote, processedAt, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to transition expense %s: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM expenses WHERE expense_id = $1);`, expenseID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check expense %s: %w", expenseID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrConflict
	}
	return nil
}

func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
