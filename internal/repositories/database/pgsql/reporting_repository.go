package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/expensly/expensly_backend/internal/core/domain"
	portsrepo "github.com/expensly/expensly_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxReportingRepository answers the aggregate queries behind reports and
// budget alerts. Only finance-approved expenses count as spend; department
// attribution goes through the owning user's department.
type PgxReportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: db}}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) SumExpensesByCategory(ctx context.Context, from, to time.Time) ([]domain.ExpenseSummaryRow, error) {
	query := `
		SELECT c.category_id, c.name, COALESCE(SUM(e.amount), 0), COUNT(e.expense_id)
		FROM categories c
		JOIN expenses e ON e.category_id = c.category_id
		WHERE e.status = $1 AND e.expense_date >= $2 AND e.expense_date < $3
		GROUP BY c.category_id, c.name
		ORDER BY SUM(e.amount) DESC;
	`
	return r.querySummaryRows(ctx, query, domain.StatusApprovedByFinance, from, to)
}

func (r *PgxReportingRepository) SumExpensesByDepartment(ctx context.Context, from, to time.Time) ([]domain.ExpenseSummaryRow, error) {
	query := `
		SELECT d.department_id, d.name, COALESCE(SUM(e.amount), 0), COUNT(e.expense_id)
		FROM departments d
		JOIN users u ON u.department_id = d.department_id
		JOIN expenses e ON e.owner_user_id = u.user_id
		WHERE e.status = $1 AND e.expense_date >= $2 AND e.expense_date < $3
		GROUP BY d.department_id, d.name
		ORDER BY SUM(e.amount) DESC;
	`
	return r.querySummaryRows(ctx, query, domain.StatusApprovedByFinance, from, to)
}

func (r *PgxReportingRepository) querySummaryRows(ctx context.Context, query string, args ...any) ([]domain.ExpenseSummaryRow, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense summary: %w", err)
	}
	defer rows.Close()

	summary := []domain.ExpenseSummaryRow{}
	for rows.Next() {
		var row domain.ExpenseSummaryRow
		if err := rows.Scan(&row.GroupID, &row.GroupName, &row.TotalAmount, &row.ExpenseCount); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		summary = append(summary, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate summary rows: %w", err)
	}
	return summary, nil
}

func (r *PgxReportingRepository) MonthlyTotals(ctx context.Context, year int) ([]domain.MonthlySummaryRow, error) {
	query := `
		SELECT EXTRACT(MONTH FROM e.expense_date)::int, COALESCE(SUM(e.amount), 0), COUNT(e.expense_id)
		FROM expenses e
		WHERE e.status = $1 AND EXTRACT(YEAR FROM e.expense_date) = $2
		GROUP BY 1
		ORDER BY 1;
	`
	rows, err := r.Pool.Query(ctx, query, domain.StatusApprovedByFinance, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly totals: %w", err)
	}
	defer rows.Close()

	totals := []domain.MonthlySummaryRow{}
	for rows.Next() {
		row := domain.MonthlySummaryRow{Year: year}
		if err := rows.Scan(&row.Month, &row.TotalAmount, &row.ExpenseCount); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total row: %w", err)
		}
		totals = append(totals, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly total rows: %w", err)
	}
	return totals, nil
}

func (r *PgxReportingRepository) SumApprovedSpend(ctx context.Context, scope domain.AlertScope, targetID string, from, to time.Time) (decimal.Decimal, error) {
	var query string
	switch scope {
	case domain.AlertScopeCategory:
		query = `
			SELECT COALESCE(SUM(e.amount), 0)
			FROM expenses e
			WHERE e.status = $1 AND e.category_id = $2
				AND e.expense_date >= $3 AND e.expense_date < $4;
		`
	case domain.AlertScopeDepartment:
		query = `
			SELECT COALESCE(SUM(e.amount), 0)
			FROM expenses e
			JOIN users u ON u.user_id = e.owner_user_id
			WHERE e.status = $1 AND u.department_id = $2
				AND e.expense_date >= $3 AND e.expense_date < $4;
		`
	default:
		return decimal.Zero, fmt.Errorf("unknown alert scope %q", scope)
	}

	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, domain.StatusApprovedByFinance, targetID, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum approved spend: %w", err)
	}
	return total, nil
}
