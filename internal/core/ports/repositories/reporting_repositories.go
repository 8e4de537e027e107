package repositories

import (
	"context"
	"time"

	"github.com/expensly/expensly_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines the aggregate queries behind reports and budget
// alerts. All sums cover finance-approved expenses only.
type ReportingRepository interface {
	// SumExpensesByCategory totals approved spend per category in [from, to).
	SumExpensesByCategory(ctx context.Context, from, to time.Time) ([]domain.ExpenseSummaryRow, error)

	// SumExpensesByDepartment totals approved spend per department in [from, to).
	SumExpensesByDepartment(ctx context.Context, from, to time.Time) ([]domain.ExpenseSummaryRow, error)

	// MonthlyTotals returns one row per calendar month of the given year.
	MonthlyTotals(ctx context.Context, year int) ([]domain.MonthlySummaryRow, error)

	// SumApprovedSpend totals approved spend for a single category or
	// department in [from, to).
	SumApprovedSpend(ctx context.Context, scope domain.AlertScope, targetID string, from, to time.Time) (decimal.Decimal, error)
}
