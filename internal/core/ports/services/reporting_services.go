package services

import (
	"context"
	"time"

	"github.com/expensly/expensly_backend/internal/core/domain"
)

// ReportingSvcFacade defines the reporting queries and their CSV exports.
type ReportingSvcFacade interface {
	// ExpenseSummary totals approved spend per category or department in [from, to].
	ExpenseSummary(ctx context.Context, groupBy domain.SummaryGroupBy, from, to time.Time) ([]domain.ExpenseSummaryRow, error)

	// ExpenseSummaryCSV renders the same report as a CSV document.
	ExpenseSummaryCSV(ctx context.Context, groupBy domain.SummaryGroupBy, from, to time.Time) ([]byte, error)

	// MonthlySummary returns per-month approved totals for the given year.
	MonthlySummary(ctx context.Context, year int) ([]domain.MonthlySummaryRow, error)

	// MonthlySummaryCSV renders the monthly report as a CSV document.
	MonthlySummaryCSV(ctx context.Context, year int) ([]byte, error)
}
