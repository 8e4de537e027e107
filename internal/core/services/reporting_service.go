package services

import (
	"context"
	"net/http"
	"time"

	"github.com/expensly/expensly_backend/internal/apperrors"
	"github.com/expensly/expensly_backend/internal/core/domain"
	portsrepo "github.com/expensly/expensly_backend/internal/core/ports/repositories"
	portssvc "github.com/expensly/expensly_backend/internal/core/ports/services"
	"github.com/expensly/expensly_backend/internal/utils/export"
)

// reportingService implements the ReportingSvcFacade interface.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) ExpenseSummary(ctx context.Context, groupBy domain.SummaryGroupBy, from, to time.Time) ([]domain.ExpenseSummaryRow, error) {
	if to.Before(from) {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "report end date is before the start date", apperrors.ErrValidation)
	}

	switch groupBy {
	case domain.GroupByCategory:
		return s.reportingRepo.SumExpensesByCategory(ctx, from, to)
	case domain.GroupByDepartment:
		return s.reportingRepo.SumExpensesByDepartment(ctx, from, to)
	default:
		return nil, apperrors.NewAppError(http.StatusBadRequest, "groupBy must be category or department", apperrors.ErrValidation)
	}
}

func (s *reportingService) ExpenseSummaryCSV(ctx context.Context, groupBy domain.SummaryGroupBy, from, to time.Time) ([]byte, error) {
	rows, err := s.ExpenseSummary(ctx, groupBy, from, to)
	if err != nil {
		return nil, err
	}
	return export.ExpenseSummaryCSV(rows, groupBy)
}

func (s *reportingService) MonthlySummary(ctx context.Context, year int) ([]domain.MonthlySummaryRow, error) {
	if year < 2000 || year > 2100 {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "year is out of range", apperrors.ErrValidation)
	}
	rows, err := s.reportingRepo.MonthlyTotals(ctx, year)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute monthly totals")
		return nil, err
	}
	return rows, nil
}

func (s *reportingService) MonthlySummaryCSV(ctx context.Context, year int) ([]byte, error) {
	rows, err := s.MonthlySummary(ctx, year)
	if err != nil {
		return nil, err
	}
	return export.MonthlySummaryCSV(rows)
}
