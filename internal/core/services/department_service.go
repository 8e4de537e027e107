package services

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/expensly/expensly_backend/internal/apperrors"
	"github.com/expensly/expensly_backend/internal/core/domain"
	portsrepo "github.com/expensly/expensly_backend/internal/core/ports/repositories"
	portssvc "github.com/expensly/expensly_backend/internal/core/ports/services"
	"github.com/expensly/expensly_backend/internal/dto"
	"github.com/expensly/expensly_backend/internal/platform/validation"
	"github.com/google/uuid"
)

// departmentService implements the DepartmentSvcFacade interface.
type departmentService struct {
	BaseService
	departmentRepo portsrepo.DepartmentRepository
	currencyRepo   portsrepo.CurrencyRepository
}

// NewDepartmentService creates a new department service.
func NewDepartmentService(departmentRepo portsrepo.DepartmentRepository, currencyRepo portsrepo.CurrencyRepository) portssvc.DepartmentSvcFacade {
	return &departmentService{
		departmentRepo: departmentRepo,
		currencyRepo:   currencyRepo,
	}
}

var _ portssvc.DepartmentSvcFacade = (*departmentService)(nil)

func (s *departmentService) CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest, creatorUserID string) (*domain.Department, error) {
	if err := validation.Budget(req.DailyBudget); err != nil {
		return nil, apperrors.NewAppError(http.StatusBadRequest, err.Error(), apperrors.ErrValidation)
	}
	if err := validation.Budget(req.MonthlyBudget); err != nil {
		return nil, apperrors.NewAppError(http.StatusBadRequest, err.Error(), apperrors.ErrValidation)
	}
	if err := s.checkCurrency(ctx, req.CurrencyCode); err != nil {
		return nil, err
	}

	department := domain.Department{
		DepartmentID:  uuid.NewString(),
		Name:          req.Name,
		CurrencyCode:  req.CurrencyCode,
		DailyBudget:   req.DailyBudget,
		MonthlyBudget: req.MonthlyBudget,
		IsActive:      true,
		AuditFields:   domain.NewAuditFields(creatorUserID, time.Now()),
	}

	if err := s.departmentRepo.SaveDepartment(ctx, department); err != nil {
		s.LogError(ctx, err, "Failed to save department", slog.String("department_id", department.DepartmentID))
		return nil, err
	}

	s.LogInfo(ctx, "Department created", slog.String("department_id", department.DepartmentID))
	return &department, nil
}

func (s *departmentService) GetDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	return s.departmentRepo.FindDepartmentByID(ctx, departmentID)
}

func (s *departmentService) ListDepartments(ctx context.Context, params dto.PageParams) ([]domain.Department, int64, error) {
	departments, total, err := s.departmentRepo.FindDepartments(ctx, params.Limit(), params.Offset(), params.Sort)
	if err != nil {
		s.LogError(ctx, err, "Failed to list departments")
		return nil, 0, err
	}
	return departments, total, nil
}

func (s *departmentService) UpdateDepartment(ctx context.Context, departmentID string, req dto.UpdateDepartmentRequest, requestingUserID string) (*domain.Department, error) {
	department, err := s.departmentRepo.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		department.Name = *req.Name
	}
	if req.CurrencyCode != nil {
		if err := s.checkCurrency(ctx, *req.CurrencyCode); err != nil {
			return nil, err
		}
		department.CurrencyCode = *req.CurrencyCode
	}
	if req.DailyBudget != nil {
		if err := validation.Budget(*req.DailyBudget); err != nil {
			return nil, apperrors.NewAppError(http.StatusBadRequest, err.Error(), apperrors.ErrValidation)
		}
		department.DailyBudget = *req.DailyBudget
	}
	if req.MonthlyBudget != nil {
		if err := validation.Budget(*req.MonthlyBudget); err != nil {
			return nil, apperrors.NewAppError(http.StatusBadRequest, err.Error(), apperrors.ErrValidation)
		}
		department.MonthlyBudget = *req.MonthlyBudget
	}
	if req.IsActive != nil {
		department.IsActive = *req.IsActive
	}

	department.Touch(requestingUserID, time.Now())
	if err := s.departmentRepo.UpdateDepartment(ctx, *department); err != nil {
		s.LogError(ctx, err, "Failed to update department", slog.String("department_id", departmentID))
		return nil, err
	}

	s.LogInfo(ctx, "Department updated", slog.String("department_id", departmentID))
	return department, nil
}

func (s *departmentService) checkCurrency(ctx context.Context, currencyCode string) error {
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewAppError(http.StatusBadRequest, "unsupported currency code", apperrors.ErrValidation)
		}
		return err
	}
	return nil
}
