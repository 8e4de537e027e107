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

// categoryService implements the CategorySvcFacade interface.
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepository
	currencyRepo portsrepo.CurrencyRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepository, currencyRepo portsrepo.CurrencyRepository) portssvc.CategorySvcFacade {
	return &categoryService{
		categoryRepo: categoryRepo,
		currencyRepo: currencyRepo,
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error) {
	if err := validation.Budget(req.DailyBudget); err != nil {
		return nil, apperrors.NewAppError(http.StatusBadRequest, err.Error(), apperrors.ErrValidation)
	}
	if err := validation.Budget(req.MonthlyBudget); err != nil {
		return nil, apperrors.NewAppError(http.StatusBadRequest, err.Error(), apperrors.ErrValidation)
	}
	if err := s.checkCurrency(ctx, req.CurrencyCode); err != nil {
		return nil, err
	}

	category := domain.Category{
		CategoryID:    uuid.NewString(),
		Name:          req.Name,
		CurrencyCode:  req.CurrencyCode,
		DailyBudget:   req.DailyBudget,
		MonthlyBudget: req.MonthlyBudget,
		IsActive:      true,
		AuditFields:   domain.NewAuditFields(creatorUserID, time.Now()),
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("category_id", category.CategoryID))
		return nil, err
	}

	s.LogInfo(ctx, "Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	return s.categoryRepo.FindCategoryByID(ctx, categoryID)
}

func (s *categoryService) ListCategories(ctx context.Context, params dto.PageParams) ([]domain.Category, int64, error) {
	categories, total, err := s.categoryRepo.FindCategories(ctx, params.Limit(), params.Offset(), params.Sort)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, 0, err
	}
	return categories, total, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, requestingUserID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.CurrencyCode != nil {
		if err := s.checkCurrency(ctx, *req.CurrencyCode); err != nil {
			return nil, err
		}
		category.CurrencyCode = *req.CurrencyCode
	}
	if req.DailyBudget != nil {
		if err := validation.Budget(*req.DailyBudget); err != nil {
			return nil, apperrors.NewAppError(http.StatusBadRequest, err.Error(), apperrors.ErrValidation)
		}
		category.DailyBudget = *req.DailyBudget
	}
	if req.MonthlyBudget != nil {
		if err := validation.Budget(*req.MonthlyBudget); err != nil {
			return nil, apperrors.NewAppError(http.StatusBadRequest, err.Error(), apperrors.ErrValidation)
		}
		category.MonthlyBudget = *req.MonthlyBudget
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	category.Touch(requestingUserID, time.Now())
	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category", slog.String("category_id", categoryID))
		return nil, err
	}

	s.LogInfo(ctx, "Category updated", slog.String("category_id", categoryID))
	return category, nil
}

func (s *categoryService) checkCurrency(ctx context.Context, currencyCode string) error {
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewAppError(http.StatusBadRequest, "unsupported currency code", apperrors.ErrValidation)
		}
		return err
	}
	return nil
}
