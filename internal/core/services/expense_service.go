package services

import (
	"context"
	"errors"
	"fmt"
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

// expenseService implements the ExpenseSvcFacade interface. It owns the
// approval workflow: every action is authorized and the transition table is
// enforced here, never in handlers.
type expenseService struct {
	BaseService
	expenseRepo  portsrepo.ExpenseRepository
	userRepo     portsrepo.UserRepository
	categoryRepo portsrepo.CategoryRepository
	currencyRepo portsrepo.CurrencyRepository
}

// NewExpenseService creates a new expense service with the provided dependencies.
func NewExpenseService(
	expenseRepo portsrepo.ExpenseRepository,
	userRepo portsrepo.UserRepository,
	categoryRepo portsrepo.CategoryRepository,
	currencyRepo portsrepo.CurrencyRepository,
) portssvc.ExpenseSvcFacade {
	return &expenseService{
		expenseRepo:  expenseRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		currencyRepo: currencyRepo,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}
	if !s.canView(ctx, expense, requester) {
		// Hidden rather than forbidden so IDs cannot be probed.
		return nil, apperrors.ErrNotFound
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams, requestingUserID string) ([]domain.Expense, int64, error) {
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, 0, err
	}

	filter, err := s.buildListFilter(ctx, params, requester)
	if err != nil {
		return nil, 0, err
	}

	expenses, total, err := s.expenseRepo.FindExpenses(ctx, filter, params.Limit(), params.Offset(), params.Sort)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses")
		return nil, 0, err
	}
	return expenses, total, nil
}

func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, ownerUserID string) (*domain.Expense, error) {
	owner, err := s.userRepo.FindUserByID(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	if owner.Role != domain.RoleEmployee {
		return nil, apperrors.NewAppError(http.StatusForbidden, "only employees can submit expenses", apperrors.ErrForbidden)
	}

	if err := validation.ExpenseAmount(req.Amount); err != nil {
		return nil, apperrors.NewAppError(http.StatusBadRequest, err.Error(), apperrors.ErrValidation)
	}
	if err := validation.ExpenseDate(req.ExpenseDate); err != nil {
		return nil, apperrors.NewAppError(http.StatusBadRequest, err.Error(), apperrors.ErrValidation)
	}
	if err := s.validateCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	if err := s.validateCurrency(ctx, req.CurrencyCode); err != nil {
		return nil, err
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:    uuid.NewString(),
		OwnerUserID:  ownerUserID,
		CategoryID:   req.CategoryID,
		Amount:       req.Amount,
		CurrencyCode: req.CurrencyCode,
		ExpenseDate:  req.ExpenseDate,
		Description:  req.Description,
		ReceiptURL:   req.ReceiptURL,
		Status:       domain.StatusPending,
		AuditFields:  domain.NewAuditFields(ownerUserID, now),
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.String("expense_id", expense.ExpenseID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense submitted",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("owner_user_id", ownerUserID),
		slog.String("amount", expense.Amount.String()))
	return &expense, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, requestingUserID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if !expense.CanBeEditedBy(requestingUserID) {
		if expense.OwnerUserID != requestingUserID {
			return nil, apperrors.NewAppError(http.StatusForbidden, "only the owner can edit an expense", apperrors.ErrForbidden)
		}
		return nil, apperrors.NewAppError(http.StatusConflict,
			fmt.Sprintf("expense in status %s can no longer be edited", expense.Status), apperrors.ErrWorkflowViolation)
	}

	if req.Amount != nil {
		if err := validation.ExpenseAmount(*req.Amount); err != nil {
			return nil, apperrors.NewAppError(http.StatusBadRequest, err.Error(), apperrors.ErrValidation)
		}
		expense.Amount = *req.Amount
	}
	if req.ExpenseDate != nil {
		if err := validation.ExpenseDate(*req.ExpenseDate); err != nil {
			return nil, apperrors.NewAppError(http.StatusBadRequest, err.Error(), apperrors.ErrValidation)
		}
		expense.ExpenseDate = *req.ExpenseDate
	}
	if req.CategoryID != nil {
		if err := s.validateCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		expense.CategoryID = *req.CategoryID
	}
	if req.CurrencyCode != nil {
		if err := s.validateCurrency(ctx, *req.CurrencyCode); err != nil {
			return nil, err
		}
		expense.CurrencyCode = *req.CurrencyCode
	}
	if req.Description != nil {
		if err := validation.Description(*req.Description); err != nil {
			return nil, apperrors.NewAppError(http.StatusBadRequest, err.Error(), apperrors.ErrValidation)
		}
		expense.Description = *req.Description
	}
	if req.ReceiptURL != nil {
		if err := validation.URL(*req.ReceiptURL); err != nil {
			return nil, apperrors.NewAppError(http.StatusBadRequest, err.Error(), apperrors.ErrValidation)
		}
		expense.ReceiptURL = req.ReceiptURL
	}

	expense.Touch(requestingUserID, time.Now())
	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "Failed to update expense", slog.String("expense_id", expenseID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense updated", slog.String("expense_id", expenseID))
	return expense, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, expenseID string, requestingUserID string) error {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if !expense.CanBeDeletedBy(requestingUserID) {
		if expense.OwnerUserID != requestingUserID {
			return apperrors.NewAppError(http.StatusForbidden, "only the owner can delete an expense", apperrors.ErrForbidden)
		}
		return apperrors.NewAppError(http.StatusConflict,
			fmt.Sprintf("expense in status %s can no longer be deleted", expense.Status), apperrors.ErrWorkflowViolation)
	}

	if err := s.expenseRepo.DeleteExpense(ctx, expenseID); err != nil {
		s.LogError(ctx, err, "Failed to delete expense", slog.String("expense_id", expenseID))
		return err
	}

	s.LogInfo(ctx, "Expense deleted", slog.String("expense_id", expenseID))
	return nil
}

func (s *expenseService) ReviewExpense(ctx context.Context, expenseID string, action domain.ExpenseAction, note string, requestingUserID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}

	if expense.OwnerUserID == requestingUserID {
		return nil, apperrors.NewAppError(http.StatusForbidden, "you cannot review your own expense", apperrors.ErrForbidden)
	}

	next, ok := domain.NextStatus(expense.Status, requester.Role, action)
	if !ok {
		return nil, apperrors.NewAppError(http.StatusConflict,
			fmt.Sprintf("action %s is not allowed on an expense in status %s for role %s", action, expense.Status, requester.Role),
			apperrors.ErrWorkflowViolation)
	}

	if requester.Role == domain.RoleManager {
		owner, err := s.userRepo.FindUserByID(ctx, expense.OwnerUserID)
		if err != nil {
			return nil, err
		}
		if owner.ManagerID == nil || *owner.ManagerID != requestingUserID {
			return nil, apperrors.NewAppError(http.StatusForbidden,
				"you can only review expenses submitted by your subordinates", apperrors.ErrForbidden)
		}
	}

	if err := validation.Description(note); err != nil {
		return nil, apperrors.NewAppError(http.StatusBadRequest, err.Error(), apperrors.ErrValidation)
	}
	var reviewNote *string
	if note != "" {
		reviewNote = &note
	}

	now := time.Now()
	var processedAt *time.Time
	if next.IsTerminal() {
		processedAt = &now
	}

	err = s.expenseRepo.UpdateExpenseStatus(ctx, expenseID, expense.Status, next, reviewNote, processedAt, now, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewAppError(http.StatusConflict,
				"expense was reviewed by someone else in the meantime; reload and try again", apperrors.ErrConflict)
		}
		s.LogError(ctx, err, "Failed to transition expense status", slog.String("expense_id", expenseID))
		return nil, err
	}

	expense.Status = next
	expense.ReviewNote = reviewNote
	expense.ProcessedAt = processedAt
	expense.Touch(requestingUserID, now)

	s.LogInfo(ctx, "Expense reviewed",
		slog.String("expense_id", expenseID),
		slog.String("action", string(action)),
		slog.String("new_status", string(next)),
		slog.String("reviewer_user_id", requestingUserID))
	return expense, nil
}

func (s *expenseService) ResubmitExpense(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if !expense.CanBeResubmittedBy(requestingUserID) {
		if expense.OwnerUserID != requestingUserID {
			return nil, apperrors.NewAppError(http.StatusForbidden, "only the owner can resubmit an expense", apperrors.ErrForbidden)
		}
		return nil, apperrors.NewAppError(http.StatusConflict,
			fmt.Sprintf("only expenses in %s can be resubmitted", domain.StatusRequiresRevision), apperrors.ErrWorkflowViolation)
	}

	now := time.Now()
	err = s.expenseRepo.UpdateExpenseStatus(ctx, expenseID, domain.StatusRequiresRevision, domain.StatusPending, nil, nil, now, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewAppError(http.StatusConflict,
				"expense changed state in the meantime; reload and try again", apperrors.ErrConflict)
		}
		s.LogError(ctx, err, "Failed to resubmit expense", slog.String("expense_id", expenseID))
		return nil, err
	}

	expense.Status = domain.StatusPending
	expense.ReviewNote = nil
	expense.ProcessedAt = nil
	expense.Touch(requestingUserID, now)

	s.LogInfo(ctx, "Expense resubmitted", slog.String("expense_id", expenseID))
	return expense, nil
}

// canView reports whether the requester may see the expense: owners always,
// managers for their subordinates, finance for everyone.
func (s *expenseService) canView(ctx context.Context, expense *domain.Expense, requester *domain.User) bool {
	if expense.OwnerUserID == requester.UserID || requester.Role == domain.RoleFinance {
		return true
	}
	if requester.Role == domain.RoleManager {
		owner, err := s.userRepo.FindUserByID(ctx, expense.OwnerUserID)
		if err != nil {
			return false
		}
		return owner.ManagerID != nil && *owner.ManagerID == requester.UserID
	}
	return false
}

// buildListFilter translates query params into a repository filter scoped to
// what the requester is allowed to see.
func (s *expenseService) buildListFilter(ctx context.Context, params dto.ListExpensesParams, requester *domain.User) (portsrepo.ExpenseFilter, error) {
	var filter portsrepo.ExpenseFilter

	if params.Status != "" {
		status := domain.ExpenseStatus(params.Status)
		filter.Status = &status
	}
	if params.CategoryID != "" {
		categoryID := params.CategoryID
		filter.CategoryID = &categoryID
	}
	if params.DateFrom != "" {
		from, _ := time.Parse("2006-01-02", params.DateFrom)
		filter.DateFrom = &from
	}
	if params.DateTo != "" {
		// Inclusive end of day.
		to, _ := time.Parse("2006-01-02", params.DateTo)
		to = to.Add(24*time.Hour - time.Second)
		filter.DateTo = &to
	}

	switch requester.Role {
	case domain.RoleEmployee:
		// Employees only ever see their own expenses.
		ownerID := requester.UserID
		filter.OwnerUserID = &ownerID
	case domain.RoleManager:
		if params.OwnerID == "" {
			managerID := requester.UserID
			filter.ManagerID = &managerID
			break
		}
		if params.OwnerID == requester.UserID {
			ownerID := requester.UserID
			filter.OwnerUserID = &ownerID
			break
		}
		owner, err := s.userRepo.FindUserByID(ctx, params.OwnerID)
		if err != nil {
			return filter, err
		}
		if owner.ManagerID == nil || *owner.ManagerID != requester.UserID {
			return filter, apperrors.NewAppError(http.StatusForbidden,
				"you can only list expenses submitted by your subordinates", apperrors.ErrForbidden)
		}
		ownerID := params.OwnerID
		filter.OwnerUserID = &ownerID
	case domain.RoleFinance:
		if params.OwnerID != "" {
			ownerID := params.OwnerID
			filter.OwnerUserID = &ownerID
		}
	}
	return filter, nil
}

// validateCategory checks that the category exists and is active.
func (s *expenseService) validateCategory(ctx context.Context, categoryID string) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewAppError(http.StatusBadRequest, "category does not exist", apperrors.ErrValidation)
		}
		return err
	}
	if !category.IsActive {
		return apperrors.NewAppError(http.StatusBadRequest, "category is not active", apperrors.ErrValidation)
	}
	return nil
}

// validateCurrency checks the currency code is one the system knows about.
func (s *expenseService) validateCurrency(ctx context.Context, currencyCode string) error {
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewAppError(http.StatusBadRequest, "unsupported currency code", apperrors.ErrValidation)
		}
		return err
	}
	return nil
}
