package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/expensly/expensly_backend/internal/apperrors"
	"github.com/expensly/expensly_backend/internal/core/domain"
	portsrepo "github.com/expensly/expensly_backend/internal/core/ports/repositories"
	portssvc "github.com/expensly/expensly_backend/internal/core/ports/services"
	"github.com/expensly/expensly_backend/internal/core/services"
	"github.com/expensly/expensly_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExpenseRepository ---

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	var expense *domain.Expense
	if args.Get(0) != nil {
		expense = args.Get(0).(*domain.Expense)
	}
	return expense, args.Error(1)
}

func (m *MockExpenseRepository) FindExpenses(ctx context.Context, filter portsrepo.ExpenseFilter, limit, offset int, sort string) ([]domain.Expense, int64, error) {
	args := m.Called(ctx, filter, limit, offset, sort)
	var expenses []domain.Expense
	if args.Get(0) != nil {
		expenses = args.Get(0).([]domain.Expense)
	}
	return expenses, args.Get(1).(int64), args.Error(2)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateExpenseStatus(ctx context.Context, expenseID string, from, to domain.ExpenseStatus, reviewNote *string, processedAt *time.Time, updatedAt time.Time, updatedBy string) error {
	args := m.Called(ctx, expenseID, from, to, reviewNote, processedAt, updatedAt, updatedBy)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	args := m.Called(ctx, expenseID)
	return args.Error(0)
}

var _ portsrepo.ExpenseRepository = (*MockExpenseRepository)(nil)

// --- Mock CategoryRepository ---

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	var category *domain.Category
	if args.Get(0) != nil {
		category = args.Get(0).(*domain.Category)
	}
	return category, args.Error(1)
}

func (m *MockCategoryRepository) FindCategories(ctx context.Context, limit, offset int, sort string) ([]domain.Category, int64, error) {
	args := m.Called(ctx, limit, offset, sort)
	var categories []domain.Category
	if args.Get(0) != nil {
		categories = args.Get(0).([]domain.Category)
	}
	return categories, args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

var _ portsrepo.CategoryRepository = (*MockCategoryRepository)(nil)

// --- Mock CurrencyRepository ---

type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	var currency *domain.Currency
	if args.Get(0) != nil {
		currency = args.Get(0).(*domain.Currency)
	}
	return currency, args.Error(1)
}

func (m *MockCurrencyRepository) FindCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	var currencies []domain.Currency
	if args.Get(0) != nil {
		currencies = args.Get(0).([]domain.Currency)
	}
	return currencies, args.Error(1)
}

var _ portsrepo.CurrencyRepository = (*MockCurrencyRepository)(nil)

// --- Test Suite ---

type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo  *MockExpenseRepository
	mockUserRepo     *MockUserRepository
	mockCategoryRepo *MockCategoryRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.ExpenseSvcFacade
	ctx              context.Context

	employeeID string
	managerID  string
	financeID  string
	employee   *domain.User
	manager    *domain.User
	finance    *domain.User
}

func (s *ExpenseServiceTestSuite) SetupTest() {
	s.mockExpenseRepo = new(MockExpenseRepository)
	s.mockUserRepo = new(MockUserRepository)
	s.mockCategoryRepo = new(MockCategoryRepository)
	s.mockCurrencyRepo = new(MockCurrencyRepository)
	s.service = services.NewExpenseService(s.mockExpenseRepo, s.mockUserRepo, s.mockCategoryRepo, s.mockCurrencyRepo)
	s.ctx = context.Background()

	s.employeeID = uuid.NewString()
	s.managerID = uuid.NewString()
	s.financeID = uuid.NewString()
	s.employee = &domain.User{UserID: s.employeeID, Role: domain.RoleEmployee, ManagerID: &s.managerID, IsActive: true}
	s.manager = &domain.User{UserID: s.managerID, Role: domain.RoleManager, IsActive: true}
	s.finance = &domain.User{UserID: s.financeID, Role: domain.RoleFinance, IsActive: true}
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}

func (s *ExpenseServiceTestSuite) pendingExpense() *domain.Expense {
	return &domain.Expense{
		ExpenseID:    uuid.NewString(),
		OwnerUserID:  s.employeeID,
		CategoryID:   uuid.NewString(),
		Amount:       decimal.NewFromFloat(42.50),
		CurrencyCode: "USD",
		ExpenseDate:  time.Now().AddDate(0, 0, -1),
		Description:  "Team lunch",
		Status:       domain.StatusPending,
	}
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_Success() {
	categoryID := uuid.NewString()
	req := dto.CreateExpenseRequest{
		Amount:       decimal.NewFromFloat(99.90),
		CurrencyCode: "USD",
		CategoryID:   categoryID,
		ExpenseDate:  time.Now().AddDate(0, 0, -2),
		Description:  "Taxi to the airport",
	}

	s.mockUserRepo.On("FindUserByID", s.ctx, s.employeeID).Return(s.employee, nil).Once()
	s.mockCategoryRepo.On("FindCategoryByID", s.ctx, categoryID).Return(&domain.Category{CategoryID: categoryID, IsActive: true}, nil).Once()
	s.mockCurrencyRepo.On("FindCurrencyByCode", s.ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	s.mockExpenseRepo.On("SaveExpense", s.ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Status == domain.StatusPending && e.OwnerUserID == s.employeeID
	})).Return(nil).Once()

	expense, err := s.service.CreateExpense(s.ctx, req, s.employeeID)

	s.Require().NoError(err)
	s.Require().NotNil(expense)
	s.Equal(domain.StatusPending, expense.Status)
	s.NotEmpty(expense.ExpenseID)
	s.Nil(expense.ProcessedAt)
	s.mockExpenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_NonEmployeeCannotSubmit() {
	req := dto.CreateExpenseRequest{
		Amount:       decimal.NewFromFloat(10),
		CurrencyCode: "USD",
		CategoryID:   uuid.NewString(),
		ExpenseDate:  time.Now(),
		Description:  "Coffee",
	}

	s.mockUserRepo.On("FindUserByID", s.ctx, s.managerID).Return(s.manager, nil).Once()

	expense, err := s.service.CreateExpense(s.ctx, req, s.managerID)

	s.Require().Error(err)
	s.Nil(expense)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockExpenseRepo.AssertNotCalled(s.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_InactiveCategory() {
	categoryID := uuid.NewString()
	req := dto.CreateExpenseRequest{
		Amount:       decimal.NewFromFloat(10),
		CurrencyCode: "USD",
		CategoryID:   categoryID,
		ExpenseDate:  time.Now().AddDate(0, 0, -1),
		Description:  "Old category",
	}

	s.mockUserRepo.On("FindUserByID", s.ctx, s.employeeID).Return(s.employee, nil).Once()
	s.mockCategoryRepo.On("FindCategoryByID", s.ctx, categoryID).Return(&domain.Category{CategoryID: categoryID, IsActive: false}, nil).Once()

	expense, err := s.service.CreateExpense(s.ctx, req, s.employeeID)

	s.Require().Error(err)
	s.Nil(expense)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ExpenseServiceTestSuite) TestGetExpenseByID_HiddenFromUnrelatedEmployee() {
	expense := s.pendingExpense()
	strangerID := uuid.NewString()
	stranger := &domain.User{UserID: strangerID, Role: domain.RoleEmployee, IsActive: true}

	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expense.ExpenseID).Return(expense, nil).Once()
	s.mockUserRepo.On("FindUserByID", s.ctx, strangerID).Return(stranger, nil).Once()

	got, err := s.service.GetExpenseByID(s.ctx, expense.ExpenseID, strangerID)

	s.Require().Error(err)
	s.Nil(got)
	s.ErrorIs(err, apperrors.ErrNotFound, "an invisible expense must be indistinguishable from a missing one")
}

func (s *ExpenseServiceTestSuite) TestGetExpenseByID_VisibleToOwnersManager() {
	expense := s.pendingExpense()

	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expense.ExpenseID).Return(expense, nil).Once()
	s.mockUserRepo.On("FindUserByID", s.ctx, s.managerID).Return(s.manager, nil).Once()
	s.mockUserRepo.On("FindUserByID", s.ctx, s.employeeID).Return(s.employee, nil).Once()

	got, err := s.service.GetExpenseByID(s.ctx, expense.ExpenseID, s.managerID)

	s.Require().NoError(err)
	s.Equal(expense.ExpenseID, got.ExpenseID)
}

func (s *ExpenseServiceTestSuite) TestReviewExpense_ManagerApproves() {
	expense := s.pendingExpense()

	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expense.ExpenseID).Return(expense, nil).Once()
	s.mockUserRepo.On("FindUserByID", s.ctx, s.managerID).Return(s.manager, nil).Once()
	s.mockUserRepo.On("FindUserByID", s.ctx, s.employeeID).Return(s.employee, nil).Once()
	s.mockExpenseRepo.On("UpdateExpenseStatus", s.ctx, expense.ExpenseID,
		domain.StatusPending, domain.StatusApprovedByManager,
		mock.MatchedBy(func(note *string) bool { return note != nil && *note == "looks fine" }),
		(*time.Time)(nil), mock.AnythingOfType("time.Time"), s.managerID).Return(nil).Once()

	got, err := s.service.ReviewExpense(s.ctx, expense.ExpenseID, domain.ActionApprove, "looks fine", s.managerID)

	s.Require().NoError(err)
	s.Equal(domain.StatusApprovedByManager, got.Status)
	s.Require().NotNil(got.ReviewNote)
	s.Equal("looks fine", *got.ReviewNote)
	s.Nil(got.ProcessedAt, "manager approval is not terminal")
	s.mockExpenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestReviewExpense_FinanceApprovalIsTerminal() {
	expense := s.pendingExpense()
	expense.Status = domain.StatusApprovedByManager

	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expense.ExpenseID).Return(expense, nil).Once()
	s.mockUserRepo.On("FindUserByID", s.ctx, s.financeID).Return(s.finance, nil).Once()
	s.mockExpenseRepo.On("UpdateExpenseStatus", s.ctx, expense.ExpenseID,
		domain.StatusApprovedByManager, domain.StatusApprovedByFinance,
		(*string)(nil),
		mock.MatchedBy(func(processedAt *time.Time) bool { return processedAt != nil }),
		mock.AnythingOfType("time.Time"), s.financeID).Return(nil).Once()

	got, err := s.service.ReviewExpense(s.ctx, expense.ExpenseID, domain.ActionApprove, "", s.financeID)

	s.Require().NoError(err)
	s.Equal(domain.StatusApprovedByFinance, got.Status)
	s.NotNil(got.ProcessedAt)
	s.mockExpenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestReviewExpense_SelfReviewForbidden() {
	// A manager who somehow owns a pending expense must not approve it.
	expense := s.pendingExpense()
	expense.OwnerUserID = s.managerID

	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expense.ExpenseID).Return(expense, nil).Once()
	s.mockUserRepo.On("FindUserByID", s.ctx, s.managerID).Return(s.manager, nil).Once()

	got, err := s.service.ReviewExpense(s.ctx, expense.ExpenseID, domain.ActionApprove, "", s.managerID)

	s.Require().Error(err)
	s.Nil(got)
	s.ErrorIs(err, apperrors.ErrForbidden)
	var appErr *apperrors.AppError
	s.Require().ErrorAs(err, &appErr)
	s.Equal("you cannot review your own expense", appErr.Message)
}

func (s *ExpenseServiceTestSuite) TestReviewExpense_FinanceCannotSkipManager() {
	expense := s.pendingExpense()

	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expense.ExpenseID).Return(expense, nil).Once()
	s.mockUserRepo.On("FindUserByID", s.ctx, s.financeID).Return(s.finance, nil).Once()

	got, err := s.service.ReviewExpense(s.ctx, expense.ExpenseID, domain.ActionApprove, "", s.financeID)

	s.Require().Error(err)
	s.Nil(got)
	s.ErrorIs(err, apperrors.ErrWorkflowViolation)
	s.mockExpenseRepo.AssertNotCalled(s.T(), "UpdateExpenseStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ExpenseServiceTestSuite) TestReviewExpense_ManagerOfSomeoneElse() {
	expense := s.pendingExpense()
	otherManagerID := uuid.NewString()
	otherManager := &domain.User{UserID: otherManagerID, Role: domain.RoleManager, IsActive: true}

	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expense.ExpenseID).Return(expense, nil).Once()
	s.mockUserRepo.On("FindUserByID", s.ctx, otherManagerID).Return(otherManager, nil).Once()
	s.mockUserRepo.On("FindUserByID", s.ctx, s.employeeID).Return(s.employee, nil).Once()

	got, err := s.service.ReviewExpense(s.ctx, expense.ExpenseID, domain.ActionApprove, "", otherManagerID)

	s.Require().Error(err)
	s.Nil(got)
	s.ErrorIs(err, apperrors.ErrForbidden)
	var appErr *apperrors.AppError
	s.Require().ErrorAs(err, &appErr)
	s.Contains(appErr.Message, "subordinates")
}

func (s *ExpenseServiceTestSuite) TestReviewExpense_ConcurrentReviewerWins() {
	expense := s.pendingExpense()

	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expense.ExpenseID).Return(expense, nil).Once()
	s.mockUserRepo.On("FindUserByID", s.ctx, s.managerID).Return(s.manager, nil).Once()
	s.mockUserRepo.On("FindUserByID", s.ctx, s.employeeID).Return(s.employee, nil).Once()
	s.mockExpenseRepo.On("UpdateExpenseStatus", s.ctx, expense.ExpenseID,
		domain.StatusPending, domain.StatusApprovedByManager,
		(*string)(nil), (*time.Time)(nil), mock.AnythingOfType("time.Time"), s.managerID).
		Return(apperrors.ErrConflict).Once()

	got, err := s.service.ReviewExpense(s.ctx, expense.ExpenseID, domain.ActionApprove, "", s.managerID)

	s.Require().Error(err)
	s.Nil(got)
	s.ErrorIs(err, apperrors.ErrConflict)
	var appErr *apperrors.AppError
	s.Require().ErrorAs(err, &appErr)
	s.Equal(409, appErr.Code)
	s.Contains(appErr.Message, "reviewed by someone else")
}

func (s *ExpenseServiceTestSuite) TestResubmitExpense_Success() {
	expense := s.pendingExpense()
	expense.Status = domain.StatusRequiresRevision
	note := "please attach the receipt"
	expense.ReviewNote = &note

	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expense.ExpenseID).Return(expense, nil).Once()
	s.mockExpenseRepo.On("UpdateExpenseStatus", s.ctx, expense.ExpenseID,
		domain.StatusRequiresRevision, domain.StatusPending,
		(*string)(nil), (*time.Time)(nil), mock.AnythingOfType("time.Time"), s.employeeID).Return(nil).Once()

	got, err := s.service.ResubmitExpense(s.ctx, expense.ExpenseID, s.employeeID)

	s.Require().NoError(err)
	s.Equal(domain.StatusPending, got.Status)
	s.Nil(got.ReviewNote, "resubmitting clears the reviewer's note")
	s.Nil(got.ProcessedAt)
	s.mockExpenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestResubmitExpense_OnlyOwner() {
	expense := s.pendingExpense()
	expense.Status = domain.StatusRequiresRevision

	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expense.ExpenseID).Return(expense, nil).Once()

	got, err := s.service.ResubmitExpense(s.ctx, expense.ExpenseID, s.managerID)

	s.Require().Error(err)
	s.Nil(got)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *ExpenseServiceTestSuite) TestDeleteExpense_AfterManagerActed() {
	expense := s.pendingExpense()
	expense.Status = domain.StatusApprovedByManager

	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expense.ExpenseID).Return(expense, nil).Once()

	err := s.service.DeleteExpense(s.ctx, expense.ExpenseID, s.employeeID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrWorkflowViolation)
	s.mockExpenseRepo.AssertNotCalled(s.T(), "DeleteExpense", mock.Anything, mock.Anything)
}

func (s *ExpenseServiceTestSuite) TestListExpenses_EmployeeOnlySeesOwn() {
	params := dto.ListExpensesParams{}
	params.Size = 20

	s.mockUserRepo.On("FindUserByID", s.ctx, s.employeeID).Return(s.employee, nil).Once()
	s.mockExpenseRepo.On("FindExpenses", s.ctx, mock.MatchedBy(func(f portsrepo.ExpenseFilter) bool {
		return f.OwnerUserID != nil && *f.OwnerUserID == s.employeeID && f.ManagerID == nil
	}), 20, 0, "").Return([]domain.Expense{}, int64(0), nil).Once()

	_, _, err := s.service.ListExpenses(s.ctx, params, s.employeeID)

	s.Require().NoError(err)
	s.mockExpenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestListExpenses_ManagerDefaultsToSubordinates() {
	params := dto.ListExpensesParams{}
	params.Size = 20

	s.mockUserRepo.On("FindUserByID", s.ctx, s.managerID).Return(s.manager, nil).Once()
	s.mockExpenseRepo.On("FindExpenses", s.ctx, mock.MatchedBy(func(f portsrepo.ExpenseFilter) bool {
		return f.ManagerID != nil && *f.ManagerID == s.managerID && f.OwnerUserID == nil
	}), 20, 0, "").Return([]domain.Expense{}, int64(0), nil).Once()

	_, _, err := s.service.ListExpenses(s.ctx, params, s.managerID)

	s.Require().NoError(err)
	s.mockExpenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestListExpenses_ManagerCannotListForeignOwner() {
	foreignOwnerID := uuid.NewString()
	foreignOwner := &domain.User{UserID: foreignOwnerID, Role: domain.RoleEmployee, IsActive: true}
	params := dto.ListExpensesParams{OwnerID: foreignOwnerID}
	params.Size = 20

	s.mockUserRepo.On("FindUserByID", s.ctx, s.managerID).Return(s.manager, nil).Once()
	s.mockUserRepo.On("FindUserByID", s.ctx, foreignOwnerID).Return(foreignOwner, nil).Once()

	_, _, err := s.service.ListExpenses(s.ctx, params, s.managerID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockExpenseRepo.AssertNotCalled(s.T(), "FindExpenses", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
