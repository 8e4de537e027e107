package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/expensly/expensly_backend/internal/apperrors"
	"github.com/expensly/expensly_backend/internal/core/domain"
	portsrepo "github.com/expensly/expensly_backend/internal/core/ports/repositories"
	portssvc "github.com/expensly/expensly_backend/internal/core/ports/services"
	"github.com/expensly/expensly_backend/internal/core/services"
	"github.com/expensly/expensly_backend/internal/dto"
	"github.com/expensly/expensly_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderDetails(ctx context.Context, authProvider string, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, authProvider, providerUserID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int, sort string) ([]domain.User, int64, error) {
	args := m.Called(ctx, limit, offset, sort)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) CountActiveSubordinates(ctx context.Context, managerID string) (int64, error) {
	args := m.Called(ctx, managerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SetUserActive(ctx context.Context, userID string, active bool, updatedAt time.Time, updatedBy string) error {
	args := m.Called(ctx, userID, active, updatedAt, updatedBy)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

// --- Mock DepartmentRepository ---

type MockDepartmentRepository struct {
	mock.Mock
}

func (m *MockDepartmentRepository) SaveDepartment(ctx context.Context, department domain.Department) error {
	args := m.Called(ctx, department)
	return args.Error(0)
}

func (m *MockDepartmentRepository) FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	args := m.Called(ctx, departmentID)
	var department *domain.Department
	if args.Get(0) != nil {
		department = args.Get(0).(*domain.Department)
	}
	return department, args.Error(1)
}

func (m *MockDepartmentRepository) FindDepartments(ctx context.Context, limit, offset int, sort string) ([]domain.Department, int64, error) {
	args := m.Called(ctx, limit, offset, sort)
	var departments []domain.Department
	if args.Get(0) != nil {
		departments = args.Get(0).([]domain.Department)
	}
	return departments, args.Get(1).(int64), args.Error(2)
}

func (m *MockDepartmentRepository) UpdateDepartment(ctx context.Context, department domain.Department) error {
	args := m.Called(ctx, department)
	return args.Error(0)
}

var _ portsrepo.DepartmentRepository = (*MockDepartmentRepository)(nil)

// --- Test Suite ---

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo       *MockUserRepository
	mockDepartmentRepo *MockDepartmentRepository
	service            portssvc.UserSvcFacade
	ctx                context.Context
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.mockDepartmentRepo = new(MockDepartmentRepository)
	s.service = services.NewUserService(s.mockUserRepo, s.mockDepartmentRepo)
	s.ctx = context.Background()
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) activeManager(id string) *domain.User {
	return &domain.User{
		UserID:   id,
		Email:    "manager@example.com",
		Name:     "Manager",
		Role:     domain.RoleManager,
		IsActive: true,
	}
}

func (s *UserServiceTestSuite) TestCreateUser_Success() {
	managerID := uuid.NewString()
	req := dto.CreateUserRequest{
		Email:     "new.employee@example.com",
		Name:      "New Employee",
		Password:  "password123",
		Role:      domain.RoleEmployee,
		ManagerID: &managerID,
	}

	s.mockUserRepo.On("FindUserByEmail", s.ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()
	s.mockUserRepo.On("FindUserByID", s.ctx, managerID).Return(s.activeManager(managerID), nil).Once()
	s.mockUserRepo.On("SaveUser", s.ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, err := s.service.CreateUser(s.ctx, req, "creator-id")

	s.Require().NoError(err)
	s.Require().NotNil(user)
	s.Equal(req.Email, user.Email)
	s.Equal(domain.RoleEmployee, user.Role)
	s.True(user.IsActive)
	s.Require().NotNil(user.ManagerID)
	s.Equal(managerID, *user.ManagerID)
	s.NotEqual(req.Password, user.PasswordHash)
	s.True(utils.CheckPasswordHash(req.Password, user.PasswordHash))
	s.Equal("creator-id", user.CreatedBy)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	req := dto.CreateUserRequest{
		Email:    "taken@example.com",
		Name:     "Someone",
		Password: "password123",
		Role:     domain.RoleFinance,
	}
	existing := &domain.User{UserID: uuid.NewString(), Email: req.Email}

	s.mockUserRepo.On("FindUserByEmail", s.ctx, req.Email).Return(existing, nil).Once()

	user, err := s.service.CreateUser(s.ctx, req, "creator-id")

	s.Require().Error(err)
	s.Nil(user)
	s.ErrorIs(err, apperrors.ErrDuplicate)
	var appErr *apperrors.AppError
	s.Require().ErrorAs(err, &appErr)
	s.Equal(409, appErr.Code)
	s.mockUserRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestCreateUser_InvalidEmail() {
	req := dto.CreateUserRequest{
		Email:    "not-an-email",
		Name:     "Someone",
		Password: "password123",
		Role:     domain.RoleFinance,
	}

	user, err := s.service.CreateUser(s.ctx, req, "creator-id")

	s.Require().Error(err)
	s.Nil(user)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockUserRepo.AssertNotCalled(s.T(), "FindUserByEmail", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestCreateUser_EmployeeWithoutManager() {
	req := dto.CreateUserRequest{
		Email:    "orphan@example.com",
		Name:     "Orphan",
		Password: "password123",
		Role:     domain.RoleEmployee,
	}

	s.mockUserRepo.On("FindUserByEmail", s.ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()

	user, err := s.service.CreateUser(s.ctx, req, "creator-id")

	s.Require().Error(err)
	s.Nil(user)
	s.ErrorIs(err, apperrors.ErrValidation)
	var appErr *apperrors.AppError
	s.Require().ErrorAs(err, &appErr)
	s.Contains(appErr.Message, "must have a manager")
}

func (s *UserServiceTestSuite) TestCreateUser_ManagerIsNotAManager() {
	managerID := uuid.NewString()
	req := dto.CreateUserRequest{
		Email:     "new.employee@example.com",
		Name:      "New Employee",
		Password:  "password123",
		Role:      domain.RoleEmployee,
		ManagerID: &managerID,
	}
	notAManager := &domain.User{UserID: managerID, Role: domain.RoleEmployee, IsActive: true}

	s.mockUserRepo.On("FindUserByEmail", s.ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()
	s.mockUserRepo.On("FindUserByID", s.ctx, managerID).Return(notAManager, nil).Once()

	user, err := s.service.CreateUser(s.ctx, req, "creator-id")

	s.Require().Error(err)
	s.Nil(user)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *UserServiceTestSuite) TestDeactivateUser_Success() {
	userID := uuid.NewString()
	employee := &domain.User{UserID: userID, Role: domain.RoleEmployee, IsActive: true}

	s.mockUserRepo.On("FindUserByID", s.ctx, userID).Return(employee, nil).Once()
	s.mockUserRepo.On("SetUserActive", s.ctx, userID, false, mock.AnythingOfType("time.Time"), "admin-id").Return(nil).Once()

	err := s.service.DeactivateUser(s.ctx, userID, "admin-id")

	s.Require().NoError(err)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestDeactivateUser_AlreadyInactive() {
	userID := uuid.NewString()
	inactive := &domain.User{UserID: userID, Role: domain.RoleEmployee, IsActive: false}

	s.mockUserRepo.On("FindUserByID", s.ctx, userID).Return(inactive, nil).Once()

	err := s.service.DeactivateUser(s.ctx, userID, "admin-id")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockUserRepo.AssertNotCalled(s.T(), "SetUserActive", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestDeactivateUser_ManagerWithActiveSubordinates() {
	managerID := uuid.NewString()
	manager := s.activeManager(managerID)

	s.mockUserRepo.On("FindUserByID", s.ctx, managerID).Return(manager, nil).Once()
	s.mockUserRepo.On("CountActiveSubordinates", s.ctx, managerID).Return(int64(3), nil).Once()

	err := s.service.DeactivateUser(s.ctx, managerID, "admin-id")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	var appErr *apperrors.AppError
	s.Require().ErrorAs(err, &appErr)
	s.Contains(appErr.Message, "3 active subordinate")
	s.mockUserRepo.AssertNotCalled(s.T(), "SetUserActive", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestDeactivateUser_ManagerWithoutSubordinates() {
	managerID := uuid.NewString()
	manager := s.activeManager(managerID)

	s.mockUserRepo.On("FindUserByID", s.ctx, managerID).Return(manager, nil).Once()
	s.mockUserRepo.On("CountActiveSubordinates", s.ctx, managerID).Return(int64(0), nil).Once()
	s.mockUserRepo.On("SetUserActive", s.ctx, managerID, false, mock.AnythingOfType("time.Time"), "admin-id").Return(nil).Once()

	err := s.service.DeactivateUser(s.ctx, managerID, "admin-id")

	s.Require().NoError(err)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestReactivateUser_Success() {
	userID := uuid.NewString()
	inactive := &domain.User{UserID: userID, Role: domain.RoleEmployee, IsActive: false}

	s.mockUserRepo.On("FindUserByID", s.ctx, userID).Return(inactive, nil).Once()
	s.mockUserRepo.On("SetUserActive", s.ctx, userID, true, mock.AnythingOfType("time.Time"), "admin-id").Return(nil).Once()

	err := s.service.ReactivateUser(s.ctx, userID, "admin-id")

	s.Require().NoError(err)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestAuthenticateUser_Success() {
	hash, err := utils.HashPassword("correct-horse")
	s.Require().NoError(err)
	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "user@example.com",
		PasswordHash: hash,
		IsActive:     true,
	}

	s.mockUserRepo.On("FindUserByEmail", s.ctx, user.Email).Return(user, nil).Once()

	got, err := s.service.AuthenticateUser(s.ctx, user.Email, "correct-horse")

	s.Require().NoError(err)
	s.Equal(user.UserID, got.UserID)
}

func (s *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	hash, err := utils.HashPassword("correct-horse")
	s.Require().NoError(err)
	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "user@example.com",
		PasswordHash: hash,
		IsActive:     true,
	}

	s.mockUserRepo.On("FindUserByEmail", s.ctx, user.Email).Return(user, nil).Once()

	got, err := s.service.AuthenticateUser(s.ctx, user.Email, "wrong-password")

	s.Require().Error(err)
	s.Nil(got)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
	var appErr *apperrors.AppError
	s.Require().ErrorAs(err, &appErr)
	s.Equal("invalid email or password", appErr.Message)
}

func (s *UserServiceTestSuite) TestAuthenticateUser_UnknownEmailGetsSameMessage() {
	s.mockUserRepo.On("FindUserByEmail", s.ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	got, err := s.service.AuthenticateUser(s.ctx, "nobody@example.com", "whatever")

	s.Require().Error(err)
	s.Nil(got)
	var appErr *apperrors.AppError
	s.Require().ErrorAs(err, &appErr)
	s.Equal("invalid email or password", appErr.Message, "unknown email and bad password must be indistinguishable")
}

func (s *UserServiceTestSuite) TestAuthenticateUser_DeactivatedAccount() {
	hash, err := utils.HashPassword("correct-horse")
	s.Require().NoError(err)
	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "gone@example.com",
		PasswordHash: hash,
		IsActive:     false,
	}

	s.mockUserRepo.On("FindUserByEmail", s.ctx, user.Email).Return(user, nil).Once()

	got, err := s.service.AuthenticateUser(s.ctx, user.Email, "correct-horse")

	s.Require().Error(err)
	s.Nil(got)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
	var appErr *apperrors.AppError
	s.Require().ErrorAs(err, &appErr)
	s.Equal("account is deactivated", appErr.Message)
}

func (s *UserServiceTestSuite) TestRegisterGoogleUser_AlreadyLinked() {
	info := domain.GoogleUserInfo{ProviderUserID: "google-123", Email: "linked@example.com"}
	user := &domain.User{UserID: uuid.NewString(), Email: info.Email, IsActive: true}

	s.mockUserRepo.On("FindUserByProviderDetails", s.ctx, "google", info.ProviderUserID).Return(user, nil).Once()

	got, err := s.service.RegisterGoogleUser(s.ctx, info)

	s.Require().NoError(err)
	s.Equal(user.UserID, got.UserID)
	s.mockUserRepo.AssertNotCalled(s.T(), "FindUserByEmail", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestRegisterGoogleUser_LinksByEmail() {
	info := domain.GoogleUserInfo{ProviderUserID: "google-123", Email: "existing@example.com"}
	user := &domain.User{UserID: uuid.NewString(), Email: info.Email, IsActive: true}

	s.mockUserRepo.On("FindUserByProviderDetails", s.ctx, "google", info.ProviderUserID).Return(nil, apperrors.ErrNotFound).Once()
	s.mockUserRepo.On("FindUserByEmail", s.ctx, info.Email).Return(user, nil).Once()
	s.mockUserRepo.On("UpdateUser", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.AuthProvider != nil && *u.AuthProvider == "google" &&
			u.ProviderUserID != nil && *u.ProviderUserID == info.ProviderUserID
	})).Return(nil).Once()

	got, err := s.service.RegisterGoogleUser(s.ctx, info)

	s.Require().NoError(err)
	s.Equal(user.UserID, got.UserID)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestRegisterGoogleUser_UnknownIdentityRejected() {
	info := domain.GoogleUserInfo{ProviderUserID: "google-999", Email: "stranger@example.com"}

	s.mockUserRepo.On("FindUserByProviderDetails", s.ctx, "google", info.ProviderUserID).Return(nil, apperrors.ErrNotFound).Once()
	s.mockUserRepo.On("FindUserByEmail", s.ctx, info.Email).Return(nil, apperrors.ErrNotFound).Once()

	got, err := s.service.RegisterGoogleUser(s.ctx, info)

	s.Require().Error(err)
	s.Nil(got)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockUserRepo.AssertNotCalled(s.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func TestUserService_GetUserByID_NotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockDepartmentRepo := new(MockDepartmentRepository)
	svc := services.NewUserService(mockUserRepo, mockDepartmentRepo)
	ctx := context.Background()

	mockUserRepo.On("FindUserByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	user, err := svc.GetUserByID(ctx, "missing")
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
