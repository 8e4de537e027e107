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
	"github.com/expensly/expensly_backend/internal/utils"
	"github.com/google/uuid"
)

// userService implements the UserSvcFacade interface.
type userService struct {
	BaseService
	userRepo       portsrepo.UserRepository
	departmentRepo portsrepo.DepartmentRepository
}

// NewUserService creates a new user service with the provided dependencies.
func NewUserService(userRepo portsrepo.UserRepository, departmentRepo portsrepo.DepartmentRepository) portssvc.UserSvcFacade {
	return &userService{
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by email")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, params dto.PageParams) ([]domain.User, int64, error) {
	users, total, err := s.userRepo.FindUsers(ctx, params.Limit(), params.Offset(), params.Sort)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, 0, err
	}
	return users, total, nil
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	if err := s.validateNewUser(ctx, req.Email, req.Role, req.ManagerID, req.DepartmentID); err != nil {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		Role:         req.Role,
		PasswordHash: passwordHash,
		ManagerID:    req.ManagerID,
		DepartmentID: req.DepartmentID,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(creatorUserID, now),
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("user_id", user.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	managerID := req.ManagerID
	create := dto.CreateUserRequest{
		Email:     req.Email,
		Name:      req.Name,
		Password:  req.Password,
		Role:      domain.RoleEmployee,
		ManagerID: &managerID,
	}
	// Self-registration: the new user is their own audit creator.
	userID := uuid.NewString()
	if err := s.validateNewUser(ctx, create.Email, create.Role, create.ManagerID, nil); err != nil {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(create.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       userID,
		Email:        create.Email,
		Name:         create.Name,
		Role:         domain.RoleEmployee,
		PasswordHash: passwordHash,
		ManagerID:    create.ManagerID,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(userID, now),
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save registered user", slog.String("user_id", user.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// RegisterGoogleUser links a verified Google identity to an existing account.
// Accounts are provisioned by finance, so an unknown identity is rejected
// rather than auto-created.
func (s *userService) RegisterGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	user, err := s.userRepo.FindUserByProviderDetails(ctx, "google", info.ProviderUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up user by provider details")
		return nil, err
	}

	user, err = s.userRepo.FindUserByEmail(ctx, info.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(http.StatusForbidden,
				"no account exists for this Google identity; ask a finance user to create one", apperrors.ErrForbidden)
		}
		s.LogError(ctx, err, "Failed to look up user by email for Google link")
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.NewAppError(http.StatusForbidden, "account is deactivated", apperrors.ErrForbidden)
	}

	provider := "google"
	providerUserID := info.ProviderUserID
	user.AuthProvider = &provider
	user.ProviderUserID = &providerUserID
	user.Touch(user.UserID, time.Now())
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to link Google identity", slog.String("user_id", user.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "Google identity linked", slog.String("user_id", user.UserID))
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.ManagerID != nil {
		user.ManagerID = req.ManagerID
	}
	if req.DepartmentID != nil {
		user.DepartmentID = req.DepartmentID
	}

	if user.Role == domain.RoleEmployee && user.ManagerID == nil {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "an employee must have a manager", apperrors.ErrValidation)
	}
	if user.ManagerID != nil {
		if err := s.validateManager(ctx, *user.ManagerID); err != nil {
			return nil, err
		}
	}
	if user.DepartmentID != nil {
		if _, err := s.departmentRepo.FindDepartmentByID(ctx, *user.DepartmentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewAppError(http.StatusBadRequest, "department does not exist", apperrors.ErrValidation)
			}
			return nil, err
		}
	}

	user.Touch(requestingUserID, time.Now())
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "User updated", slog.String("user_id", userID))
	return user, nil
}

func (s *userService) DeactivateUser(ctx context.Context, userID string, requestingUserID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsActive {
		return apperrors.NewAppError(http.StatusConflict, "user is already deactivated", apperrors.ErrConflict)
	}

	if user.Role == domain.RoleManager {
		count, err := s.userRepo.CountActiveSubordinates(ctx, userID)
		if err != nil {
			s.LogError(ctx, err, "Failed to count subordinates", slog.String("user_id", userID))
			return err
		}
		if count > 0 {
			return apperrors.NewAppError(http.StatusConflict,
				fmt.Sprintf("cannot deactivate manager: %d active subordinate employees still report to them", count),
				apperrors.ErrConflict)
		}
	}

	if err := s.userRepo.SetUserActive(ctx, userID, false, time.Now(), requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate user", slog.String("user_id", userID))
		return err
	}

	s.LogInfo(ctx, "User deactivated", slog.String("user_id", userID))
	return nil
}

func (s *userService) ReactivateUser(ctx context.Context, userID string, requestingUserID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsActive {
		return apperrors.NewAppError(http.StatusConflict, "user is already active", apperrors.ErrConflict)
	}

	if err := s.userRepo.SetUserActive(ctx, userID, true, time.Now(), requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to reactivate user", slog.String("user_id", userID))
		return err
	}

	s.LogInfo(ctx, "User reactivated", slog.String("user_id", userID))
	return nil
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(http.StatusUnauthorized, "invalid email or password", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to find user for authentication")
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "invalid email or password", apperrors.ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "account is deactivated", apperrors.ErrUnauthorized)
	}
	return user, nil
}

func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}

// validateNewUser enforces the invariants of a fresh account: valid unique
// email, a manager for employees and existing references.
func (s *userService) validateNewUser(ctx context.Context, email string, role domain.UserRole, managerID, departmentID *string) error {
	if err := validation.Email(email); err != nil {
		return apperrors.NewAppError(http.StatusBadRequest, err.Error(), apperrors.ErrValidation)
	}

	_, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return apperrors.NewAppError(http.StatusConflict, "a user with this email already exists", apperrors.ErrDuplicate)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	if role == domain.RoleEmployee && managerID == nil {
		return apperrors.NewAppError(http.StatusBadRequest, "an employee must have a manager", apperrors.ErrValidation)
	}
	if managerID != nil {
		if err := s.validateManager(ctx, *managerID); err != nil {
			return err
		}
	}
	if departmentID != nil {
		if _, err := s.departmentRepo.FindDepartmentByID(ctx, *departmentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewAppError(http.StatusBadRequest, "department does not exist", apperrors.ErrValidation)
			}
			return err
		}
	}
	return nil
}

func (s *userService) validateManager(ctx context.Context, managerID string) error {
	manager, err := s.userRepo.FindUserByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewAppError(http.StatusBadRequest, "manager does not exist", apperrors.ErrValidation)
		}
		return err
	}
	if manager.Role != domain.RoleManager {
		return apperrors.NewAppError(http.StatusBadRequest, "referenced manager does not have the MANAGER role", apperrors.ErrValidation)
	}
	if !manager.IsActive {
		return apperrors.NewAppError(http.StatusBadRequest, "referenced manager is deactivated", apperrors.ErrValidation)
	}
	return nil
}
