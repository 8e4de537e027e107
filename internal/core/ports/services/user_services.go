package services

import (
	"context"
	"time"

	"github.com/expensly/expensly_backend/internal/core/domain"
	"github.com/expensly/expensly_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves a page of users with the total match count.
	ListUsers(ctx context.Context, params dto.PageParams) ([]domain.User, int64, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// CreateUser creates a new user on behalf of a finance user.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)

	// RegisterUser creates a self-registered employee account.
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// RegisterGoogleUser creates or links an employee account from a verified
	// Google identity.
	RegisterGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)

	// UpdateUser updates an existing user.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)

	// UpdateRefreshToken stores refresh token state for a user.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken clears refresh token state for a user.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserLifecycleSvc defines activation lifecycle operations. Users are never
// hard-deleted; deactivation is the soft delete.
type UserLifecycleSvc interface {
	// DeactivateUser marks a user inactive. Deactivating a manager who still
	// has active subordinates is rejected.
	DeactivateUser(ctx context.Context, userID string, requestingUserID string) error

	// ReactivateUser marks a previously deactivated user active again.
	ReactivateUser(ctx context.Context, userID string, requestingUserID string) error
}

// UserAuthSvc defines operations for user authentication.
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with email and password.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
	UserAuthSvc
}
