package repositories

import (
	"context"
	"time"

	"github.com/expensly/expensly_backend/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a user by ID regardless of active flag.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their unique email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByProviderDetails retrieves a user by external auth provider identity.
	FindUserByProviderDetails(ctx context.Context, authProvider string, providerUserID string) (*domain.User, error)

	// FindUsers retrieves a page of users ordered by sort, with the total count.
	FindUsers(ctx context.Context, limit, offset int, sort string) ([]domain.User, int64, error)

	// CountActiveSubordinates counts active users managed by the given manager.
	CountActiveSubordinates(ctx context.Context, managerID string) (int64, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates a user's mutable fields.
	UpdateUser(ctx context.Context, user domain.User) error

	// SetUserActive flips the active flag (deactivate / reactivate).
	SetUserActive(ctx context.Context, userID string, active bool, updatedAt time.Time, updatedBy string) error

	// UpdateRefreshToken stores the hash and expiry of a user's refresh token.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken removes a user's refresh token state.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserRepository combines all user persistence operations.
type UserRepository interface {
	UserReader
	UserWriter
}
