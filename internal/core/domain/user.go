package domain

import "time"

// UserRole is the single application-wide role of a user. It drives both the
// review workflow and which parts of the application a user can reach.
type UserRole string

const (
	RoleEmployee UserRole = "EMPLOYEE"
	RoleManager  UserRole = "MANAGER"
	RoleFinance  UserRole = "FINANCE"
)

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleFinance:
		return true
	}
	return false
}

// User represents a user of the application in the domain.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Email        string   `json:"email"`  // Unique
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	PasswordHash string   `json:"-"`
	ManagerID    *string  `json:"managerID,omitempty"`    // Required for EMPLOYEE role
	DepartmentID *string  `json:"departmentID,omitempty"` // Optional department membership
	IsActive     bool     `json:"isActive"`
	AuditFields

	// Refresh token state, only populated for auth flows.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	// External auth provider details (e.g. "google"), empty for password users.
	AuthProvider   *string `json:"-"`
	ProviderUserID *string `json:"-"`
}
