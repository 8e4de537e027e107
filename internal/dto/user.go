package dto

import (
	"time"

	"github.com/expensly/expensly_backend/internal/core/domain"
)

// CreateUserRequest defines data for creating a user (a finance-role action).
type CreateUserRequest struct {
	Email        string          `json:"email" binding:"required,email,max=254"`
	Name         string          `json:"name" binding:"required,max=100"`
	Password     string          `json:"password" binding:"required,min=8,max=72"`
	Role         domain.UserRole `json:"role" binding:"required,oneof=EMPLOYEE MANAGER FINANCE"`
	ManagerID    *string         `json:"managerID"`
	DepartmentID *string         `json:"departmentID"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Pointers differentiate omitted fields from zero values.
type UpdateUserRequest struct {
	Name         *string          `json:"name" binding:"omitempty,max=100"`
	Role         *domain.UserRole `json:"role" binding:"omitempty,oneof=EMPLOYEE MANAGER FINANCE"`
	ManagerID    *string          `json:"managerID"`
	DepartmentID *string          `json:"departmentID"`
}

// UserResponse defines the user fields exposed over the API.
type UserResponse struct {
	UserID       string          `json:"userID"`
	Email        string          `json:"email"`
	Name         string          `json:"name"`
	Role         domain.UserRole `json:"role"`
	ManagerID    *string         `json:"managerID,omitempty"`
	DepartmentID *string         `json:"departmentID,omitempty"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its API representation.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		ManagerID:    u.ManagerID,
		DepartmentID: u.DepartmentID,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

// ToUserPage converts a slice of users plus a total into the page envelope.
func ToUserPage(users []domain.User, params PageParams, total int64) Page[UserResponse] {
	content := make([]UserResponse, len(users))
	for i := range users {
		content[i] = ToUserResponse(&users[i])
	}
	return NewPage(content, params, total)
}
