package dto

import "time"

// RegisterRequest defines data for self-service registration. Registered users
// always start as employees reporting to the given manager.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Name      string `json:"name" binding:"required,max=100"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	ManagerID string `json:"managerID" binding:"required,uuid"`
}

// LoginRequest defines login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token; the refresh token travels in
// an HTTP-only cookie.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// RefreshResponse carries a freshly rotated access token.
type RefreshResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
