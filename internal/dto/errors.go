package dto

import (
	"net/http"
	"time"
)

// APIError is the structured error body returned by every endpoint:
// {timestamp, status, error, message, path}. Clients display Message and fall
// back to Error.
type APIError struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// NewAPIError builds the error envelope for the given status and message.
func NewAPIError(status int, message string, path string) APIError {
	return APIError{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      path,
	}
}
