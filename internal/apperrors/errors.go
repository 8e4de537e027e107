package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid authentication.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the authenticated user is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the resource changed underneath the caller (stale state).
var ErrConflict = errors.New("resource conflict")

// ErrWorkflowViolation indicates an expense review action that the status
// transition table does not permit for the acting role.
var ErrWorkflowViolation = errors.New("workflow transition not allowed")

// ErrRefreshTokenExpired indicates the presented refresh token is no longer valid.
var ErrRefreshTokenExpired = errors.New("refresh token expired")
