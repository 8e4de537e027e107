package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/expensly/expensly_backend/internal/apperrors"
	"github.com/expensly/expensly_backend/internal/dto"
	"github.com/expensly/expensly_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError translates a service error into the API error envelope.
// AppError messages are written for end users and pass through verbatim;
// bare sentinels get a generic message per status; anything else is a 500
// that never leaks internals.
func respondError(c *gin.Context, err error) {
	path := c.Request.URL.Path

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, dto.NewAPIError(appErr.Code, appErr.Message, path))
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewAPIError(http.StatusNotFound, "Resource not found", path))
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.NewAPIError(http.StatusBadRequest, "Invalid input", path))
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, dto.NewAPIError(http.StatusConflict, "Resource already exists", path))
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, apperrors.ErrRefreshTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.NewAPIError(http.StatusUnauthorized, "Unauthorized", path))
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewAPIError(http.StatusForbidden, "You do not have permission to perform this action", path))
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrWorkflowViolation):
		c.JSON(http.StatusConflict, dto.NewAPIError(http.StatusConflict, "Resource conflict", path))
	default:
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewAPIError(http.StatusInternalServerError, "An unexpected error occurred", path))
	}
}

// respondBindError reports a request binding failure.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewAPIError(http.StatusBadRequest, "Invalid request: "+err.Error(), c.Request.URL.Path))
}

// mustUserID pulls the authenticated user ID from the context, failing the
// request when the auth middleware did not run.
func mustUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewAPIError(http.StatusUnauthorized, "Unauthorized", c.Request.URL.Path))
		return "", false
	}
	return userID, true
}
