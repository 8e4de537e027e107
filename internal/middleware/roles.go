package middleware

import (
	"net/http"

	"github.com/expensly/expensly_backend/internal/core/domain"
	"github.com/expensly/expensly_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// RequireRoles creates a middleware that only lets callers with one of the
// given roles through. It must run after AuthMiddleware. These per-route
// allow-sets mirror the navigation table: the menu hides what a role cannot
// reach, this middleware enforces it.
func RequireRoles(roles ...domain.UserRole) gin.HandlerFunc {
	allowed := make(map[domain.UserRole]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role, ok := GetUserRoleFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewAPIError(http.StatusUnauthorized, "Unauthorized", c.Request.URL.Path))
			return
		}
		if !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewAPIError(http.StatusForbidden, "You do not have permission to perform this action", c.Request.URL.Path))
			return
		}
		c.Next()
	}
}
