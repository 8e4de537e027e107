package handlers

import (
	"net/http"

	"github.com/expensly/expensly_backend/internal/core/domain"
	"github.com/expensly/expensly_backend/internal/dto"
	"github.com/expensly/expensly_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// registerNavigationRoutes registers the navigation menu endpoint.
func registerNavigationRoutes(rg *gin.RouterGroup) {
	rg.GET("/navigation", getNavigation)
}

// getNavigation godoc
// @Summary Navigation menu for the caller
// @Description Returns the ordered navigation entries visible to the caller's role. The same allow-sets gate the corresponding API routes.
// @Tags navigation
// @Produce json
// @Success 200 {object} dto.NavigationResponse
// @Failure 401 {object} dto.APIError
// @Security BearerAuth
// @Router /navigation [get]
func getNavigation(c *gin.Context) {
	role, ok := middleware.GetUserRoleFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewAPIError(http.StatusUnauthorized, "Unauthorized", c.Request.URL.Path))
		return
	}
	c.JSON(http.StatusOK, dto.ToNavigationResponse(role, domain.MenuForRole(role)))
}
