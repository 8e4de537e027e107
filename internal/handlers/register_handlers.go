package handlers

import (
	"github.com/expensly/expensly_backend/cmd/docs"
	"github.com/expensly/expensly_backend/internal/core/domain"
	portssvc "github.com/expensly/expensly_backend/internal/core/ports/services"
	"github.com/expensly/expensly_backend/internal/middleware"
	"github.com/expensly/expensly_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services)
	registerGoogleOAuthRoutes(r, cfg, services)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Per-group role gates mirror the navigation allow-sets; the menu hides
	// what a role cannot reach, these middlewares enforce it.
	registerNavigationRoutes(v1)
	registerUserRoutes(v1, services.User)
	registerExpenseRoutes(v1, services.Expense)
	registerDepartmentRoutes(v1, services.Department)
	registerCategoryRoutes(v1, services.Category)
	registerCurrencyRoutes(v1, services.Currency)
	registerAlertRoutes(v1, services.Alert)
	registerReportingRoutes(v1, services.Reporting)
}

// financeOnly gates a route group to the finance role.
func financeOnly() gin.HandlerFunc {
	return middleware.RequireRoles(domain.RoleFinance)
}

// reviewerOnly gates a route group to the reviewing roles.
func reviewerOnly() gin.HandlerFunc {
	return middleware.RequireRoles(domain.RoleManager, domain.RoleFinance)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
