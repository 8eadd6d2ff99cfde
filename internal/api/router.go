/*
Package api - Seniority Integration Engine HTTP API Handlers

==============================================================================
FILE: internal/api/router.go
==============================================================================

DESCRIPTION:
    Central routing configuration for the seniority integration engine API.
    Sets up all endpoints, middleware chains, and service dependencies.

USER PERSPECTIVE:
    - This file defines all available API endpoints
    - Determines which routes require authentication
    - Sets up role-based access control for admin features

DEVELOPER GUIDELINES:
    OK to modify: Add new route groups, new handlers
    CAUTION: Changing existing route paths (breaks frontend)
    DO NOT modify: Authentication middleware order
    Follow RESTful conventions for new endpoints

SYNTAX EXPLANATION:
    - Router struct: Holds dependencies for handler creation
    - Setup(): Called from main.go to configure all routes
    - gin.RouterGroup: Groups routes with shared prefix/middleware
    - protected.Use(): Applies middleware to all routes in group

ROUTE STRUCTURE:
    /api/v1
    ├── /health (no auth)
    ├── /auth/* (mixed auth)
    ├── /employees/* (auth required - roster management)
    ├── /scenarios/* (auth required - engine runs)
    ├── /users/* (admin only)
    └── /audit/* (admin, or self for history/sessions)

==============================================================================
*/
package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mergeops/seniority-engine/internal/config"
	"github.com/mergeops/seniority-engine/internal/middleware"
	"github.com/mergeops/seniority-engine/internal/repositories"
	"github.com/mergeops/seniority-engine/internal/services"
)

// Router sets up all API routes
type Router struct {
	db          *gorm.DB
	appConfig   *config.AppConfig
	authService *services.AuthService
}

// NewRouter creates a new router
func NewRouter(db *gorm.DB, appConfig *config.AppConfig) *Router {
	authService := services.NewAuthService(db, appConfig)
	return &Router{
		db:          db,
		appConfig:   appConfig,
		authService: authService,
	}
}

// Setup configures all routes
func (r *Router) Setup(routerGroup *gin.RouterGroup) {
	if r.appConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Apply security headers to all routes
	securityMiddleware := middleware.NewSecurityMiddleware(r.appConfig)
	routerGroup.Use(securityMiddleware.Headers())

	// Apply CSRF protection to all routes
	csrfMiddleware := middleware.NewCSRFMiddleware(r.appConfig)
	routerGroup.Use(csrfMiddleware.Protect())

	// Health check endpoint
	healthHandler := NewHealthHandler(r.db)
	routerGroup.GET("/health", healthHandler.HealthCheck)
	routerGroup.GET("/ready", healthHandler.ReadyCheck)
	routerGroup.GET("/live", healthHandler.LivenessCheck)

	api := routerGroup.Group("")
	api.Use(middleware.APIRateLimiter(r.appConfig).Limit())
	{
		// Audit service backs both login-attempt logging in auth and the
		// audit log endpoints below
		auditService := services.NewAuditService(r.db)

		// Authentication routes (no auth required), with the stricter
		// rate limit applied against credential-stuffing attempts
		authGroup := api.Group("")
		authGroup.Use(middleware.AuthRateLimiter(r.appConfig).Limit())
		authHandler := NewAuthHandler(r.authService, auditService, r.appConfig)
		authHandler.RegisterRoutes(authGroup)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.NewAuthMiddleware(r.authService).RequireAuth())
		{
			// Roster (Employee) Routes
			employeeService := services.NewEmployeeService(r.db)
			employeeHandler := NewEmployeeHandler(employeeService)
			employeeHandler.RegisterRoutes(protected)

			// Scenario Routes - the engine's persistence/API surface
			scenarioRepo := repositories.NewScenarioRepository(r.db)
			reportService := services.NewReportService()
			exportService := services.NewResultsExportService()
			scenarioService := services.NewScenarioService(scenarioRepo, employeeService, reportService)
			scenarioHandler := NewScenarioHandler(scenarioService, reportService, exportService)
			scenarioHandler.RegisterRoutes(protected)

			// Audit Log Routes (Admin can see all, users can see their own)
			auditHandler := NewAuditHandler(auditService, r.authService)
			auditHandler.RegisterRoutes(protected)

			// Admin only routes - User Management
			userService := services.NewUserService(r.db)
			userHandler := NewUserHandler(userService, r.authService)
			userHandler.RegisterRoutes(protected, middleware.NewAuthMiddleware(r.authService))
		}
	}
}
