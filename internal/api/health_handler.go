/*
Package api - Seniority Integration Engine HTTP API Handlers

==============================================================================
FILE: internal/api/health_handler.go
==============================================================================

DESCRIPTION:
    Handles health check endpoints for monitoring and container orchestration.
    Provides liveness, readiness, and general health status.

USER PERSPECTIVE:
    - Not user-facing - used by infrastructure
    - Kubernetes/Docker health checks
    - Load balancer health monitoring

DEVELOPER GUIDELINES:
    ✅  OK to modify: Add more health checks (Redis, etc.)
    ⚠️  CAUTION: ReadyCheck database ping and stuck-run threshold
    ❌  DO NOT modify: Response format (breaks monitoring)
    📝  Keep health checks lightweight and fast

SYNTAX EXPLANATION:
    - HealthCheck: Basic "is the service running" check
    - ReadyCheck: "Is the service ready to handle requests", including
      whether any scenario run is stuck in "running" past stuckRunAfter
    - LivenessCheck: "Is the process alive" (for restart decisions)

ENDPOINTS:
    GET /health - General health status
    GET /ready - Database connectivity check
    GET /live - Process liveness check

KUBERNETES USAGE:
    livenessProbe:
      httpGet:
        path: /api/v1/live
    readinessProbe:
      httpGet:
        path: /api/v1/ready

==============================================================================
*/
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mergeops/seniority-engine/internal/repositories"
)

// stuckRunAfter is how long a scenario run can sit in "running" before
// /ready treats it as evidence of a crashed engine invocation.
const stuckRunAfter = 10 * time.Minute

type HealthHandler struct {
	db           *gorm.DB
	scenarioRepo *repositories.ScenarioRepository
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db, scenarioRepo: repositories.NewScenarioRepository(db)}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"service":   "seniority-engine",
	})
}

func (h *HealthHandler) ReadyCheck(c *gin.Context) {
	// Check database connection
	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"database": "unavailable",
		})
		return
	}

	stuck, err := h.scenarioRepo.CountStuckRunning(stuckRunAfter)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "not ready",
			"database": "available",
			"engine":   "unknown",
		})
		return
	}
	if stuck > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":            "not ready",
			"database":          "available",
			"engine":            "degraded",
			"stuck_scenario_runs": stuck,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"database": "available",
		"engine":   "available",
	})
}

func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "live",
	})
}
