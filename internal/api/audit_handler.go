/*
Package api - Seniority Integration Engine HTTP API Handlers

==============================================================================
FILE: internal/api/audit_handler.go
==============================================================================

DESCRIPTION:
    Handles all audit log related endpoints: viewing logs, login attempts,
    login history, active sessions, and activity statistics.

USER PERSPECTIVE:
    - View detailed audit logs of all system activity
    - Track login attempts (successful and failed)
    - Monitor active user sessions
    - View user activity statistics

DEVELOPER GUIDELINES:
    OK to modify: Add new audit-related endpoints
    CAUTION: Access control - only admins should see all logs
    DO NOT modify: Core audit log structure

ENDPOINTS:
    GET  /audit/logs - Get audit logs with filters (admin only)
    GET  /audit/login-attempts - Get login attempts (admin only)
    GET  /audit/login-history - Get login history (admin or self)
    GET  /audit/active-sessions - Get active sessions (admin or self)
    GET  /audit/stats - Get activity statistics (admin only)
    GET  /audit/user/:user_id/stats - Get user activity stats (admin or self)

==============================================================================
*/
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mergeops/seniority-engine/internal/middleware"
	"github.com/mergeops/seniority-engine/internal/services"
)

// AuditHandler handles audit log endpoints
type AuditHandler struct {
	auditService *services.AuditService
	authService  *services.AuthService
}

// NewAuditHandler creates new audit handler
func NewAuditHandler(auditService *services.AuditService, authService *services.AuthService) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		authService:  authService,
	}
}

// RegisterRoutes registers audit routes
func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	authMiddleware := middleware.NewAuthMiddleware(h.authService)
	adminMiddleware := middleware.NewRoleMiddleware("admin")

	audit := router.Group("/audit")
	audit.Use(authMiddleware.RequireAuth())
	{
		audit.GET("/logs", adminMiddleware.RequireRole(), h.GetAuditLogs)
		audit.GET("/login-attempts", adminMiddleware.RequireRole(), h.GetLoginAttempts)
		audit.GET("/stats", adminMiddleware.RequireRole(), h.GetGlobalStats)

		audit.GET("/login-history", h.GetLoginHistory)
		audit.GET("/active-sessions", h.GetActiveSessions)
		audit.GET("/user/:user_id/stats", h.GetUserStats)
	}
}

// GetAuditLogs retrieves audit logs with filters
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}

	filters := make(map[string]interface{})
	if userID := c.Query("user_id"); userID != "" {
		filters["user_id"] = userID
	}
	if email := c.Query("email"); email != "" {
		filters["email"] = email
	}
	if eventType := c.Query("event_type"); eventType != "" {
		filters["event_type"] = eventType
	}
	if successStr := c.Query("success"); successStr != "" {
		success, _ := strconv.ParseBool(successStr)
		filters["success"] = success
	}
	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse(time.RFC3339, startDateStr); err == nil {
			filters["start_date"] = startDate
		}
	}
	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse(time.RFC3339, endDateStr); err == nil {
			filters["end_date"] = endDate
		}
	}

	logs, total, err := h.auditService.GetAuditLogs(filters, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve audit logs", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": logs,
		"pagination": gin.H{
			"page": page, "page_size": pageSize, "total": total,
			"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

// GetLoginAttempts retrieves login attempts
func (h *AuditHandler) GetLoginAttempts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}

	attempts, total, err := h.auditService.GetLoginAttempts(page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve login attempts", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": attempts,
		"pagination": gin.H{
			"page": page, "page_size": pageSize, "total": total,
			"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

// GetLoginHistory retrieves login history for the caller, or any user if admin
func (h *AuditHandler) GetLoginHistory(c *gin.Context) {
	currentUserID, _, _, err := middleware.GetUserFromContext(c)
	role := middleware.GetUserRoleFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "user not authenticated"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}

	var targetUserID *uuid.UUID
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		if role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": "you can only view your own login history"})
			return
		}
		parsedID, err := uuid.Parse(userIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id", "message": err.Error()})
			return
		}
		targetUserID = &parsedID
	} else {
		targetUserID = &currentUserID
	}

	history, total, err := h.auditService.GetLoginHistory(targetUserID, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve login history", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": history,
		"pagination": gin.H{
			"page": page, "page_size": pageSize, "total": total,
			"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

// GetActiveSessions retrieves active sessions for the caller, or any user if admin
func (h *AuditHandler) GetActiveSessions(c *gin.Context) {
	currentUserID, _, _, err := middleware.GetUserFromContext(c)
	role := middleware.GetUserRoleFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "user not authenticated"})
		return
	}

	var targetUserID *uuid.UUID
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		if role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": "you can only view your own active sessions"})
			return
		}
		parsedID, err := uuid.Parse(userIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id", "message": err.Error()})
			return
		}
		targetUserID = &parsedID
	} else {
		targetUserID = &currentUserID
	}

	sessions, err := h.auditService.GetActiveSessions(targetUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve active sessions", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sessions})
}

// GetGlobalStats retrieves global login-attempt statistics
func (h *AuditHandler) GetGlobalStats(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days < 1 || days > 365 {
		days = 30
	}

	stats, err := h.auditService.GetLoginAttemptsStats(days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve statistics", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetUserStats retrieves activity statistics for one user
func (h *AuditHandler) GetUserStats(c *gin.Context) {
	currentUserID, _, _, err := middleware.GetUserFromContext(c)
	role := middleware.GetUserRoleFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "user not authenticated"})
		return
	}

	userIDStr := c.Param("user_id")
	targetUserID, err := uuid.Parse(userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id", "message": err.Error()})
		return
	}

	if role != "admin" && currentUserID != targetUserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": "you can only view your own statistics"})
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days < 1 || days > 365 {
		days = 30
	}

	stats, err := h.auditService.GetUserActivityStats(targetUserID, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve user statistics", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
