/*
Package api - Seniority Integration Engine HTTP API Handlers

==============================================================================
FILE: internal/api/scenario_handler.go
==============================================================================

DESCRIPTION:
    Handles scenario run endpoints: create a scenario against the current
    roster, run it through internal/engine, inspect its status, and export
    or report on a completed run's results.

USER PERSPECTIVE:
    - Create a scenario describing job-count ramps and conditions
    - Run it and poll status until done or failed
    - Download the long-form Excel export or a one-page PDF summary

DEVELOPER GUIDELINES:
    OK to modify: Add new scenario-related endpoints
    CAUTION: Export/report endpoints re-run the engine rather than read a
        persisted long form - ResultSummary only stores the compact shape
    All scenario operations are scoped to the caller's carrier

ENDPOINTS:
    GET    /scenarios - List scenario runs
    GET    /scenarios/:id - Get a scenario run's status/summary
    POST   /scenarios - Create a scenario
    POST   /scenarios/:id/run - Run (or re-run) a scenario
    DELETE /scenarios/:id - Delete a scenario run
    GET    /scenarios/:id/export - Download the long-form Excel export
    GET    /scenarios/:id/report - Download a one-page PDF summary

==============================================================================
*/
package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/mergeops/seniority-engine/internal/errors"
	"github.com/mergeops/seniority-engine/internal/dtos"
	"github.com/mergeops/seniority-engine/internal/middleware"
	"github.com/mergeops/seniority-engine/internal/services"
)

// ScenarioHandler handles scenario run endpoints
type ScenarioHandler struct {
	scenarioService *services.ScenarioService
	reportService   *services.ReportService
	exportService   *services.ResultsExportService
}

// NewScenarioHandler creates a new scenario handler
func NewScenarioHandler(scenarioService *services.ScenarioService, reportService *services.ReportService, exportService *services.ResultsExportService) *ScenarioHandler {
	return &ScenarioHandler{
		scenarioService: scenarioService,
		reportService:   reportService,
		exportService:   exportService,
	}
}

// RegisterRoutes registers scenario routes
func (h *ScenarioHandler) RegisterRoutes(router *gin.RouterGroup) {
	scenarios := router.Group("/scenarios")
	{
		scenarios.GET("", h.ListScenarios)
		scenarios.GET("/:id", h.GetScenario)
		scenarios.POST("", h.CreateScenario)
		scenarios.POST("/:id/run", h.RunScenario)
		scenarios.DELETE("/:id", h.DeleteScenario)
		scenarios.GET("/:id/export", h.ExportScenario)
		scenarios.GET("/:id/report", h.ReportScenario)
	}
}

// ListScenarios handles scenario run listing
// @Summary List scenario runs
// @Tags Scenarios
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} dtos.ScenarioListResponse
// @Router /scenarios [get]
func (h *ScenarioHandler) ListScenarios(c *gin.Context) {
	_, _, carrierID, err := middleware.GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "user not authenticated"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	scenarios, total, err := h.scenarioService.ListScenarios(carrierID, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "message": err.Error()})
		return
	}

	data := make([]dtos.ScenarioResponse, len(scenarios))
	for i := range scenarios {
		data[i] = h.scenarioService.ConvertToResponse(&scenarios[i])
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	c.JSON(http.StatusOK, dtos.ScenarioListResponse{
		Data: data, Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages,
	})
}

// GetScenario handles getting a scenario run's status/summary
// @Summary Get scenario run
// @Tags Scenarios
// @Security BearerAuth
// @Param id path string true "Scenario ID"
// @Success 200 {object} dtos.ScenarioResponse
// @Router /scenarios/{id} [get]
func (h *ScenarioHandler) GetScenario(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID", "message": "invalid scenario ID format"})
		return
	}

	scenario, err := h.scenarioService.GetScenario(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found", "message": "scenario run not found"})
		return
	}

	response := h.scenarioService.ConvertToResponse(scenario)
	c.JSON(http.StatusOK, gin.H{
		"scenario":       response,
		"result_summary": scenario.ResultSummary,
	})
}

// CreateScenario handles scenario creation
// @Summary Create scenario
// @Tags Scenarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dtos.CreateScenarioRequest true "Scenario configuration"
// @Success 201 {object} dtos.ScenarioResponse
// @Router /scenarios [post]
func (h *ScenarioHandler) CreateScenario(c *gin.Context) {
	userID, _, carrierID, err := middleware.GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "user not authenticated"})
		return
	}

	var req dtos.CreateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation Error", "message": err.Error()})
		return
	}

	scenario, err := h.scenarioService.CreateScenario(carrierID, req, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Scenario Creation Failed", "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, h.scenarioService.ConvertToResponse(scenario))
}

// RunScenario handles running (or re-running) a scenario
// @Summary Run scenario
// @Tags Scenarios
// @Security BearerAuth
// @Param id path string true "Scenario ID"
// @Success 200 {object} dtos.ScenarioResponse
// @Failure 422 {object} map[string]string
// @Router /scenarios/{id}/run [post]
func (h *ScenarioHandler) RunScenario(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID", "message": "invalid scenario ID format"})
		return
	}

	_, err = h.scenarioService.RunScenario(id)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.Code, "message": appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Scenario Run Failed", "message": err.Error()})
		return
	}

	scenario, err := h.scenarioService.GetScenario(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.scenarioService.ConvertToResponse(scenario))
}

// DeleteScenario handles scenario deletion
// @Summary Delete scenario
// @Tags Scenarios
// @Security BearerAuth
// @Param id path string true "Scenario ID"
// @Success 200 {object} map[string]string
// @Router /scenarios/{id} [delete]
func (h *ScenarioHandler) DeleteScenario(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID", "message": "invalid scenario ID format"})
		return
	}

	if err := h.scenarioService.DeleteScenario(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Scenario Deletion Failed", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "scenario run deleted successfully"})
}

// ExportScenario re-runs a completed scenario's engine invocation and
// streams the long-form Excel export. The long form is not persisted, so
// this recomputes it from the same Config and current roster.
// @Summary Export scenario long form
// @Tags Scenarios
// @Security BearerAuth
// @Param id path string true "Scenario ID"
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /scenarios/{id}/export [get]
func (h *ScenarioHandler) ExportScenario(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID", "message": "invalid scenario ID format"})
		return
	}

	result, err := h.scenarioService.RunScenario(id)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.Code, "message": appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Export Failed", "message": err.Error()})
		return
	}

	data, err := h.exportService.ExportLongForm(result)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Export Failed", "message": err.Error()})
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=scenario_results.xlsx")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ReportScenario re-runs a completed scenario's engine invocation and
// streams a one-page PDF summary.
// @Summary Scenario PDF summary
// @Tags Scenarios
// @Security BearerAuth
// @Param id path string true "Scenario ID"
// @Produce application/pdf
// @Success 200 {file} binary
// @Router /scenarios/{id}/report [get]
func (h *ScenarioHandler) ReportScenario(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID", "message": "invalid scenario ID format"})
		return
	}

	scenario, err := h.scenarioService.GetScenario(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found", "message": "scenario run not found"})
		return
	}

	result, err := h.scenarioService.RunScenario(id)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.Code, "message": appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Report Failed", "message": err.Error()})
		return
	}

	summary := h.reportService.Summarize(scenario.Name, result)
	pdfBytes, err := h.reportService.GeneratePDF(summary)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Report Failed", "message": err.Error()})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=scenario_summary.pdf")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
