/*
Package api - Seniority Integration Engine HTTP API Handlers

==============================================================================
FILE: internal/api/employee_handler.go
==============================================================================

DESCRIPTION:
    Handles roster entry endpoints: CRUD operations and bulk import/export
    of the short-form employee list a scenario run is built from.

USER PERSPECTIVE:
    - View, create, edit, and delete roster entries
    - Bulk import a roster from Excel/CSV
    - Download the import template

DEVELOPER GUIDELINES:
    OK to modify: Add new roster-related endpoints
    CAUTION: Keep import template column order in sync with the service
    All roster operations are scoped to the caller's carrier

ENDPOINTS:
    GET    /employees - List roster entries with pagination/filters
    GET    /employees/:id - Get a roster entry
    POST   /employees - Create a roster entry
    PUT    /employees/:id - Update a roster entry
    DELETE /employees/:id - Delete a roster entry
    POST   /employees/import - Bulk import from file
    GET    /employees/import/template - Download import template

==============================================================================
*/
package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mergeops/seniority-engine/internal/dtos"
	"github.com/mergeops/seniority-engine/internal/middleware"
	"github.com/mergeops/seniority-engine/internal/services"
)

// EmployeeHandler handles roster entry endpoints
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates new employee handler
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// RegisterRoutes registers roster routes
func (h *EmployeeHandler) RegisterRoutes(router *gin.RouterGroup) {
	employees := router.Group("/employees")
	{
		employees.GET("", h.ListEmployees)
		employees.GET("/:id", h.GetEmployee)
		employees.POST("", h.CreateEmployee)
		employees.PUT("/:id", h.UpdateEmployee)
		employees.DELETE("/:id", h.DeleteEmployee)
		employees.POST("/import", h.ImportEmployees)
		employees.GET("/import/template", h.DownloadTemplate)
	}
}

// ListEmployees handles roster listing
// @Summary List roster entries
// @Description Get paginated list of roster entries with filtering
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param search query string false "Search term"
// @Param eg query int false "Employee group filter"
// @Param sg query int false "Sub-group filter"
// @Success 200 {object} dtos.EmployeeListResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /employees [get]
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	var req dtos.EmployeeSearchRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation Error", "message": err.Error()})
		return
	}

	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	filters := make(map[string]interface{})
	if req.Search != "" {
		filters["search"] = req.Search
	}
	if req.EG != 0 {
		filters["eg"] = req.EG
	}
	if req.SG != 0 {
		filters["sg"] = req.SG
	}

	_, _, carrierID, err := middleware.GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "user not authenticated"})
		return
	}

	response, err := h.employeeService.ListEmployees(carrierID, req.Page, req.PageSize, filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetEmployee handles getting a roster entry's details
// @Summary Get roster entry
// @Description Get a roster entry by ID
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 200 {object} dtos.EmployeeResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /employees/{id} [get]
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID", "message": "invalid employee ID format"})
		return
	}

	employee, err := h.employeeService.GetEmployee(id)
	if err != nil {
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Not Found", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, employee)
}

// CreateEmployee handles roster entry creation
// @Summary Create roster entry
// @Description Create a new roster entry
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dtos.EmployeeRequest true "Employee data"
// @Success 201 {object} dtos.EmployeeResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /employees [post]
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req dtos.EmployeeRequest

	userID, _, carrierID, err := middleware.GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "user not authenticated"})
		return
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation Error", "message": err.Error()})
		return
	}

	employee, err := h.employeeService.CreateEmployee(carrierID, req, userID)
	if err != nil {
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "already exists") {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": "Employee Creation Failed", "message": err.Error()})
		return
	}

	response := h.employeeService.ConvertToResponse(employee)
	c.JSON(http.StatusCreated, response)
}

// UpdateEmployee handles roster entry updates
// @Summary Update roster entry
// @Description Update an existing roster entry
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param request body dtos.EmployeeRequest true "Employee data"
// @Success 200 {object} dtos.EmployeeResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /employees/{id} [put]
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID", "message": "invalid employee ID format"})
		return
	}

	var req dtos.EmployeeRequest

	userID, _, _, err := middleware.GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "user not authenticated"})
		return
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation Error", "message": err.Error()})
		return
	}

	response, err := h.employeeService.UpdateEmployee(id, req, userID)
	if err != nil {
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			status = http.StatusNotFound
		} else if strings.Contains(err.Error(), "already exists") {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": "Employee Update Failed", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteEmployee handles roster entry deletion
// @Summary Delete roster entry
// @Description Soft delete a roster entry
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID", "message": "invalid employee ID format"})
		return
	}

	if err := h.employeeService.DeleteEmployee(id); err != nil {
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Employee Deletion Failed", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "employee deleted successfully"})
}

// ImportEmployees handles bulk roster import from Excel/CSV
// @Summary Import roster from Excel/CSV
// @Description Upload an Excel or CSV file to bulk import roster entries
// @Tags Employees
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Excel/CSV file"
// @Success 200 {object} dtos.ImportResult
// @Failure 400 {object} map[string]string
// @Router /employees/import [post]
func (h *EmployeeHandler) ImportEmployees(c *gin.Context) {
	userID, _, carrierID, err := middleware.GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "user not authenticated"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File Required", "message": "please upload an Excel (.xlsx) or CSV file"})
		return
	}
	defer file.Close()

	filename := header.Filename
	lower := strings.ToLower(filename)
	if !strings.HasSuffix(lower, ".xlsx") && !strings.HasSuffix(lower, ".xls") && !strings.HasSuffix(lower, ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid File Type", "message": "only Excel (.xlsx, .xls) and CSV files are supported"})
		return
	}

	result, err := h.employeeService.ImportEmployeesFromFile(carrierID, file, filename, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Import Failed", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// DownloadTemplate returns the roster import template
// @Summary Download roster import template
// @Description Download an Excel template for bulk roster import
// @Tags Employees
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary
// @Router /employees/import/template [get]
func (h *EmployeeHandler) DownloadTemplate(c *gin.Context) {
	templateData, err := h.employeeService.GenerateImportTemplate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Template Generation Failed", "message": err.Error()})
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=roster_import_template.xlsx")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", templateData)
}
