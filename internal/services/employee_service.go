/*
Package services - Roster Management Service

==============================================================================
FILE: internal/services/employee_service.go
==============================================================================

DESCRIPTION:
    Manages the roster of employees a scenario run projects against: group
    and sub-group membership, initial furlough flag, dates, and the
    proposed integrated Order. Supports bulk import from Excel/CSV so an
    analyst can stand up a merged list without hand-entering every row.

USER PERSPECTIVE:
    - Create and manage roster entries per carrier
    - Import a roster in bulk from an Excel or CSV template
    - Adjust Order and re-run a scenario to model a different integration
    - View roster counts by group and sub-group

DEVELOPER GUIDELINES:
    OK to modify: Roster fields, add custom attributes
    CAUTION: Order must stay unique within a carrier - the engine assumes
        position in the ordered slice is a stable idx
    Note: EG/SG encode employee-group and special-rights-group membership,
        not a free-text classification

SYNTAX EXPLANATION:
    - Bulk import lives in roster_import_service.go, same package
    - EG: employee group (1, 2, ... one per legacy carrier/craft)
    - SG: special-rights sub-group (0 = none; >0 selects a PreExRight group)

==============================================================================
*/
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mergeops/seniority-engine/internal/dtos"
	"github.com/mergeops/seniority-engine/internal/models"
	"github.com/mergeops/seniority-engine/internal/repositories"
)

// EmployeeService handles roster business logic
type EmployeeService struct {
	employeeRepo *repositories.EmployeeRepository
	userRepo     *repositories.UserRepository
	db           *gorm.DB
}

// NewEmployeeService creates a new roster service
func NewEmployeeService(db *gorm.DB) *EmployeeService {
	return &EmployeeService{
		employeeRepo: repositories.NewEmployeeRepository(db),
		userRepo:     repositories.NewUserRepository(db),
		db:           db,
	}
}

// CreateEmployee creates a new roster entry
func (s *EmployeeService) CreateEmployee(carrierID uuid.UUID, req dtos.EmployeeRequest, createdBy uuid.UUID) (*models.EmployeeRecord, error) {
	if exists, err := s.employeeRepo.ExistsByEmpkey(carrierID, req.Empkey); err != nil {
		return nil, fmt.Errorf("error checking empkey: %w", err)
	} else if exists {
		return nil, errors.New("roster entry with this empkey already exists")
	}

	if exists, err := s.employeeRepo.ExistsByOrder(carrierID, req.Order); err != nil {
		return nil, fmt.Errorf("error checking order: %w", err)
	} else if exists {
		return nil, errors.New("order value already assigned to another roster entry")
	}

	employee := &models.EmployeeRecord{
		Empkey:        strings.TrimSpace(req.Empkey),
		EG:            req.EG,
		SG:            req.SG,
		Fur0:          req.Fur0,
		DOB:           req.DOB.Time,
		LongevityDate: req.LongevityDate.Time,
		RetDate:       req.RetDate.Time,
		Order:         req.Order,
		FullName:      strings.TrimSpace(req.FullName),
		CarrierID:     carrierID,
		CreatedBy:     &createdBy,
	}

	if err := employee.Validate(); err != nil {
		return nil, fmt.Errorf("roster entry validation failed: %w", err)
	}

	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, fmt.Errorf("failed to create roster entry: %w", err)
	}

	return employee, nil
}

// GetEmployee gets a roster entry by ID
func (s *EmployeeService) GetEmployee(id uuid.UUID) (*dtos.EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("roster entry not found")
		}
		return nil, fmt.Errorf("error fetching roster entry: %w", err)
	}

	return s.ConvertToResponse(employee), nil
}

// UpdateEmployee updates a roster entry
func (s *EmployeeService) UpdateEmployee(id uuid.UUID, req dtos.EmployeeRequest, updatedBy uuid.UUID) (*dtos.EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("roster entry not found")
		}
		return nil, fmt.Errorf("error fetching roster entry: %w", err)
	}

	if strings.TrimSpace(req.Empkey) != employee.Empkey {
		if exists, err := s.employeeRepo.ExistsByEmpkey(employee.CarrierID, req.Empkey); err != nil {
			return nil, fmt.Errorf("error checking empkey: %w", err)
		} else if exists {
			return nil, errors.New("another roster entry with this empkey already exists")
		}
	}

	if req.Order != employee.Order {
		if exists, err := s.employeeRepo.ExistsByOrder(employee.CarrierID, req.Order); err != nil {
			return nil, fmt.Errorf("error checking order: %w", err)
		} else if exists {
			return nil, errors.New("order value already assigned to another roster entry")
		}
	}

	employee.Empkey = strings.TrimSpace(req.Empkey)
	employee.EG = req.EG
	employee.SG = req.SG
	employee.Fur0 = req.Fur0
	employee.DOB = req.DOB.Time
	employee.LongevityDate = req.LongevityDate.Time
	employee.RetDate = req.RetDate.Time
	employee.Order = req.Order
	employee.FullName = strings.TrimSpace(req.FullName)
	employee.UpdatedBy = &updatedBy

	if err := employee.Validate(); err != nil {
		return nil, fmt.Errorf("roster entry validation failed: %w", err)
	}

	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, fmt.Errorf("failed to update roster entry: %w", err)
	}

	return s.ConvertToResponse(employee), nil
}

// DeleteEmployee soft deletes a roster entry
func (s *EmployeeService) DeleteEmployee(id uuid.UUID) error {
	if _, err := s.employeeRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("roster entry not found")
		}
		return fmt.Errorf("error fetching roster entry: %w", err)
	}

	return s.employeeRepo.Delete(id)
}

// ListEmployees lists roster entries with pagination, scoped to a carrier
func (s *EmployeeService) ListEmployees(carrierID uuid.UUID, page, pageSize int, filters map[string]interface{}) (*dtos.EmployeeListResponse, error) {
	employees, total, err := s.employeeRepo.List(carrierID, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("error listing roster: %w", err)
	}

	employeeResponses := make([]dtos.EmployeeResponse, len(employees))
	for i, emp := range employees {
		employeeResponses[i] = *s.ConvertToResponse(&emp)
	}

	totalPages := 1
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}

	return &dtos.EmployeeListResponse{
		Employees:  employeeResponses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// ConvertToResponse converts an EmployeeRecord model to its response DTO
func (s *EmployeeService) ConvertToResponse(employee *models.EmployeeRecord) *dtos.EmployeeResponse {
	return &dtos.EmployeeResponse{
		ID:            employee.ID,
		Empkey:        employee.Empkey,
		EG:            employee.EG,
		SG:            employee.SG,
		Fur0:          employee.Fur0,
		DOB:           employee.DOB,
		LongevityDate: employee.LongevityDate,
		RetDate:       employee.RetDate,
		Order:         employee.Order,
		FullName:      employee.FullName,
		CarrierID:     employee.CarrierID,
		CreatedAt:     employee.CreatedAt,
		UpdatedAt:     employee.UpdatedAt,
	}
}

// EmployeesForScenario returns the ordered roster for a carrier converted
// into the pure engine.Employee slice a scenario run consumes.
func (s *EmployeeService) EmployeesForScenario(carrierID uuid.UUID) ([]models.EmployeeRecord, error) {
	return s.employeeRepo.ListOrderedByCarrier(carrierID)
}
