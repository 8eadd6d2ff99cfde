/*
Package repositories - Employee Roster Data Access Layer

==============================================================================
FILE: internal/repositories/employee_repository.go
==============================================================================

DESCRIPTION:
    Data access layer for the short-form roster entries a scenario run
    consumes: employee group/sub-group, initial furlough flag, dates, and
    proposed integrated Order. Provides CRUD, carrier-scoped listing and
    search, and the ordered-roster query the engine package needs.

USER PERSPECTIVE:
    - When an analyst uploads or edits a roster, all data flows through
      this repository
    - Supports roster search and carrier-scoped listing
    - Enables the order-ascending query a scenario run is built from

DEVELOPER GUIDELINES:
    ✅  OK to modify: Adding new query methods, additional filtering options
    ⚠️  CAUTION: Order must stay unique within a carrier - the engine
        assumes position in the ordered slice is a stable idx
    📝  Best practices: Always scope list/search queries by CarrierID;
        use ListOrderedByCarrier when feeding the engine

SYNTAX EXPLANATION:
    - EmployeeRepository: Main struct holding the GORM database connection
    - Create(employee *models.EmployeeRecord): Inserts new roster entry
    - FindByID(id uuid.UUID): Retrieves a record with carrier preloaded
    - List(page, pageSize int, filters map[string]interface{}): Paginated,
      filterable roster list with dynamic query building
    - ListOrderedByCarrier(carrierID): Full roster ordered ascending by
      Order, ready for engine.Run

==============================================================================
*/

package repositories

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mergeops/seniority-engine/internal/models"
)

// EmployeeRepository handles employee record database operations
type EmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create creates a new employee record
func (r *EmployeeRepository) Create(employee *models.EmployeeRecord) error {
	return r.db.Create(employee).Error
}

// CreateBatch inserts many employee records in one statement, used by
// roster import.
func (r *EmployeeRepository) CreateBatch(employees []models.EmployeeRecord) error {
	if len(employees) == 0 {
		return nil
	}
	return r.db.CreateInBatches(employees, 200).Error
}

// FindByID finds an employee record by ID with its carrier preloaded
func (r *EmployeeRepository) FindByID(id uuid.UUID) (*models.EmployeeRecord, error) {
	var employee models.EmployeeRecord
	err := r.db.Preload("Carrier").First(&employee, "id = ?", id).Error
	return &employee, err
}

// FindByEmpkey finds an employee record by empkey within a carrier
func (r *EmployeeRepository) FindByEmpkey(carrierID uuid.UUID, empkey string) (*models.EmployeeRecord, error) {
	var employee models.EmployeeRecord
	err := r.db.Where("carrier_id = ? AND empkey = ?", carrierID, empkey).First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// Update updates an employee record
func (r *EmployeeRepository) Update(employee *models.EmployeeRecord) error {
	return r.db.Save(employee).Error
}

// Delete soft deletes an employee record
func (r *EmployeeRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.EmployeeRecord{}, "id = ?", id).Error
}

// DeleteByCarrier removes every roster entry for a carrier, used before a
// fresh roster import replaces the prior one.
func (r *EmployeeRepository) DeleteByCarrier(carrierID uuid.UUID) error {
	return r.db.Where("carrier_id = ?", carrierID).Delete(&models.EmployeeRecord{}).Error
}

// List lists employee records with pagination and filtering, scoped to a carrier.
func (r *EmployeeRepository) List(carrierID uuid.UUID, page, pageSize int, filters map[string]interface{}) ([]models.EmployeeRecord, int64, error) {
	var employees []models.EmployeeRecord
	var total int64

	query := r.db.Model(&models.EmployeeRecord{}).Where("carrier_id = ?", carrierID)

	if eg, ok := filters["eg"]; ok {
		query = query.Where("eg = ?", eg)
	}
	if sg, ok := filters["sg"]; ok {
		query = query.Where("sg = ?", sg)
	}
	if search, ok := filters["search"]; ok {
		searchStr := "%" + strings.ToLower(search.(string)) + "%"
		query = query.Where("LOWER(empkey) LIKE ? OR LOWER(full_name) LIKE ?", searchStr, searchStr)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query = query.Order("\"order\" ASC").Limit(pageSize).Offset(offset)

	err := query.Find(&employees).Error
	return employees, total, err
}

// ListOrderedByCarrier returns the full roster for a carrier ordered
// ascending by Order, the shape engine.Run requires.
func (r *EmployeeRepository) ListOrderedByCarrier(carrierID uuid.UUID) ([]models.EmployeeRecord, error) {
	var employees []models.EmployeeRecord
	err := r.db.Where("carrier_id = ?", carrierID).Order("\"order\" ASC").Find(&employees).Error
	return employees, err
}

// ExistsByEmpkey checks if an employee record exists by empkey within a carrier
func (r *EmployeeRepository) ExistsByEmpkey(carrierID uuid.UUID, empkey string) (bool, error) {
	var count int64
	err := r.db.Model(&models.EmployeeRecord{}).
		Where("carrier_id = ? AND empkey = ?", carrierID, empkey).
		Count(&count).Error
	return count > 0, err
}

// ExistsByOrder checks if the given Order value is already taken within a carrier.
func (r *EmployeeRepository) ExistsByOrder(carrierID uuid.UUID, order int) (bool, error) {
	var count int64
	err := r.db.Model(&models.EmployeeRecord{}).
		Where("carrier_id = ? AND \"order\" = ?", carrierID, order).
		Count(&count).Error
	return count > 0, err
}
