/*
Package models - Seniority Engine Data Models

==============================================================================
FILE: internal/models/employee.go
==============================================================================

DESCRIPTION:
    Defines the EmployeeRecord model - the persisted, short-form roster
    entry the engine package consumes. One row per person: employee group
    and sub-group, initial furlough flag, dates of birth/longevity/
    retirement, and the proposed integrated Order. This is the database
    analogue of engine.Employee; ToEngineEmployee/FromEngineEmployee
    convert between the two.

USER PERSPECTIVE:
    - Stores the roster uploaded for a scenario, one row per employee
    - Order is what a scenario run actually projects outcomes against;
      changing it and re-running a scenario is the core "what if" workflow
    - EG/SG encode employee-group and special-rights-group membership

DEVELOPER GUIDELINES:
    ✅  OK to modify: Add new fields (remember to update DTOs and API)
    ⚠️  CAUTION when modifying: Order uniqueness, date validation
    📝  When adding fields: Also update internal/dtos/employee.go

SYNTAX EXPLANATION:
    - type EmployeeRecord struct: Defines EmployeeRecord as a Go struct
    - BaseModel: Embedded struct, gives EmployeeRecord all BaseModel fields
    - `gorm:"..."`: Database column configuration
    - `json:"..."`: JSON field name for API responses

RELATIONS:
    - Carrier: Belongs to one carrier
    - ScenarioRuns: Referenced by scenario rosters via CarrierID, not FK

==============================================================================
*/
package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mergeops/seniority-engine/internal/engine"
)

// EmployeeRecord represents one roster entry belonging to a carrier.
// This is the persisted short-form the scenario engine runs against.
type EmployeeRecord struct {
	BaseModel

	Empkey string `gorm:"type:varchar(50);uniqueIndex:idx_carrier_empkey;not null" json:"empkey"`
	EG     int    `gorm:"column:eg;not null" json:"eg"`
	SG     int    `gorm:"column:sg;default:0" json:"sg"`
	Fur0   int    `gorm:"column:fur0;default:0" json:"fur0"`

	DOB           time.Time `gorm:"type:date;not null" json:"dob"`
	LongevityDate time.Time `gorm:"type:date;not null" json:"longevity_date"`
	RetDate       time.Time `gorm:"type:date;not null" json:"retdate"`
	Order         int       `gorm:"not null" json:"order"`

	FullName string `gorm:"type:varchar(255)" json:"full_name,omitempty"`

	CarrierID uuid.UUID `gorm:"type:text;not null;uniqueIndex:idx_carrier_empkey" json:"carrier_id"`
	CreatedBy *uuid.UUID `gorm:"type:text" json:"created_by,omitempty"`
	UpdatedBy *uuid.UUID `gorm:"type:text" json:"updated_by,omitempty"`

	Carrier *Carrier `gorm:"foreignKey:CarrierID" json:"carrier,omitempty"`
}

// TableName specifies the table name
func (EmployeeRecord) TableName() string {
	return "employee_records"
}

// Validate validates employee record data.
func (e *EmployeeRecord) Validate() error {
	var validationErrors []string

	if strings.TrimSpace(e.Empkey) == "" {
		validationErrors = append(validationErrors, "empkey is required")
	}
	if e.EG <= 0 {
		validationErrors = append(validationErrors, "eg must be positive")
	}
	if e.Order <= 0 {
		validationErrors = append(validationErrors, "order must be positive")
	}
	if e.DOB.IsZero() {
		validationErrors = append(validationErrors, "dob is required")
	}
	if e.RetDate.IsZero() {
		validationErrors = append(validationErrors, "retdate is required")
	}
	if e.DOB.After(e.RetDate) {
		validationErrors = append(validationErrors, "dob cannot be after retdate")
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, "; "))
	}
	return nil
}

// ToEngineEmployee converts the persisted record into the pure input type
// internal/engine.Run consumes.
func (e *EmployeeRecord) ToEngineEmployee() engine.Employee {
	return engine.Employee{
		Empkey:        e.Empkey,
		EG:            e.EG,
		SG:            e.SG,
		Fur0:          e.Fur0,
		DOB:           e.DOB,
		LongevityDate: e.LongevityDate,
		RetDate:       e.RetDate,
		Order:         e.Order,
	}
}

// FromEngineEmployee populates the persisted record's engine-facing fields
// from an engine.Employee, leaving BaseModel/CarrierID untouched.
func (e *EmployeeRecord) FromEngineEmployee(src engine.Employee) {
	e.Empkey = src.Empkey
	e.EG = src.EG
	e.SG = src.SG
	e.Fur0 = src.Fur0
	e.DOB = src.DOB
	e.LongevityDate = src.LongevityDate
	e.RetDate = src.RetDate
	e.Order = src.Order
}
