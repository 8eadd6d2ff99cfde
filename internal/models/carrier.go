/*
Package models - Seniority Engine Data Models

==============================================================================
FILE: internal/models/company.go
==============================================================================

DESCRIPTION:
    Defines the Carrier model. Each carrier is the operating-company tenant
    whose workforce a scenario run integrates — in a merger, typically one
    of two or more legacy carriers being combined into a single seniority
    list. The system supports multi-tenancy through carrier isolation: users
    can only see rosters and scenario runs that belong to their own carrier.

USER PERSPECTIVE:
    - Carrier is created during onboarding, one per employer entity
    - All employee records, rosters, and scenario runs belong to one carrier
    - Carrier can be deactivated to disable access without deleting data

DEVELOPER GUIDELINES:
    ✅  OK to modify: Add new fields (fleet data, settings, etc.)
    ⚠️  CAUTION: Activation/deactivation logic
    ❌  DO NOT modify: Code uniqueness constraint, multi-tenancy logic
    📝  Always filter queries by CarrierID for data isolation

SYNTAX EXPLANATION:
    - ActivatedAt/DeactivatedAt: Track carrier status changes
    - BeforeCreate/BeforeUpdate: GORM hooks for automatic timestamp management
    - foreignKey:CarrierID: All users/employee records reference this carrier

MULTI-TENANCY:
    - Each carrier's data is isolated
    - Users can only access their carrier's rosters and scenario runs
    - CarrierID is set from JWT token, not from user input
    - DO NOT trust CarrierID from request body in handlers

==============================================================================
*/
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Carrier represents an operating-company tenant in the system. All
// employee records, rosters, and scenario runs belong to a carrier,
// enabling multi-tenancy.
type Carrier struct {
	BaseModel
	Name          string     `gorm:"type:varchar(255);not null" json:"name"`
	Code          string     `gorm:"type:varchar(13);uniqueIndex;not null" json:"code"`
	Address       string     `gorm:"type:varchar(255)" json:"address,omitempty"`
	Phone         string     `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Email         string     `gorm:"type:varchar(255)" json:"email,omitempty"`
	Website       string     `gorm:"type:varchar(255)" json:"website,omitempty"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`
	Users         []User     `gorm:"foreignKey:CarrierID" json:"users,omitempty"`
	Employees     []Employee `gorm:"foreignKey:CarrierID" json:"employees,omitempty"`
	CreatedBy     *uuid.UUID `gorm:"type:text" json:"created_by,omitempty"`
	UpdatedBy     *uuid.UUID `gorm:"type:text" json:"updated_by,omitempty"`
	CreatedByUser *User      `gorm:"foreignKey:CreatedBy" json:"created_by_user,omitempty"`
	UpdatedByUser *User      `gorm:"foreignKey:UpdatedBy" json:"updated_by_user,omitempty"`
	ActivatedAt   *time.Time `json:"activated_at,omitempty"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`
}

// TableName specifies the table name
func (Carrier) TableName() string {
	return "carriers"
}

// BeforeCreate hook to generate UUID and set ActivatedAt for new active carriers.
func (c *Carrier) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.IsActive && c.ActivatedAt == nil {
		now := time.Now()
		c.ActivatedAt = &now
	}
	return
}

// BeforeUpdate hook to manage ActivatedAt/DeactivatedAt.
func (c *Carrier) BeforeUpdate(tx *gorm.DB) (err error) {
	if c.IsActive && c.ActivatedAt == nil {
		now := time.Now()
		c.ActivatedAt = &now
		c.DeactivatedAt = nil
	} else if !c.IsActive && c.DeactivatedAt == nil {
		now := time.Now()
		c.DeactivatedAt = &now
	}
	return
}
