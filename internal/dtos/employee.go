/*
Package dtos - Employee Roster Data Transfer Objects

==============================================================================
FILE: internal/dtos/employee.go
==============================================================================

DESCRIPTION:
    Defines request and response structures for roster entry management:
    the short-form record (employee group, sub-group, dates, integrated
    Order) that a scenario run is built from.

USER PERSPECTIVE:
    - Shapes roster upload/edit forms in the frontend
    - Order is what an analyst adjusts to model a proposed integration list

DEVELOPER GUIDELINES:
    OK to modify: Add new roster fields
    CAUTION: Changing required fields affects frontend validation
    Keep EG/SG/Order semantics aligned with internal/engine.Employee

==============================================================================
*/
package dtos

import (
	"time"

	"github.com/google/uuid"
)

// EmployeeRequest represents data for creating or updating a roster entry
type EmployeeRequest struct {
	Empkey        string `json:"empkey" binding:"required"`
	EG            int    `json:"eg" binding:"required,gt=0"`
	SG            int    `json:"sg"`
	Fur0          int    `json:"fur0"`
	DOB           Date   `json:"dob" binding:"required"`
	LongevityDate Date   `json:"longevity_date" binding:"required"`
	RetDate       Date   `json:"retdate" binding:"required"`
	Order         int    `json:"order" binding:"required,gt=0"`
	FullName      string `json:"full_name,omitempty"`
}

// EmployeeResponse represents a roster entry returned in API responses
type EmployeeResponse struct {
	ID            uuid.UUID `json:"id"`
	Empkey        string    `json:"empkey"`
	EG            int       `json:"eg"`
	SG            int       `json:"sg"`
	Fur0          int       `json:"fur0"`
	DOB           time.Time `json:"dob"`
	LongevityDate time.Time `json:"longevity_date"`
	RetDate       time.Time `json:"retdate"`
	Order         int       `json:"order"`
	FullName      string    `json:"full_name,omitempty"`
	CarrierID     uuid.UUID `json:"carrier_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EmployeeListResponse for listing roster entries
type EmployeeListResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// EmployeeSearchRequest for searching/filtering the roster
type EmployeeSearchRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	EG       int    `form:"eg"`
	SG       int    `form:"sg"`
}

// ImportResult summarizes the outcome of a roster import
type ImportResult struct {
	Total   int                      `json:"total"`
	Created int                      `json:"created"`
	Updated int                      `json:"updated"`
	Failed  int                      `json:"failed"`
	Errors  []map[string]interface{} `json:"errors"`
}
