/*
Package repositories - Multi-Tenant Carrier Data Access Layer

==============================================================================
FILE: internal/repositories/carrier_repository.go
==============================================================================

DESCRIPTION:
    Provides data access for carrier (tenant) information in the multi-tenant
    seniority-engine system. Each carrier represents a separate operating
    company with its own roster and scenario runs. This repository handles
    carrier lookups by code and UUID.

USER PERSPECTIVE:
    - When users log in, their carrier context is loaded using this repository
    - All roster/scenario processing is scoped to a specific carrier to
      ensure data isolation between tenants
    - Carrier code validation during onboarding uses these lookup methods

DEVELOPER GUIDELINES:
    ✅  OK to modify: Adding new query methods for carrier search/filtering
    ⚠️  CAUTION: Carrier is the root of multi-tenancy - ensure all queries
        respect tenant boundaries and never leak data between carriers
    ❌  DO NOT modify: Database connection patterns - maintain consistency
        with other repositories

SYNTAX EXPLANATION:
    - CarrierRepository: Main struct holding the GORM database connection
    - FindByCode(code string): Looks up carrier by its short code
    - FindByID(id uuid.UUID): Retrieves carrier by unique identifier
    - r.db.Where("code = ?", code).First(&carrier): GORM query with
      parameterized WHERE clause, prevents SQL injection
    - Returns (*models.Carrier, error): Pointer to carrier or error if not found

==============================================================================
*/

package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"github.com/mergeops/seniority-engine/internal/models"
)

type CarrierRepository struct {
	db *gorm.DB
}

func NewCarrierRepository(db *gorm.DB) *CarrierRepository {
	return &CarrierRepository{db: db}
}

func (r *CarrierRepository) FindByCode(code string) (*models.Carrier, error) {
	var carrier models.Carrier
	err := r.db.Where("code = ?", code).First(&carrier).Error
	return &carrier, err
}

func (r *CarrierRepository) FindByID(id uuid.UUID) (*models.Carrier, error) {
	var carrier models.Carrier
	err := r.db.First(&carrier, "id = ?", id).Error
	return &carrier, err
}
