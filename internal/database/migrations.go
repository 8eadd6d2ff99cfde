/*
Package database - Seniority Engine Database Migrations

==============================================================================
FILE: internal/database/migrations.go
==============================================================================

DESCRIPTION:
    Handles automatic database schema migrations using GORM AutoMigrate.
    Creates and updates tables for all application models. Called at
    application startup to ensure schema is current.

USER PERSPECTIVE:
    - Automatically creates database tables on first run
    - Updates schema when models change
    - No manual SQL migration scripts needed

DEVELOPER GUIDELINES:
    ✅  OK to modify: Add new models to AutoMigrate list
    ⚠️  CAUTION: Removing models (may cause data loss)
    ❌  DO NOT modify: Model order if foreign key dependencies exist
    📝  Add new models at the end of the list

MODEL LIST (in migration order):
    - Carrier: Multi-tenant isolation
    - User: Authentication and authorization
    - EmployeeRecord: Roster entries the engine runs against
    - ScenarioRun: Scenario configuration + result summary
    - AuditLog: Auth event trail
    - LoginSession: Active session tracking

==============================================================================
*/
package database

import (
	"gorm.io/gorm"

	"github.com/mergeops/seniority-engine/internal/models"
)

// Migrate performs database migrations.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Carrier{},
		&models.User{},
		&models.EmployeeRecord{},
		&models.ScenarioRun{},
		&models.AuditLog{},
		&models.LoginSession{},
	)
}
