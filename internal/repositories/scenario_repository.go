/*
Package repositories - Scenario Run Data Access Layer

==============================================================================
FILE: internal/repositories/scenario_repository.go
==============================================================================

DESCRIPTION:
    Data access layer for ScenarioRun: creation, status transitions, and
    carrier-scoped listing. The full long-form result never lands here -
    only the Config an engine.Run was built from and its ResultSummary.

SYNTAX EXPLANATION:
    - ScenarioRepository: Main struct holding the GORM database connection
    - Create/FindByID/List: standard CRUD scoped to CarrierID
    - UpdateStatus: transitions Status and stamps Started/FinishedAt

==============================================================================
*/
package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mergeops/seniority-engine/internal/models"
)

// ScenarioRepository handles scenario run database operations
type ScenarioRepository struct {
	db *gorm.DB
}

// NewScenarioRepository creates a new scenario repository
func NewScenarioRepository(db *gorm.DB) *ScenarioRepository {
	return &ScenarioRepository{db: db}
}

// Create creates a new scenario run
func (r *ScenarioRepository) Create(scenario *models.ScenarioRun) error {
	return r.db.Create(scenario).Error
}

// FindByID finds a scenario run by ID with its carrier preloaded
func (r *ScenarioRepository) FindByID(id uuid.UUID) (*models.ScenarioRun, error) {
	var scenario models.ScenarioRun
	err := r.db.Preload("Carrier").First(&scenario, "id = ?", id).Error
	return &scenario, err
}

// List lists scenario runs for a carrier, newest first
func (r *ScenarioRepository) List(carrierID uuid.UUID, page, pageSize int) ([]models.ScenarioRun, int64, error) {
	var scenarios []models.ScenarioRun
	var total int64

	query := r.db.Model(&models.ScenarioRun{}).Where("carrier_id = ?", carrierID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Limit(pageSize).Offset(offset).Find(&scenarios).Error
	return scenarios, total, err
}

// Update saves a scenario run
func (r *ScenarioRepository) Update(scenario *models.ScenarioRun) error {
	return r.db.Save(scenario).Error
}

// MarkRunning transitions a scenario to running and stamps StartedAt
func (r *ScenarioRepository) MarkRunning(id uuid.UUID) error {
	now := time.Now()
	return r.db.Model(&models.ScenarioRun{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     models.ScenarioStatusRunning,
		"started_at": &now,
	}).Error
}

// MarkDone transitions a scenario to done, stamps FinishedAt, and stores
// the result summary.
func (r *ScenarioRepository) MarkDone(id uuid.UUID, resultSummary []byte) error {
	now := time.Now()
	return r.db.Model(&models.ScenarioRun{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":         models.ScenarioStatusDone,
		"finished_at":    &now,
		"result_summary": resultSummary,
	}).Error
}

// MarkFailed transitions a scenario to failed, stamps FinishedAt, and
// records the error.
func (r *ScenarioRepository) MarkFailed(id uuid.UUID, message string) error {
	now := time.Now()
	return r.db.Model(&models.ScenarioRun{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":        models.ScenarioStatusFailed,
		"finished_at":   &now,
		"error_message": message,
	}).Error
}

// Delete soft deletes a scenario run
func (r *ScenarioRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.ScenarioRun{}, "id = ?", id).Error
}

// CountActive counts a carrier's scenario runs still pending or running.
func (r *ScenarioRepository) CountActive(carrierID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.ScenarioRun{}).
		Where("carrier_id = ? AND status IN ?", carrierID, []string{models.ScenarioStatusPending, models.ScenarioStatusRunning}).
		Count(&count).Error
	return count, err
}

// CountStuckRunning counts scenario runs still marked "running" after
// StartedAt older than the given threshold. RunScenario executes the
// engine synchronously, so a run this old can only mean the process
// that started it died mid-run - a signal worth surfacing on /ready.
func (r *ScenarioRepository) CountStuckRunning(olderThan time.Duration) (int64, error) {
	var count int64
	cutoff := time.Now().Add(-olderThan)
	err := r.db.Model(&models.ScenarioRun{}).
		Where("status = ? AND started_at < ?", models.ScenarioStatusRunning, cutoff).
		Count(&count).Error
	return count, err
}
