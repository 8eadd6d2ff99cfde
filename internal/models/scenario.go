/*
Package models - Seniority Engine Data Models

==============================================================================
FILE: internal/models/scenario.go
==============================================================================

DESCRIPTION:
    Defines ScenarioRun, the persisted record of one engine.Run invocation:
    its input configuration (job schedules, pre-existing rights, ratio and
    capped-ratio conditions, recall schedules) and, once computed, a summary
    of its output. The full long-form row set is large and reproducible
    from Config, so only a summary is persisted; ScenarioTUI/ResultsExport
    recompute or stream the long form on demand.

USER PERSPECTIVE:
    - A scenario is created by pointing at a carrier's roster and
      describing the job-count/condition schedules to apply
    - Running it invokes the engine and stores a compact summary plus status
    - Config and ResultSummary are free-form JSON: the scenario shape
      varies too much across mergers to model as fixed columns

DEVELOPER GUIDELINES:
    ✅  OK to modify: Add new summary fields
    ⚠️  CAUTION: Config schema changes (must stay engine.ScenarioInput-compatible)
    📝  See internal/services/scenario_service.go for the JSON shape

==============================================================================
*/
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ScenarioRun status values.
const (
	ScenarioStatusPending = "pending"
	ScenarioStatusRunning = "running"
	ScenarioStatusDone    = "done"
	ScenarioStatusFailed  = "failed"
)

// ScenarioRun is one named, persisted invocation of the engine against a
// carrier's roster.
type ScenarioRun struct {
	BaseModel

	CarrierID uuid.UUID `gorm:"type:text;not null;index" json:"carrier_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Status    string    `gorm:"type:varchar(20);default:'pending';check:status IN ('pending','running','done','failed')" json:"status"`

	// Config holds the JSON-encoded scenario configuration: num_levels,
	// initial_job_counts, job_schedules, pre_ex_rights, ratio_conditions,
	// capped_ratio_conditions, recall_schedules, start_month, seed.
	Config datatypes.JSON `gorm:"type:text" json:"config"`

	// ResultSummary holds a compact JSON summary of the run: final active
	// headcount, furlough count by month, and per-level job counts. The
	// full long-form row set is recomputed on demand rather than stored.
	ResultSummary datatypes.JSON `gorm:"type:text" json:"result_summary,omitempty"`

	ErrorMessage string     `gorm:"type:text" json:"error_message,omitempty"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`

	CreatedBy *uuid.UUID `gorm:"type:text" json:"created_by,omitempty"`

	Carrier *Carrier `gorm:"foreignKey:CarrierID" json:"carrier,omitempty"`
}

// TableName specifies the table name
func (ScenarioRun) TableName() string {
	return "scenario_runs"
}
