/*
Package dtos - Scenario Run Data Transfer Objects

==============================================================================
FILE: internal/dtos/scenario.go
==============================================================================

DESCRIPTION:
    Defines the request/response shapes for scenario runs, including the
    free-form scenario configuration that maps directly onto
    internal/engine.ScenarioInput. This is the JSON schema persisted in
    ScenarioRun.Config.

USER PERSPECTIVE:
    - An analyst names a scenario, picks a start date/month, a job-level
      count, and describes the schedules (job-count ramps, pre-existing
      rights, ratio/capped-ratio conditions, recall) that apply
    - The roster itself is not part of the request: it is pulled live from
      the carrier's current roster when the scenario is run

DEVELOPER GUIDELINES:
    OK to modify: Add new schedule fields as the engine grows
    CAUTION: Field names here are part of the persisted Config JSON;
        renaming breaks deserialization of stored scenarios

==============================================================================
*/
package dtos

import (
	"time"

	"github.com/google/uuid"
)

// JobScheduleConfig mirrors engine.JobSchedule
type JobScheduleConfig struct {
	Level      int         `json:"level"`
	StartMonth int         `json:"start_month"`
	EndMonth   int         `json:"end_month"`
	TotalDelta int         `json:"total_delta"`
	PerEGDelta map[int]int `json:"per_eg_delta,omitempty"`
}

// PreExRightConfig mirrors engine.PreExRight
type PreExRightConfig struct {
	EG         int `json:"eg"`
	Level      int `json:"level"`
	Count      int `json:"count"`
	StartMonth int `json:"start_month"`
	EndMonth   int `json:"end_month"`
}

// RatioConditionConfig mirrors engine.RatioCondition
type RatioConditionConfig struct {
	Levels     []int `json:"levels"`
	StartMonth int   `json:"start_month"`
	EndMonth   int   `json:"end_month"`
	RefEG      int   `json:"ref_eg"`
}

// CappedRatioQuotaConfig mirrors engine.CappedRatioQuota
type CappedRatioQuotaConfig struct {
	WeightA float64 `json:"weight_a"`
	WeightB float64 `json:"weight_b"`
	Limit   int     `json:"limit"`
	Pct     float64 `json:"pct"`
}

// CappedRatioConditionConfig mirrors engine.CappedRatioCondition
type CappedRatioConditionConfig struct {
	Levels     []int                          `json:"levels"`
	StartMonth int                            `json:"start_month"`
	EndMonth   int                            `json:"end_month"`
	GroupsA    []int                          `json:"groups_a"`
	GroupsB    []int                          `json:"groups_b"`
	Quotas     map[string]CappedRatioQuotaConfig `json:"quotas"` // keyed by level, string because JSON object keys must be strings
}

// RecallScheduleConfig mirrors engine.RecallSchedule
type RecallScheduleConfig struct {
	TotalAmount int         `json:"total_amount"`
	PerEGAmount map[int]int `json:"per_eg_amount,omitempty"`
	StartMonth  int         `json:"start_month"`
	EndMonth    int         `json:"end_month"`
	Method      int         `json:"method"` // engine.RecallMethod: 0=seniority order, 1=stride, 2=random
	StrideN     int         `json:"stride_n,omitempty"`
	Seed        int64       `json:"seed,omitempty"`
}

// RetirementAgeIncreaseConfig mirrors engine.RetirementAgeIncrease
type RetirementAgeIncreaseConfig struct {
	EffectiveDate Date `json:"effective_date"`
	AddMonths     int  `json:"add_months"`
}

// ScenarioConfig is the full request body for creating a scenario, and the
// shape persisted as ScenarioRun.Config. It maps onto engine.ScenarioInput
// once the carrier's live roster is merged in at run time.
type ScenarioConfig struct {
	StartDate Date `json:"start_date" binding:"required"`
	NumLevels int  `json:"num_levels" binding:"required,gt=0"`

	InitialJobCounts      []int         `json:"initial_job_counts" binding:"required"`
	InitialGroupJobCounts map[int][]int `json:"initial_group_job_counts,omitempty"`

	JobSchedules          []JobScheduleConfig          `json:"job_schedules,omitempty"`
	PreExRights           []PreExRightConfig           `json:"pre_ex_rights,omitempty"`
	RatioConditions       []RatioConditionConfig       `json:"ratio_conditions,omitempty"`
	CappedRatioConditions []CappedRatioConditionConfig `json:"capped_ratio_conditions,omitempty"`
	RecallSchedules       []RecallScheduleConfig       `json:"recall_schedules,omitempty"`
	RetirementIncreases   []RetirementAgeIncreaseConfig `json:"retirement_increases,omitempty"`

	StartMonth            int  `json:"start_month"`
	LspcntOnRemainingOnly bool `json:"lspcnt_on_remaining_only"`
}

// CreateScenarioRequest is the request body for POST /scenarios
type CreateScenarioRequest struct {
	Name   string         `json:"name" binding:"required"`
	Config ScenarioConfig `json:"config" binding:"required"`
}

// ScenarioResponse is the response shape for a scenario run
type ScenarioResponse struct {
	ID           uuid.UUID       `json:"id"`
	CarrierID    uuid.UUID       `json:"carrier_id"`
	Name         string          `json:"name"`
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message,omitempty"`
	StartedAt    *time.Time      `json:"started_at,omitempty"`
	FinishedAt   *time.Time      `json:"finished_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ScenarioListResponse is the paginated list response for GET /scenarios
type ScenarioListResponse struct {
	Data       []ScenarioResponse `json:"data"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	Total      int64              `json:"total"`
	TotalPages int64              `json:"total_pages"`
}
