/*
Package services - Scenario Run Orchestration Service

==============================================================================
FILE: internal/services/scenario_service.go
==============================================================================

DESCRIPTION:
    Wires a persisted ScenarioRun to internal/engine.Run: decodes a
    scenario's Config into an engine.ScenarioInput, pulls the carrier's
    live roster, invokes the engine, and persists a compact ResultSummary.
    The full long-form Result is handed back to the caller so it can be
    exported or reported on without a second engine invocation, but is
    never itself persisted.

USER PERSPECTIVE:
    - Create a scenario against the current roster with a chosen set of
      job/condition schedules
    - Run it; poll status; once done, export the long form or a PDF
      summary

DEVELOPER GUIDELINES:
    OK to modify: Config-to-ScenarioInput mapping as the engine grows
    CAUTION: Employees must reach engine.Run already ordered ascending by
        Order - ListOrderedByCarrier guarantees this
    DO NOT modify: Do not persist the long-form Result; it is reproducible
        from Config plus the live roster

==============================================================================
*/
package services

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mergeops/seniority-engine/internal/dtos"
	"github.com/mergeops/seniority-engine/internal/engine"
	apperrors "github.com/mergeops/seniority-engine/internal/errors"
	"github.com/mergeops/seniority-engine/internal/models"
	"github.com/mergeops/seniority-engine/internal/repositories"
)

// ScenarioService orchestrates scenario creation and execution
type ScenarioService struct {
	scenarioRepo    *repositories.ScenarioRepository
	employeeService *EmployeeService
	reportService   *ReportService
}

// NewScenarioService creates a new ScenarioService
func NewScenarioService(scenarioRepo *repositories.ScenarioRepository, employeeService *EmployeeService, reportService *ReportService) *ScenarioService {
	return &ScenarioService{
		scenarioRepo:    scenarioRepo,
		employeeService: employeeService,
		reportService:   reportService,
	}
}

// CreateScenario validates and persists a new scenario in pending status.
// It does not run the engine; call RunScenario to do that.
func (s *ScenarioService) CreateScenario(carrierID uuid.UUID, req dtos.CreateScenarioRequest, createdBy uuid.UUID) (*models.ScenarioRun, error) {
	configJSON, err := json.Marshal(req.Config)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidationFailed)
	}

	scenario := &models.ScenarioRun{
		CarrierID: carrierID,
		Name:      req.Name,
		Status:    models.ScenarioStatusPending,
		Config:    configJSON,
		CreatedBy: &createdBy,
	}

	if err := s.scenarioRepo.Create(scenario); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseOperation)
	}
	return scenario, nil
}

// RunScenario loads a scenario's Config, builds an engine.ScenarioInput
// from it and the carrier's current roster, invokes engine.Run, and
// persists the outcome. It returns the full engine.Result on success so
// callers can export or report on it without re-running the engine.
func (s *ScenarioService) RunScenario(id uuid.UUID) (*engine.Result, error) {
	scenario, err := s.scenarioRepo.FindByID(id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrNotFound)
	}

	if markErr := s.scenarioRepo.MarkRunning(id); markErr != nil {
		return nil, apperrors.Wrap(markErr, apperrors.ErrDatabaseOperation)
	}

	var config dtos.ScenarioConfig
	if err := json.Unmarshal(scenario.Config, &config); err != nil {
		s.scenarioRepo.MarkFailed(id, fmt.Sprintf("invalid scenario configuration: %v", err))
		return nil, apperrors.Wrap(err, apperrors.ErrValidationFailed)
	}

	records, err := s.employeeService.EmployeesForScenario(scenario.CarrierID)
	if err != nil {
		s.scenarioRepo.MarkFailed(id, fmt.Sprintf("failed to load roster: %v", err))
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseOperation)
	}

	employees := make([]engine.Employee, len(records))
	for i, rec := range records {
		employees[i] = rec.ToEngineEmployee()
	}

	if len(config.RetirementIncreases) > 0 {
		schedules := make([]engine.RetirementAgeIncrease, len(config.RetirementIncreases))
		for i, r := range config.RetirementIncreases {
			schedules[i] = engine.RetirementAgeIncrease{
				EffectiveDate: r.EffectiveDate.ToTime(),
				AddMonths:     r.AddMonths,
			}
		}
		employees = engine.ApplyRetirementAgeIncreases(employees, schedules)
	}

	input := toScenarioInput(config, employees)

	result, runErr := engine.Run(input)
	if runErr != nil {
		if engErr, ok := runErr.(*engine.Error); ok {
			appErr := apperrors.FromEngineError(engErr)
			s.scenarioRepo.MarkFailed(id, appErr.Error())
			return nil, appErr
		}
		s.scenarioRepo.MarkFailed(id, runErr.Error())
		return nil, apperrors.Wrap(runErr, apperrors.ErrInternal)
	}

	summary := s.reportService.Summarize(scenario.Name, result)
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		s.scenarioRepo.MarkFailed(id, fmt.Sprintf("failed to serialize result summary: %v", err))
		return nil, apperrors.Wrap(err, apperrors.ErrInternal)
	}

	if err := s.scenarioRepo.MarkDone(id, summaryJSON); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseOperation)
	}

	return result, nil
}

// GetScenario retrieves a scenario run by ID
func (s *ScenarioService) GetScenario(id uuid.UUID) (*models.ScenarioRun, error) {
	return s.scenarioRepo.FindByID(id)
}

// ListScenarios lists scenario runs for a carrier
func (s *ScenarioService) ListScenarios(carrierID uuid.UUID, page, pageSize int) ([]models.ScenarioRun, int64, error) {
	return s.scenarioRepo.List(carrierID, page, pageSize)
}

// DeleteScenario soft deletes a scenario run
func (s *ScenarioService) DeleteScenario(id uuid.UUID) error {
	return s.scenarioRepo.Delete(id)
}

// Rerun re-executes an already-created scenario against the current
// roster, e.g. after a roster correction.
func (s *ScenarioService) Rerun(id uuid.UUID) (*engine.Result, error) {
	return s.RunScenario(id)
}

// ConvertToResponse converts a ScenarioRun model to its API response shape
func (s *ScenarioService) ConvertToResponse(scenario *models.ScenarioRun) dtos.ScenarioResponse {
	return dtos.ScenarioResponse{
		ID:           scenario.ID,
		CarrierID:    scenario.CarrierID,
		Name:         scenario.Name,
		Status:       scenario.Status,
		ErrorMessage: scenario.ErrorMessage,
		StartedAt:    scenario.StartedAt,
		FinishedAt:   scenario.FinishedAt,
		CreatedAt:    scenario.CreatedAt,
	}
}

// toScenarioInput maps a decoded ScenarioConfig and the live roster onto
// engine.ScenarioInput.
func toScenarioInput(config dtos.ScenarioConfig, employees []engine.Employee) engine.ScenarioInput {
	jobSchedules := make([]engine.JobSchedule, len(config.JobSchedules))
	for i, js := range config.JobSchedules {
		jobSchedules[i] = engine.JobSchedule{
			Level:      js.Level,
			StartMonth: js.StartMonth,
			EndMonth:   js.EndMonth,
			TotalDelta: js.TotalDelta,
			PerEGDelta: js.PerEGDelta,
		}
	}

	preExRights := make([]engine.PreExRight, len(config.PreExRights))
	for i, p := range config.PreExRights {
		preExRights[i] = engine.PreExRight{
			EG:         p.EG,
			Level:      p.Level,
			Count:      p.Count,
			StartMonth: p.StartMonth,
			EndMonth:   p.EndMonth,
		}
	}

	ratioConditions := make([]engine.RatioCondition, len(config.RatioConditions))
	for i, r := range config.RatioConditions {
		ratioConditions[i] = engine.RatioCondition{
			Levels:     r.Levels,
			StartMonth: r.StartMonth,
			EndMonth:   r.EndMonth,
			RefEG:      r.RefEG,
		}
	}

	cappedConditions := make([]engine.CappedRatioCondition, len(config.CappedRatioConditions))
	for i, c := range config.CappedRatioConditions {
		quotas := make(map[int]engine.CappedRatioQuota, len(c.Quotas))
		for levelStr, q := range c.Quotas {
			var level int
			fmt.Sscanf(levelStr, "%d", &level)
			quotas[level] = engine.CappedRatioQuota{
				WeightA: q.WeightA,
				WeightB: q.WeightB,
				Limit:   q.Limit,
				Pct:     q.Pct,
			}
		}
		cappedConditions[i] = engine.CappedRatioCondition{
			Levels:     c.Levels,
			StartMonth: c.StartMonth,
			EndMonth:   c.EndMonth,
			GroupsA:    c.GroupsA,
			GroupsB:    c.GroupsB,
			Quotas:     quotas,
		}
	}

	recallSchedules := make([]engine.RecallSchedule, len(config.RecallSchedules))
	for i, rc := range config.RecallSchedules {
		recallSchedules[i] = engine.RecallSchedule{
			TotalAmount: rc.TotalAmount,
			PerEGAmount: rc.PerEGAmount,
			StartMonth:  rc.StartMonth,
			EndMonth:    rc.EndMonth,
			Method:      engine.RecallMethod(rc.Method),
			StrideN:     rc.StrideN,
			Seed:        rc.Seed,
		}
	}

	return engine.ScenarioInput{
		Employees:             employees,
		StartDate:             config.StartDate.ToTime(),
		NumLevels:             config.NumLevels,
		InitialJobCounts:      config.InitialJobCounts,
		InitialGroupJobCounts: config.InitialGroupJobCounts,
		JobSchedules:          jobSchedules,
		PreExRights:           preExRights,
		RatioConditions:       ratioConditions,
		CappedRatioConditions: cappedConditions,
		RecallSchedules:       recallSchedules,
		StartMonth:            config.StartMonth,
		LspcntOnRemainingOnly: config.LspcntOnRemainingOnly,
	}
}
