/*
Package main - Scenario Results TUI Entry Point

==============================================================================
FILE: cmd/scenario-tui/main.go
==============================================================================

DESCRIPTION:
    A read-only terminal browser over a carrier's scenario runs: list runs
    and their status, then drill into a completed run's persisted
    per-month headcount summary. Never invokes the engine itself - it only
    reads what internal/services/scenario_service.go already persisted.

USER PERSPECTIVE:
    - Run `scenario-tui -carrier <id>` to browse scenario runs from a
      terminal without opening the frontend
    - Useful for a quick check from the machine running the import job

==============================================================================
*/
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/mergeops/seniority-engine/cmd/scenario-tui/ui"
	"github.com/mergeops/seniority-engine/internal/config"
	"github.com/mergeops/seniority-engine/internal/database"
	"github.com/mergeops/seniority-engine/internal/repositories"
	"github.com/mergeops/seniority-engine/internal/services"
)

func main() {
	carrierIDFlag := flag.String("carrier", "", "carrier ID to list scenario runs for")
	flag.Parse()

	if *carrierIDFlag == "" {
		log.Fatal("missing -carrier flag")
	}
	carrierID, err := uuid.Parse(*carrierIDFlag)
	if err != nil {
		log.Fatalf("invalid carrier ID: %v", err)
	}

	cfg, err := config.LoadAppConfig("./configs")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.DatabaseURL, cfg.DBDriver)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	scenarioRepo := repositories.NewScenarioRepository(db)
	scenarioService := services.NewScenarioService(scenarioRepo, nil, nil)
	rows, err := loadRows(scenarioRepo, scenarioService, carrierID)
	if err != nil {
		log.Fatalf("failed to load scenario runs: %v", err)
	}

	model := ui.New(rows)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("scenario-tui exited with error: %v", err)
	}
}

func loadRows(scenarioRepo *repositories.ScenarioRepository, scenarioService *services.ScenarioService, carrierID uuid.UUID) ([]ui.ScenarioRow, error) {
	const pageSize = 200
	scenarios, _, err := scenarioRepo.List(carrierID, 1, pageSize)
	if err != nil {
		return nil, err
	}

	rows := make([]ui.ScenarioRow, len(scenarios))
	for i, scenario := range scenarios {
		row := ui.ScenarioRow{
			Response: scenarioService.ConvertToResponse(&scenario),
		}
		if len(scenario.ResultSummary) > 0 {
			var summary services.ScenarioSummary
			if err := json.Unmarshal(scenario.ResultSummary, &summary); err == nil {
				row.Summary = &summary
			}
		}
		rows[i] = row
	}
	fmt.Println() // flush any startup logging before the alt-screen program takes over
	return rows, nil
}
