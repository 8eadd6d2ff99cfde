/*
Package main - Seniority Engine Command-Line Client

==============================================================================
FILE: cmd/seniority-cli/main.go
==============================================================================

DESCRIPTION:
    A scriptable client for the three operations an analyst needs outside
    the web frontend: importing a roster file, running a scenario from a
    JSON config against the live roster, and exporting a finished run's
    long-form result to Excel or PDF. Talks directly to the database - it
    does not go through the HTTP API.

USAGE:
    seniority-cli import --carrier <id> --file roster.xlsx
    seniority-cli run --carrier <id> --name "2026 Ratification" --config scenario.json
    seniority-cli export --scenario <id> --out result.xlsx
    seniority-cli report --scenario <id> --out result.pdf

==============================================================================
*/
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/mergeops/seniority-engine/internal/config"
	"github.com/mergeops/seniority-engine/internal/database"
	"github.com/mergeops/seniority-engine/internal/dtos"
	apperrors "github.com/mergeops/seniority-engine/internal/errors"
	"github.com/mergeops/seniority-engine/internal/repositories"
	"github.com/mergeops/seniority-engine/internal/services"
)

var (
	configDir string
	rootCmd   = &cobra.Command{
		Use:   "seniority-cli",
		Short: "Command-line client for the seniority integration engine",
		Long:  "Import rosters, run scenarios, and export results without the frontend.",
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "./configs", "directory holding the application configuration")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(reportCmd)
}

func connectDB() (*gorm.DB, error) {
	cfg, err := config.LoadAppConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a roster file (Excel or CSV) for a carrier",
	RunE: func(cmd *cobra.Command, args []string) error {
		carrierIDFlag, _ := cmd.Flags().GetString("carrier")
		filePath, _ := cmd.Flags().GetString("file")
		if carrierIDFlag == "" || filePath == "" {
			return fmt.Errorf("--carrier and --file are required")
		}
		carrierID, err := uuid.Parse(carrierIDFlag)
		if err != nil {
			return fmt.Errorf("invalid carrier ID: %w", err)
		}

		db, err := connectDB()
		if err != nil {
			return err
		}

		f, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("opening %s: %w", filePath, err)
		}
		defer f.Close()

		employeeService := services.NewEmployeeService(db)
		result, err := employeeService.ImportEmployeesFromFile(carrierID, f, filePath, uuid.Nil)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		fmt.Printf("roster import complete: %d total, %d created, %d updated, %d failed\n",
			result.Total, result.Created, result.Updated, result.Failed)
		for _, rowErr := range result.Errors {
			fmt.Printf("  row error: %v\n", rowErr)
		}
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Create and run a scenario from a JSON config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		carrierIDFlag, _ := cmd.Flags().GetString("carrier")
		name, _ := cmd.Flags().GetString("name")
		configPath, _ := cmd.Flags().GetString("config")
		if carrierIDFlag == "" || name == "" || configPath == "" {
			return fmt.Errorf("--carrier, --name, and --config are required")
		}
		carrierID, err := uuid.Parse(carrierIDFlag)
		if err != nil {
			return fmt.Errorf("invalid carrier ID: %w", err)
		}

		raw, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", configPath, err)
		}
		var scenarioConfig dtos.ScenarioConfig
		if err := json.Unmarshal(raw, &scenarioConfig); err != nil {
			return fmt.Errorf("parsing scenario config: %w", err)
		}

		db, err := connectDB()
		if err != nil {
			return err
		}

		scenarioRepo := repositories.NewScenarioRepository(db)
		employeeService := services.NewEmployeeService(db)
		reportService := services.NewReportService()
		scenarioService := services.NewScenarioService(scenarioRepo, employeeService, reportService)

		scenario, err := scenarioService.CreateScenario(carrierID, dtos.CreateScenarioRequest{Name: name, Config: scenarioConfig}, uuid.Nil)
		if err != nil {
			return fmt.Errorf("creating scenario: %w", err)
		}
		fmt.Printf("scenario %s created, running...\n", scenario.ID)

		result, err := scenarioService.RunScenario(scenario.ID)
		if err != nil {
			if appErr, ok := err.(*apperrors.AppError); ok {
				return fmt.Errorf("scenario failed: %s", appErr.Message)
			}
			return fmt.Errorf("scenario failed: %w", err)
		}

		months := len(result.Active)
		finalActive := 0
		if months > 0 {
			finalActive = result.Active[months-1]
		}
		fmt.Printf("scenario %s done: %d months projected, %d active in the final month\n", scenario.ID, months, finalActive)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run a scenario again and export the long-form result to Excel",
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarioIDFlag, _ := cmd.Flags().GetString("scenario")
		outPath, _ := cmd.Flags().GetString("out")
		if scenarioIDFlag == "" || outPath == "" {
			return fmt.Errorf("--scenario and --out are required")
		}
		scenarioID, err := uuid.Parse(scenarioIDFlag)
		if err != nil {
			return fmt.Errorf("invalid scenario ID: %w", err)
		}

		db, err := connectDB()
		if err != nil {
			return err
		}

		scenarioRepo := repositories.NewScenarioRepository(db)
		employeeService := services.NewEmployeeService(db)
		reportService := services.NewReportService()
		scenarioService := services.NewScenarioService(scenarioRepo, employeeService, reportService)
		exportService := services.NewResultsExportService()

		result, err := scenarioService.RunScenario(scenarioID)
		if err != nil {
			return fmt.Errorf("scenario failed: %w", err)
		}

		data, err := exportService.ExportLongForm(result)
		if err != nil {
			return fmt.Errorf("generating export: %w", err)
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}

		fmt.Printf("exported long-form result to %s\n", outPath)
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run a scenario again and generate a PDF summary report",
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarioIDFlag, _ := cmd.Flags().GetString("scenario")
		outPath, _ := cmd.Flags().GetString("out")
		if scenarioIDFlag == "" || outPath == "" {
			return fmt.Errorf("--scenario and --out are required")
		}
		scenarioID, err := uuid.Parse(scenarioIDFlag)
		if err != nil {
			return fmt.Errorf("invalid scenario ID: %w", err)
		}

		db, err := connectDB()
		if err != nil {
			return err
		}

		scenarioRepo := repositories.NewScenarioRepository(db)
		employeeService := services.NewEmployeeService(db)
		reportService := services.NewReportService()
		scenarioService := services.NewScenarioService(scenarioRepo, employeeService, reportService)

		scenario, err := scenarioService.GetScenario(scenarioID)
		if err != nil {
			return fmt.Errorf("loading scenario: %w", err)
		}

		result, err := scenarioService.RunScenario(scenarioID)
		if err != nil {
			return fmt.Errorf("scenario failed: %w", err)
		}

		summary := reportService.Summarize(scenario.Name, result)
		pdf, err := reportService.GeneratePDF(summary)
		if err != nil {
			return fmt.Errorf("generating report: %w", err)
		}
		if err := os.WriteFile(outPath, pdf, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}

		fmt.Printf("wrote PDF report to %s\n", outPath)
		return nil
	},
}

func init() {
	importCmd.Flags().String("carrier", "", "carrier ID")
	importCmd.Flags().String("file", "", "path to the roster file (.xlsx or .csv)")

	runCmd.Flags().String("carrier", "", "carrier ID")
	runCmd.Flags().String("name", "", "scenario name")
	runCmd.Flags().String("config", "", "path to the scenario config JSON file")

	exportCmd.Flags().String("scenario", "", "scenario ID")
	exportCmd.Flags().String("out", "", "output .xlsx path")

	reportCmd.Flags().String("scenario", "", "scenario ID")
	reportCmd.Flags().String("out", "", "output .pdf path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
