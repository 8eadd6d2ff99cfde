/*
Package services - Scenario Summary Report Service

==============================================================================
FILE: internal/services/report_service.go
==============================================================================

DESCRIPTION:
    Generates a per-scenario summary PDF: headcount by month, furlough and
    recall counts, and the final rank distribution of a completed run.

USER PERSPECTIVE:
    - Download a one-page PDF summary of a scenario run for a stakeholder
      review, without opening the full long-form spreadsheet

DEVELOPER GUIDELINES:
    OK to modify: Layout, add new summary sections
    CAUTION: Month-count table must stay legible - keep row height in sync
        with the number of months in long projections

SYNTAX EXPLANATION:
    - gofpdf builds the PDF cell-by-cell, left to right
    - Summary is computed directly off engine.Result, no separate
      aggregation model

==============================================================================
*/
package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/mergeops/seniority-engine/internal/engine"
)

// ReportService generates scenario summary reports
type ReportService struct{}

// NewReportService creates a new ReportService
func NewReportService() *ReportService {
	return &ReportService{}
}

// MonthSummary is one row of the per-month headcount table
type MonthSummary struct {
	Mnum      int
	Active    int
	Assigned  int
	Furloughed int
}

// ScenarioSummary is the aggregated data a report is built from
type ScenarioSummary struct {
	Name     string
	Months   []MonthSummary
	FinalRank map[int]int // level -> count of employees holding that level in the final month
}

// Summarize aggregates an engine.Result into a ScenarioSummary
func (s *ReportService) Summarize(name string, result *engine.Result) *ScenarioSummary {
	numMonths := len(result.Active)
	months := make([]MonthSummary, numMonths)
	for m := 0; m < numMonths; m++ {
		months[m] = MonthSummary{Mnum: m, Active: result.Active[m]}
	}

	finalRank := make(map[int]int)
	lastMonth := numMonths - 1
	for _, row := range result.Rows {
		if row.Mnum != lastMonth {
			continue
		}
		if row.Fur {
			months[row.Mnum].Furloughed++
			continue
		}
		months[row.Mnum].Assigned++
		finalRank[row.AssignedJob]++
	}

	// Backfill assigned/furloughed per month, not just the last one
	perMonthAssigned := make([]int, numMonths)
	perMonthFur := make([]int, numMonths)
	for _, row := range result.Rows {
		if row.Fur {
			perMonthFur[row.Mnum]++
		} else {
			perMonthAssigned[row.Mnum]++
		}
	}
	for m := 0; m < numMonths; m++ {
		months[m].Assigned = perMonthAssigned[m]
		months[m].Furloughed = perMonthFur[m]
	}

	return &ScenarioSummary{
		Name:      name,
		Months:    months,
		FinalRank: finalRank,
	}
}

// GeneratePDF renders a ScenarioSummary to a one-page PDF report
func (s *ReportService) GeneratePDF(summary *ScenarioSummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFillColor(30, 58, 138)
	pdf.Rect(0, 0, 210, 25, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 16)
	pdf.SetXY(10, 7)
	pdf.Cell(190, 10, "SCENARIO PROJECTION SUMMARY")
	pdf.SetFont("Arial", "", 10)
	pdf.SetXY(10, 16)
	pdf.Cell(190, 6, fmt.Sprintf("Scenario: %s", summary.Name))

	pdf.SetTextColor(0, 0, 0)

	y := 35.0
	pdf.SetXY(10, y)
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, "HEADCOUNT BY MONTH", "1", 1, "C", true, 0, "")

	y = pdf.GetY()
	pdf.SetXY(10, y)
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(40, 7, "Month", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, "Active", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, "Assigned", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, "Furloughed", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	maxRows := len(summary.Months)
	if maxRows > 24 {
		maxRows = 24 // keep the page to one sheet for long projections
	}
	for i := 0; i < maxRows; i++ {
		row := summary.Months[i]
		pdf.SetXY(10, pdf.GetY())
		pdf.CellFormat(40, 6, fmt.Sprintf("%d", row.Mnum), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%d", row.Active), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%d", row.Assigned), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%d", row.Furloughed), "1", 1, "C", false, 0, "")
	}
	if len(summary.Months) > maxRows {
		pdf.SetFont("Arial", "I", 8)
		pdf.SetXY(10, pdf.GetY())
		pdf.Cell(190, 6, fmt.Sprintf("... %d further months omitted, see the long-form export", len(summary.Months)-maxRows))
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.SetXY(10, pdf.GetY()+8)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, "FINAL MONTH RANK DISTRIBUTION", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "B", 9)
	pdf.SetXY(10, pdf.GetY())
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(95, 7, "Job Level", "1", 0, "C", true, 0, "")
	pdf.CellFormat(95, 7, "Holders", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for level := 1; level <= len(summary.FinalRank); level++ {
		count, ok := summary.FinalRank[level]
		if !ok {
			continue
		}
		pdf.SetXY(10, pdf.GetY())
		pdf.CellFormat(95, 6, fmt.Sprintf("%d", level), "1", 0, "C", false, 0, "")
		pdf.CellFormat(95, 6, fmt.Sprintf("%d", count), "1", 1, "C", false, 0, "")
	}

	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.SetXY(10, 280)
	pdf.Cell(190, 5, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
