/*
Package services - Scenario Results Export Service

==============================================================================
FILE: internal/services/results_export_service.go
==============================================================================

DESCRIPTION:
    Exports a completed scenario run's long-form monthly rows to an Excel
    workbook: one row per (month, employee), the same shape the engine
    produces internally.

USER PERSPECTIVE:
    - Download a scenario run's full projection as a spreadsheet
    - One sheet, one row per employee per month

DEVELOPER GUIDELINES:
    OK to modify: Column formatting, sheet naming
    CAUTION: Column order - downstream spreadsheet tooling expects the
        exact sequence below

EXCEL TEMPLATE SPECIFICATION (one sheet, long form):
- mnum: month index
- empkey: employee key
- idx: position in the roster slice that month
- orig_job: job level held at month start
- assigned_job: job level held after assignment
- jcount: 1 if assigned a job this month, else 0
- fur: true if furloughed
- snum: seniority-list rank within group, 1-based (0 if furloughed)
- spcnt: seniority percentile within group (0 if furloughed)
- lnum: seniority-list rank across the combined list
- lspcnt: seniority percentile across the combined list

==============================================================================
*/
package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mergeops/seniority-engine/internal/engine"
)

// ResultsExportService exports engine.Result rows to Excel
type ResultsExportService struct{}

// NewResultsExportService creates a new results export service
func NewResultsExportService() *ResultsExportService {
	return &ResultsExportService{}
}

// ExportLongForm writes one sheet containing every (month, employee) row
// from a completed scenario run, in the column order above.
func (s *ResultsExportService) ExportLongForm(result *engine.Result) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Results"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"mnum", "empkey", "idx", "orig_job", "assigned_job",
		"jcount", "fur", "snum", "spcnt", "lnum", "lspcnt",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetRowStyle(sheet, 1, 1, style)

	for i, row := range result.Rows {
		r := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.Mnum)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.Empkey)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.Idx)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.OrigJob)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", r), row.AssignedJob)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", r), row.Jcount)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", r), row.Fur)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", r), row.Snum)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", r), row.Spcnt)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", r), row.Lnum)
		f.SetCellValue(sheet, fmt.Sprintf("K%d", r), row.Lspcnt)
	}

	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, 14)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write results workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportBuffer is a convenience wrapper returning a *bytes.Buffer, the
// shape Gin's c.Data / file-download handlers consume.
func (s *ResultsExportService) ExportBuffer(result *engine.Result) (*bytes.Buffer, error) {
	data, err := s.ExportLongForm(result)
	if err != nil {
		return nil, err
	}
	return bytes.NewBuffer(data), nil
}
