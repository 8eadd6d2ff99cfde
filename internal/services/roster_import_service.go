/*
Package services - Roster Bulk Import

==============================================================================
FILE: internal/services/roster_import_service.go
==============================================================================

DESCRIPTION:
    Bulk-import side of roster management: parses an uploaded Excel or CSV
    workbook into EmployeeRecord rows and upserts them by empkey. Split out
    from employee_service.go because it owns its own file-format parsing
    concerns (Excel serial-date handling, CSV quoting) that have nothing to
    do with the CRUD methods there.

USER PERSPECTIVE:
    - Upload a workbook in the shape produced by GenerateImportTemplate
    - Rows matching an existing empkey update that roster entry; new
      empkeys are created
    - Malformed rows are skipped and reported, not fatal to the batch

==============================================================================
*/
package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/mergeops/seniority-engine/internal/dtos"
	"github.com/mergeops/seniority-engine/internal/models"
)

// ImportEmployeesFromFile imports roster entries from an Excel or CSV file,
// matching existing rows by empkey and otherwise creating new ones.
func (s *EmployeeService) ImportEmployeesFromFile(carrierID uuid.UUID, file multipart.File, filename string, userID uuid.UUID) (*dtos.ImportResult, error) {
	var records [][]string
	var err error

	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		records, err = s.parseCSV(file)
	} else {
		records, err = s.parseExcel(file)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing file: %w", err)
	}

	if len(records) < 2 {
		return nil, errors.New("file must contain header row and at least one data row")
	}

	result := &dtos.ImportResult{
		Total:  len(records) - 1,
		Errors: []map[string]interface{}{},
	}

	headers := records[0]
	headerMap := make(map[string]int)
	for i, h := range headers {
		headerMap[strings.ToLower(strings.TrimSpace(h))] = i
	}

	for rowNum, row := range records[1:] {
		emp, err := s.rowToEmployee(row, headerMap, carrierID, userID)
		if err != nil {
			result.Errors = append(result.Errors, map[string]interface{}{
				"row":   rowNum + 2,
				"error": err.Error(),
			})
			result.Failed++
			continue
		}

		existing, findErr := s.employeeRepo.FindByEmpkey(carrierID, emp.Empkey)
		if findErr == nil {
			emp.ID = existing.ID
			emp.CreatedAt = existing.CreatedAt
			emp.CreatedBy = existing.CreatedBy
			if err := s.db.Save(emp).Error; err != nil {
				result.Errors = append(result.Errors, map[string]interface{}{
					"row":   rowNum + 2,
					"error": fmt.Sprintf("failed to update: %s", err.Error()),
				})
				result.Failed++
				continue
			}
			result.Updated++
			continue
		}

		if err := s.db.Create(emp).Error; err != nil {
			result.Errors = append(result.Errors, map[string]interface{}{
				"row":   rowNum + 2,
				"error": err.Error(),
			})
			result.Failed++
			continue
		}
		result.Created++
	}

	return result, nil
}

func (s *EmployeeService) parseCSV(file multipart.File) ([][]string, error) {
	reader := csv.NewReader(file)
	return reader.ReadAll()
}

func (s *EmployeeService) parseExcel(file multipart.File) ([][]string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("no sheets found in Excel file")
	}
	sheetName := sheets[0]

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	var result [][]string
	for rowIdx, row := range rows {
		var processedRow []string
		for colIdx := range row {
			colName, _ := excelize.ColumnNumberToName(colIdx + 1)
			cellRef := colName + fmt.Sprintf("%d", rowIdx+1)
			cellValue, _ := f.GetCellValue(sheetName, cellRef)

			if cellValue != "" && rowIdx > 0 {
				if serial, err := strconv.ParseFloat(cellValue, 64); err == nil {
					if serial > 1 && serial < 2958466 {
						if len(result) > 0 && colIdx < len(result[0]) {
							headerLower := strings.ToLower(result[0][colIdx])
							if strings.Contains(headerLower, "date") || strings.Contains(headerLower, "dob") || strings.Contains(headerLower, "retdate") {
								t, err := excelize.ExcelDateToTime(serial, false)
								if err == nil {
									cellValue = t.Format("2006-01-02")
								}
							}
						}
					}
				}
			}
			processedRow = append(processedRow, cellValue)
		}
		result = append(result, processedRow)
	}

	return result, nil
}

func (s *EmployeeService) rowToEmployee(row []string, headerMap map[string]int, carrierID, userID uuid.UUID) (*models.EmployeeRecord, error) {
	getValue := func(key string) string {
		if idx, ok := headerMap[key]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	empkey := getValue("empkey")
	egStr := getValue("eg")
	orderStr := getValue("order")

	if empkey == "" {
		return nil, errors.New("empkey is required")
	}
	if egStr == "" {
		return nil, errors.New("eg is required")
	}
	if orderStr == "" {
		return nil, errors.New("order is required")
	}

	eg, err := strconv.Atoi(egStr)
	if err != nil {
		return nil, fmt.Errorf("invalid eg: %w", err)
	}
	order, err := strconv.Atoi(orderStr)
	if err != nil {
		return nil, fmt.Errorf("invalid order: %w", err)
	}
	sg, _ := strconv.Atoi(getValue("sg"))
	fur0, _ := strconv.Atoi(getValue("fur0"))

	dob, err := parseDate(getValue("dob"))
	if err != nil {
		return nil, fmt.Errorf("invalid dob: %w", err)
	}
	longevity, err := parseDate(getValue("longevity_date"))
	if err != nil {
		longevity = dob
	}
	retDate, err := parseDate(getValue("retdate"))
	if err != nil {
		return nil, fmt.Errorf("invalid retdate: %w", err)
	}

	emp := &models.EmployeeRecord{
		Empkey:        empkey,
		EG:            eg,
		SG:            sg,
		Fur0:          fur0,
		DOB:           dob,
		LongevityDate: longevity,
		RetDate:       retDate,
		Order:         order,
		FullName:      getValue("full_name"),
		CarrierID:     carrierID,
		CreatedBy:     &userID,
	}

	return emp, nil
}

func parseDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, errors.New("date is required")
	}
	dateStr = strings.TrimSpace(dateStr)

	if serial, err := strconv.ParseFloat(dateStr, 64); err == nil && serial > 1 && serial < 2958466 {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return t, nil
		}
	}

	formats := []string{
		"2006-01-02",
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"01/02/2006",
		"02/01/2006",
		"2006/01/02",
		time.RFC3339,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// GenerateImportTemplate generates an Excel template for roster import
func (s *EmployeeService) GenerateImportTemplate() ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Roster"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"empkey", "eg", "sg", "fur0", "dob", "longevity_date", "retdate", "order", "full_name",
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

	exampleData := []string{
		"E0001", "1", "0", "0", "1975-03-12", "1998-06-01", "2035-03-12", "1", "Jane Doe",
	}
	for i, value := range exampleData {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(sheet, cell, value)
	}

	f.NewSheet("Instructions")
	instructions := [][]string{
		{"Column", "Required", "Description"},
		{"empkey", "Yes", "Unique employee identifier, unique per carrier"},
		{"eg", "Yes", "Employee group (legacy carrier/craft)"},
		{"sg", "No", "Special-rights sub-group, 0 if none"},
		{"fur0", "No", "1 if already furloughed at list date, else 0"},
		{"dob", "Yes", "Date of birth, YYYY-MM-DD"},
		{"longevity_date", "No", "Date establishing service-length credit"},
		{"retdate", "Yes", "Mandatory retirement date, YYYY-MM-DD"},
		{"order", "Yes", "Proposed integrated list position, unique per carrier"},
		{"full_name", "No", "Display name"},
	}
	for i, row := range instructions {
		for j, value := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			f.SetCellValue("Instructions", cell, value)
		}
	}
	f.SetRowStyle("Instructions", 1, 1, style)

	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, 18)
	}
	f.SetColWidth("Instructions", "A", "A", 20)
	f.SetColWidth("Instructions", "B", "B", 10)
	f.SetColWidth("Instructions", "C", "C", 50)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
