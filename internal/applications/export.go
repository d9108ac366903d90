package applications

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jobhive/jobhive-backend/pkg/db/models"
)

const exportSheet = "jobApplications"

var exportColumns = []string{"jobId", "userId", "userTechSkills", "userSoftSkills"}

// ExportDaySheet writes the applications for one day into an XLSX workbook
// under dir and returns the file path. The day becomes part of the file
// name and must be a calendar date, never a path fragment.
func ExportDaySheet(dir, day string, apps []ApplicationDTO) (string, error) {
	if parsed, err := time.Parse(models.CreatedDayLayout, day); err != nil || parsed.Format(models.CreatedDayLayout) != day {
		return "", fmt.Errorf("day %q is not a %s date", day, models.CreatedDayLayout)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return "", fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range exportColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return "", fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return "", fmt.Errorf("writing header: %w", err)
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(exportSheet, col, col, 50); err != nil {
			return "", fmt.Errorf("setting column width: %w", err)
		}
	}

	for i, app := range apps {
		row := i + 2
		values := []any{
			app.JobID.String(),
			app.UserID.String(),
			strings.Join(app.TechSkills, ", "),
			strings.Join(app.SoftSkills, ", "),
		}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return "", fmt.Errorf("row cell: %w", err)
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return "", fmt.Errorf("writing row: %w", err)
			}
		}
	}

	path := filepath.Join(dir, fmt.Sprintf("jobApplications-%s.xlsx", day))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving workbook: %w", err)
	}
	return path, nil
}
