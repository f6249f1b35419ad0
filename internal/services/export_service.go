package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"propmatch_backend/internal/models"

	"github.com/xuri/excelize/v2"
)

const jobsSheet = "Jobs"

// JobExportHeader is the first row of the admin jobs workbook.
var JobExportHeader = []string{
	"Job ID",
	"Customer ID",
	"Job Type",
	"Title",
	"Purchase Type",
	"Property Type",
	"Budget Min",
	"Budget Max",
	"Regions",
	"States",
	"Specialisations",
	"Selected Professionals",
	"Suggested",
	"Finalised",
	"Status",
	"Created At",
}

type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// Jobs renders the jobs as an XLSX workbook, one row per job.
func (s *ExportService) Jobs(jobs []models.Job) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(jobsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(jobsSheet, "A1", &JobExportHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	lastCol, err := excelize.CoordinatesToCellName(len(JobExportHeader), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(jobsSheet, "A1", lastCol, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i := range jobs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := jobRow(&jobs[i])
		if err := f.SetSheetRow(jobsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func jobRow(j *models.Job) []interface{} {
	finalised := make([]string, 0, len(j.Matches))
	for _, m := range j.Matches {
		finalised = append(finalised, m.ProfessionalID)
	}

	return []interface{}{
		j.ID,
		j.CustomerID,
		string(j.JobType),
		j.Title,
		j.PurchaseType,
		j.PropertyType,
		budgetCell(j.BudgetMin),
		budgetCell(j.BudgetMax),
		strings.Join(j.Regions, ", "),
		strings.Join(j.States, ", "),
		strings.Join(j.Specialisations, ", "),
		strings.Join(j.SelectedProfessionals, ", "),
		len(j.SuggestedProfessionals),
		strings.Join(finalised, ", "),
		string(j.Status),
		j.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func budgetCell(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
