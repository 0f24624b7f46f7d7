package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const applicantsSheet = "Applicants"

var applicantColumns = []string{"Job ID", "Job Title", "Applicant", "Email", "Phone", "Address", "Resume", "Status", "Applied At"}

// ExportService renders an employer's applicants as a spreadsheet.
type ExportService struct {
	dashboards *DashboardService
}

// NewExportService creates a new ExportService.
func NewExportService(dashboards *DashboardService) *ExportService {
	return &ExportService{dashboards: dashboards}
}

// WriteApplicants writes an XLSX workbook with one row per application to w.
func (s *ExportService) WriteApplicants(ctx context.Context, employerID int64, w io.Writer) error {
	dash, err := s.dashboards.Employer(ctx, employerID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", applicantsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(applicantColumns))
	for i, h := range applicantColumns {
		header[i] = h
	}
	if err := f.SetSheetRow(applicantsSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, job := range dash.Jobs {
		for _, a := range job.Applications {
			values := []any{
				job.ID,
				job.JobTitle,
				a.ApplicantName,
				a.Candidate.Email,
				a.Phone,
				a.Address,
				a.ResumeURL,
				string(a.ApplicationStatus),
				a.AppliedAt.UTC().Format(time.RFC3339),
			}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return fmt.Errorf("row %d: %w", row, err)
			}
			if err := f.SetSheetRow(applicantsSheet, cell, &values); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
			row++
		}
	}

	if err := f.SetColWidth(applicantsSheet, "B", "D", 24); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(applicantsSheet, "G", "G", 48); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	return f.Write(w)
}
