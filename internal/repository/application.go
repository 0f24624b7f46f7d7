package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jobboard/jobboard-go/internal/model"
)

var ErrDuplicateApplication = errors.New("application already exists")

// ApplicationRepository handles application persistence operations.
type ApplicationRepository struct {
	db *sql.DB
}

// NewApplicationRepository creates a new ApplicationRepository.
func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts an application. A second application for the same (job, candidate)
// pair fails with ErrDuplicateApplication, whatever the caller checked beforehand.
func (r *ApplicationRepository) Create(ctx context.Context, app *model.Application) error {
	query := `INSERT INTO applications
		(job_id, candidate_id, applicant_name, phone, address, resume_url, application_status, applied_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		app.JobID, app.CandidateID, app.ApplicantName, app.Phone, app.Address,
		app.ResumeURL, string(app.ApplicationStatus), app.AppliedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateApplication
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	app.ID = id
	return nil
}

// Exists reports whether the candidate already applied to the job.
func (r *ApplicationRepository) Exists(ctx context.Context, jobID, candidateID int64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM applications WHERE job_id = ? AND candidate_id = ?`,
		jobID, candidateID,
	).Scan(&n)
	return n > 0, err
}

// CountByCandidate returns how many applications a candidate submitted.
func (r *ApplicationRepository) CountByCandidate(ctx context.Context, candidateID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM applications WHERE candidate_id = ?`, candidateID,
	).Scan(&n)
	return n, err
}

// ListByCandidate returns a candidate's most recent applications with their jobs.
func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID int64, limit int) ([]model.CandidateApplication, error) {
	query := `SELECT a.id, a.job_id, a.candidate_id, a.applicant_name, a.phone, a.address,
			a.resume_url, a.application_status, a.applied_at,
			j.id, j.job_title, j.job_description, j.company_name, j.location, j.salary_range,
			j.posted_by, j.created_at
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.candidate_id = ?
		ORDER BY a.applied_at DESC, a.id DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, candidateID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.CandidateApplication{}
	for rows.Next() {
		var ca model.CandidateApplication
		var status string
		if err := rows.Scan(
			&ca.ID, &ca.JobID, &ca.CandidateID, &ca.ApplicantName, &ca.Phone, &ca.Address,
			&ca.ResumeURL, &status, &ca.AppliedAt,
			&ca.Job.ID, &ca.Job.JobTitle, &ca.Job.JobDescription, &ca.Job.CompanyName,
			&ca.Job.Location, &ca.Job.SalaryRange, &ca.Job.PostedBy, &ca.Job.CreatedAt,
		); err != nil {
			return nil, err
		}
		ca.ApplicationStatus = model.ApplicationStatus(status)
		result = append(result, ca)
	}
	return result, rows.Err()
}

// CountByEmployer returns how many applications target jobs posted by the employer.
func (r *ApplicationRepository) CountByEmployer(ctx context.Context, employerID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM applications a JOIN jobs j ON j.id = a.job_id WHERE j.posted_by = ?`,
		employerID,
	).Scan(&n)
	return n, err
}

// ListByEmployer returns every applicant to the employer's jobs, newest application first.
func (r *ApplicationRepository) ListByEmployer(ctx context.Context, employerID int64) ([]model.Applicant, error) {
	query := `SELECT a.id, a.job_id, a.candidate_id, a.applicant_name, a.phone, a.address,
			a.resume_url, a.application_status, a.applied_at,
			u.id, u.name, u.email, u.role
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN users u ON u.id = a.candidate_id
		WHERE j.posted_by = ?
		ORDER BY a.applied_at DESC, a.id DESC`

	rows, err := r.db.QueryContext(ctx, query, employerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Applicant{}
	for rows.Next() {
		var ap model.Applicant
		var status, role string
		if err := rows.Scan(
			&ap.ID, &ap.JobID, &ap.CandidateID, &ap.ApplicantName, &ap.Phone, &ap.Address,
			&ap.ResumeURL, &status, &ap.AppliedAt,
			&ap.Candidate.ID, &ap.Candidate.Name, &ap.Candidate.Email, &role,
		); err != nil {
			return nil, err
		}
		ap.ApplicationStatus = model.ApplicationStatus(status)
		ap.Candidate.Role = model.Role(role)
		result = append(result, ap)
	}
	return result, rows.Err()
}
