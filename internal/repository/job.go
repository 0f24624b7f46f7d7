package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jobboard/jobboard-go/internal/model"
)

var ErrJobNotFound = errors.New("job not found")

const jobColumns = `id, job_title, job_description, company_name, location, salary_range, posted_by, created_at`

// JobRepository handles job persistence operations.
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new JobRepository.
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a job and sets its generated ID.
func (r *JobRepository) Create(ctx context.Context, job *model.Job) error {
	query := `INSERT INTO jobs (job_title, job_description, company_name, location, salary_range, posted_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		job.JobTitle, job.JobDescription, job.CompanyName, job.Location,
		job.SalaryRange, job.PostedBy, job.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	job.ID = id
	return nil
}

// GetByID retrieves a single job.
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`

	var job model.Job
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&job.ID, &job.JobTitle, &job.JobDescription, &job.CompanyName,
		&job.Location, &job.SalaryRange, &job.PostedBy, &job.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

// List returns every job, newest first. The id breaks ties between equal timestamps.
func (r *JobRepository) List(ctx context.Context) ([]model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC, id DESC`
	return r.query(ctx, query)
}

// ListByEmployer returns the jobs posted by one employer, newest first.
func (r *JobRepository) ListByEmployer(ctx context.Context, employerID int64) ([]model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE posted_by = ? ORDER BY created_at DESC, id DESC`
	return r.query(ctx, query, employerID)
}

// CountByEmployer returns how many jobs an employer has posted.
func (r *JobRepository) CountByEmployer(ctx context.Context, employerID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs WHERE posted_by = ?`, employerID).Scan(&n)
	return n, err
}

// CompanySummaries groups postings by company name, most postings first.
func (r *JobRepository) CompanySummaries(ctx context.Context) ([]model.CompanySummary, error) {
	query := `SELECT company_name, COUNT(*) AS job_count FROM jobs
		GROUP BY company_name ORDER BY job_count DESC, company_name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := []model.CompanySummary{}
	for rows.Next() {
		var c model.CompanySummary
		if err := rows.Scan(&c.Name, &c.JobCount); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (r *JobRepository) query(ctx context.Context, query string, args ...any) ([]model.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []model.Job{}
	for rows.Next() {
		var j model.Job
		if err := rows.Scan(
			&j.ID, &j.JobTitle, &j.JobDescription, &j.CompanyName,
			&j.Location, &j.SalaryRange, &j.PostedBy, &j.CreatedAt,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}
