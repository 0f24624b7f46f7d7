package model

import "time"

// DefaultSalaryRange is stored when an employer leaves the salary empty.
const DefaultSalaryRange = "Not specified"

// Job is a posting created by an employer.
type Job struct {
	ID             int64     `json:"id"`
	JobTitle       string    `json:"job_title"`
	JobDescription string    `json:"job_description"`
	CompanyName    string    `json:"company_name"`
	Location       string    `json:"location"`
	SalaryRange    string    `json:"salary_range"`
	PostedBy       int64     `json:"posted_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateJobRequest represents a job posting request body.
type CreateJobRequest struct {
	JobTitle       string `json:"job_title"`
	JobDescription string `json:"job_description"`
	CompanyName    string `json:"company_name"`
	Location       string `json:"location"`
	SalaryRange    string `json:"salary_range"`
}

// JobResponse is the body of a successful job creation.
type JobResponse struct {
	Message string `json:"message"`
	Job     Job    `json:"job"`
}

// JobListResponse is the body of GET /api/jobs.
type JobListResponse struct {
	Jobs []Job `json:"jobs"`
}

// CompanySummary counts open postings per company name.
type CompanySummary struct {
	Name     string `json:"name"`
	JobCount int    `json:"job_count"`
}

// CompanyListResponse is the body of GET /api/companies.
type CompanyListResponse struct {
	Companies []CompanySummary `json:"companies"`
}
