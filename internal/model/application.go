package model

import "time"

// ApplicationStatus tracks an employer's review of an application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusReviewed ApplicationStatus = "reviewed"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// NoResumeURL is stored when the candidate applies without a résumé.
const NoResumeURL = "No resume provided"

// Application joins a candidate to a job. At most one exists per (JobID, CandidateID).
type Application struct {
	ID                int64             `json:"id"`
	JobID             int64             `json:"job_id"`
	CandidateID       int64             `json:"candidate_id"`
	ApplicantName     string            `json:"applicant_name"`
	Phone             string            `json:"phone"`
	Address           string            `json:"address"`
	ResumeURL         string            `json:"resume_url"`
	ApplicationStatus ApplicationStatus `json:"application_status"`
	AppliedAt         time.Time         `json:"applied_at"`
}

// ResumeFile is an uploaded résumé as received from the multipart form.
type ResumeFile struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// ApplyRequest is the parsed multipart form of POST /api/apply.
type ApplyRequest struct {
	JobID         int64
	ApplicantName string
	Phone         string
	Address       string
	Resume        *ResumeFile
}

// ApplicationResponse is the body of a successful application.
type ApplicationResponse struct {
	Message     string      `json:"message"`
	Application Application `json:"application"`
}
