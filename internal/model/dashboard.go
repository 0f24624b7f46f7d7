package model

// CandidateApplication is an application together with the job it targets.
type CandidateApplication struct {
	Application
	Job Job `json:"job"`
}

// CandidateDashboard summarises a candidate's recent applications.
type CandidateDashboard struct {
	ApplicationsCount int                    `json:"applications_count"`
	Applications      []CandidateApplication `json:"applications"`
}

// Applicant is an application together with the candidate who submitted it.
type Applicant struct {
	Application
	Candidate UserProfile `json:"candidate"`
}

// EmployerJob is one of an employer's postings with its applicants.
type EmployerJob struct {
	Job
	Applications []Applicant `json:"applications"`
}

// EmployerDashboard summarises an employer's postings and applicants.
type EmployerDashboard struct {
	JobsCount       int           `json:"jobs_count"`
	ApplicantsCount int           `json:"applicants_count"`
	Jobs            []EmployerJob `json:"jobs"`
}
