package service

import (
	"context"

	"github.com/jobboard/jobboard-go/internal/model"
	"github.com/jobboard/jobboard-go/internal/repository"
)

// RecentApplicationsLimit caps the applications shown on a candidate dashboard.
const RecentApplicationsLimit = 10

// DashboardService assembles the candidate and employer overviews.
type DashboardService struct {
	jobs *repository.JobRepository
	apps *repository.ApplicationRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(jobs *repository.JobRepository, apps *repository.ApplicationRepository) *DashboardService {
	return &DashboardService{jobs: jobs, apps: apps}
}

// Candidate returns the total application count and the most recent applications.
func (s *DashboardService) Candidate(ctx context.Context, candidateID int64) (*model.CandidateDashboard, error) {
	count, err := s.apps.CountByCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	recent, err := s.apps.ListByCandidate(ctx, candidateID, RecentApplicationsLimit)
	if err != nil {
		return nil, err
	}
	return &model.CandidateDashboard{ApplicationsCount: count, Applications: recent}, nil
}

// Employer returns the employer's jobs, newest first, each with its applicants.
func (s *DashboardService) Employer(ctx context.Context, employerID int64) (*model.EmployerDashboard, error) {
	jobs, err := s.jobs.ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, err
	}
	applicants, err := s.apps.ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, err
	}

	byJob := make(map[int64][]model.Applicant, len(jobs))
	for _, a := range applicants {
		byJob[a.JobID] = append(byJob[a.JobID], a)
	}

	out := &model.EmployerDashboard{
		JobsCount:       len(jobs),
		ApplicantsCount: len(applicants),
		Jobs:            make([]model.EmployerJob, 0, len(jobs)),
	}
	for _, j := range jobs {
		apps := byJob[j.ID]
		if apps == nil {
			apps = []model.Applicant{}
		}
		out.Jobs = append(out.Jobs, model.EmployerJob{Job: j, Applications: apps})
	}
	return out, nil
}
