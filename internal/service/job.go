package service

import (
	"context"
	"strings"
	"time"

	"github.com/jobboard/jobboard-go/internal/events"
	"github.com/jobboard/jobboard-go/internal/model"
	"github.com/jobboard/jobboard-go/internal/repository"
)

// JobService handles job postings.
type JobService struct {
	jobs   *repository.JobRepository
	events events.Publisher
	now    func() time.Time
}

// NewJobService creates a new JobService.
func NewJobService(jobs *repository.JobRepository, pub events.Publisher) *JobService {
	return &JobService{jobs: jobs, events: pub, now: time.Now}
}

// Create posts a job on behalf of an employer. The caller has already checked the role.
func (s *JobService) Create(ctx context.Context, employerID int64, req model.CreateJobRequest) (*model.Job, error) {
	job := &model.Job{
		JobTitle:       strings.TrimSpace(req.JobTitle),
		JobDescription: strings.TrimSpace(req.JobDescription),
		CompanyName:    strings.TrimSpace(req.CompanyName),
		Location:       strings.TrimSpace(req.Location),
		SalaryRange:    strings.TrimSpace(req.SalaryRange),
		PostedBy:       employerID,
		CreatedAt:      s.now().UTC(),
	}
	if job.JobTitle == "" || job.JobDescription == "" || job.CompanyName == "" || job.Location == "" {
		return nil, ErrMissingFields
	}
	if job.SalaryRange == "" {
		job.SalaryRange = model.DefaultSalaryRange
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	publish(ctx, s.events, events.New(events.TypeJobPosted, job))
	return job, nil
}

// List returns every job, newest first.
func (s *JobService) List(ctx context.Context) ([]model.Job, error) {
	return s.jobs.List(ctx)
}

// Companies returns the companies with open postings, busiest first.
func (s *JobService) Companies(ctx context.Context) ([]model.CompanySummary, error) {
	return s.jobs.CompanySummaries(ctx)
}
