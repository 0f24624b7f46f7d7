package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jobboard/jobboard-go/internal/events"
	"github.com/jobboard/jobboard-go/internal/model"
	"github.com/jobboard/jobboard-go/internal/repository"
	"github.com/jobboard/jobboard-go/internal/storage/drive"
)

// MaxResumeSize is the largest résumé accepted, in bytes.
const MaxResumeSize = 5 << 20

var allowedResumeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

var (
	ErrJobIDRequired      = errors.New("job id is required")
	ErrNameRequired       = errors.New("name is required")
	ErrJobNotFound        = errors.New("job not found")
	ErrAlreadyApplied     = errors.New("you have already applied for this job")
	ErrResumeType         = errors.New("only PDF and Word documents are allowed")
	ErrResumeTooLarge     = errors.New("file size must be under 5MB")
	ErrUploadsUnavailable = errors.New("resume uploads are not configured")
)

// ResumeUploader stores a résumé and returns where it can be viewed.
type ResumeUploader interface {
	Upload(ctx context.Context, data []byte, name, mimeType string) (*drive.Result, error)
}

// ApplicationService handles job applications.
type ApplicationService struct {
	jobs     *repository.JobRepository
	apps     *repository.ApplicationRepository
	uploader ResumeUploader
	events   events.Publisher
	now      func() time.Time
}

// NewApplicationService creates a new ApplicationService. uploader may be nil,
// in which case applications with a résumé fail with ErrUploadsUnavailable.
func NewApplicationService(jobs *repository.JobRepository, apps *repository.ApplicationRepository, uploader ResumeUploader, pub events.Publisher) *ApplicationService {
	return &ApplicationService{
		jobs:     jobs,
		apps:     apps,
		uploader: uploader,
		events:   pub,
		now:      time.Now,
	}
}

// Apply records a candidate's application, uploading the résumé first when one
// is attached. A failed upload aborts the whole application.
func (s *ApplicationService) Apply(ctx context.Context, candidateID int64, req model.ApplyRequest) (*model.Application, error) {
	if req.JobID <= 0 {
		return nil, ErrJobIDRequired
	}
	name := strings.TrimSpace(req.ApplicantName)
	if name == "" {
		return nil, ErrNameRequired
	}

	if _, err := s.jobs.GetByID(ctx, req.JobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	// Cheap early exit so a résumé is not uploaded for an obvious duplicate.
	// The unique index below still decides concurrent submissions.
	exists, err := s.apps.Exists(ctx, req.JobID, candidateID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyApplied
	}

	now := s.now().UTC()
	resumeURL := model.NoResumeURL
	if r := req.Resume; r != nil && r.Size > 0 {
		if err := validateResume(r); err != nil {
			return nil, err
		}
		if s.uploader == nil {
			return nil, ErrUploadsUnavailable
		}
		res, err := s.uploader.Upload(ctx, r.Data, ResumeObjectName(candidateID, now, r.Filename), r.ContentType)
		if err != nil {
			return nil, fmt.Errorf("upload resume: %w", err)
		}
		resumeURL = res.WebViewLink
	}

	app := &model.Application{
		JobID:             req.JobID,
		CandidateID:       candidateID,
		ApplicantName:     name,
		Phone:             strings.TrimSpace(req.Phone),
		Address:           strings.TrimSpace(req.Address),
		ResumeURL:         resumeURL,
		ApplicationStatus: model.StatusPending,
		AppliedAt:         now,
	}
	if err := s.apps.Create(ctx, app); err != nil {
		if errors.Is(err, repository.ErrDuplicateApplication) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}

	publish(ctx, s.events, events.New(events.TypeApplicationSubmitted, app))
	return app, nil
}

func validateResume(r *model.ResumeFile) error {
	if !allowedResumeTypes[r.ContentType] {
		return ErrResumeType
	}
	if r.Size > MaxResumeSize || int64(len(r.Data)) > MaxResumeSize {
		return ErrResumeTooLarge
	}
	return nil
}

// ResumeObjectName is the name a résumé is stored under:
// resume_<candidate>_<unix millis>_<original filename>.
func ResumeObjectName(candidateID int64, at time.Time, filename string) string {
	return fmt.Sprintf("resume_%d_%d_%s", candidateID, at.UnixMilli(), filename)
}
