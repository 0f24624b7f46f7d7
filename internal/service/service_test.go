package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jobboard/jobboard-go/internal/crypto"
	"github.com/jobboard/jobboard-go/internal/events"
	"github.com/jobboard/jobboard-go/internal/model"
	"github.com/jobboard/jobboard-go/internal/repository"
	"github.com/jobboard/jobboard-go/internal/repository/repotest"
	"github.com/jobboard/jobboard-go/internal/storage/drive"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type fakeUploader struct {
	mu    sync.Mutex
	names []string
	types []string
	err   error
}

func (u *fakeUploader) Upload(_ context.Context, data []byte, name, mimeType string) (*drive.Result, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.names = append(u.names, name)
	u.types = append(u.types, mimeType)
	if u.err != nil {
		return nil, u.err
	}
	return &drive.Result{FileID: "f1", WebViewLink: "https://drive.example/" + name}, nil
}

func (u *fakeUploader) calls() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.names)
}

type testEnv struct {
	db        *sql.DB
	codec     *crypto.TokenCodec
	publisher *recordingPublisher
	uploader  *fakeUploader
	auth      *AuthService
	jobs      *JobService
	apps      *ApplicationService
	dashboard *DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := repotest.NewDB(t)
	users := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)

	env := &testEnv{
		db:        db,
		codec:     crypto.NewTokenCodec("service-secret", 24*time.Hour),
		publisher: &recordingPublisher{},
		uploader:  &fakeUploader{},
	}
	env.auth = NewAuthService(users, env.codec, env.publisher)
	env.jobs = NewJobService(jobRepo, env.publisher)
	env.apps = NewApplicationService(jobRepo, appRepo, env.uploader, env.publisher)
	env.dashboard = NewDashboardService(jobRepo, appRepo)
	return env
}

func (e *testEnv) signup(t *testing.T, name, email string, role model.Role) model.UserSummary {
	t.Helper()
	res, err := e.auth.Signup(context.Background(), model.SignupRequest{
		Name: name, Email: email, Password: "pa55word", Role: role,
	})
	if err != nil {
		t.Fatalf("Signup(%s) unexpected error: %v", email, err)
	}
	return res.User
}

func (e *testEnv) postJob(t *testing.T, employerID int64, title string) *model.Job {
	t.Helper()
	job, err := e.jobs.Create(context.Background(), employerID, model.CreateJobRequest{
		JobTitle: title, JobDescription: "Build things", CompanyName: "Acme", Location: "Remote",
	})
	if err != nil {
		t.Fatalf("Create(%s) unexpected error: %v", title, err)
	}
	return job
}

func assertErr(t *testing.T, got, want error) {
	t.Helper()
	if !errors.Is(got, want) {
		t.Errorf("error = %v, want %v", got, want)
	}
}
