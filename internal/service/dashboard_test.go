package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jobboard/jobboard-go/internal/model"
)

func TestCandidateDashboard_LimitsToRecent(t *testing.T) {
	env := newTestEnv(t)
	employer := env.signup(t, "Boss", "boss@example.com", model.RoleEmployer)
	candidate := env.signup(t, "Grace", "grace@example.com", model.RoleCandidate)

	clock := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	env.apps.now = func() time.Time { return clock }

	const total = RecentApplicationsLimit + 2
	var last *model.Job
	for i := 0; i < total; i++ {
		last = env.postJob(t, employer.ID, fmt.Sprintf("job-%02d", i))
		clock = clock.Add(time.Minute)
		if _, err := env.apps.Apply(context.Background(), candidate.ID, model.ApplyRequest{JobID: last.ID, ApplicantName: "Grace"}); err != nil {
			t.Fatalf("Apply() unexpected error: %v", err)
		}
	}

	dash, err := env.dashboard.Candidate(context.Background(), candidate.ID)
	if err != nil {
		t.Fatalf("Candidate() unexpected error: %v", err)
	}
	if dash.ApplicationsCount != total {
		t.Errorf("ApplicationsCount = %d, want %d", dash.ApplicationsCount, total)
	}
	if len(dash.Applications) != RecentApplicationsLimit {
		t.Fatalf("len(Applications) = %d, want %d", len(dash.Applications), RecentApplicationsLimit)
	}
	if dash.Applications[0].Job.ID != last.ID {
		t.Errorf("newest application job = %d, want %d", dash.Applications[0].Job.ID, last.ID)
	}
}

func TestEmployerDashboard_GroupsApplicants(t *testing.T) {
	env := newTestEnv(t)
	employer := env.signup(t, "Boss", "boss@example.com", model.RoleEmployer)
	rival := env.signup(t, "Rival", "rival@example.com", model.RoleEmployer)
	grace := env.signup(t, "Grace", "grace@example.com", model.RoleCandidate)
	alan := env.signup(t, "Alan", "alan@example.com", model.RoleCandidate)

	clock := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	env.jobs.now = func() time.Time { return clock }
	backend := env.postJob(t, employer.ID, "Backend")
	clock = clock.Add(time.Hour)
	frontend := env.postJob(t, employer.ID, "Frontend")
	env.postJob(t, rival.ID, "Elsewhere")

	for _, c := range []model.UserSummary{grace, alan} {
		if _, err := env.apps.Apply(context.Background(), c.ID, model.ApplyRequest{JobID: backend.ID, ApplicantName: c.Name}); err != nil {
			t.Fatalf("Apply() unexpected error: %v", err)
		}
	}

	dash, err := env.dashboard.Employer(context.Background(), employer.ID)
	if err != nil {
		t.Fatalf("Employer() unexpected error: %v", err)
	}
	if dash.JobsCount != 2 || dash.ApplicantsCount != 2 {
		t.Errorf("counts = %d jobs, %d applicants; want 2, 2", dash.JobsCount, dash.ApplicantsCount)
	}
	if dash.Jobs[0].ID != frontend.ID || dash.Jobs[1].ID != backend.ID {
		t.Fatalf("jobs not newest first: %d, %d", dash.Jobs[0].ID, dash.Jobs[1].ID)
	}
	if dash.Jobs[0].Applications == nil || len(dash.Jobs[0].Applications) != 0 {
		t.Errorf("frontend applications = %v, want empty", dash.Jobs[0].Applications)
	}
	if len(dash.Jobs[1].Applications) != 2 {
		t.Fatalf("backend applications = %d, want 2", len(dash.Jobs[1].Applications))
	}
	for _, a := range dash.Jobs[1].Applications {
		if a.Candidate.Email == "" || a.Candidate.Name != a.ApplicantName {
			t.Errorf("applicant = %+v", a)
		}
	}
}

func TestExportApplicants(t *testing.T) {
	env := newTestEnv(t)
	employer := env.signup(t, "Boss", "boss@example.com", model.RoleEmployer)
	grace := env.signup(t, "Grace", "grace@example.com", model.RoleCandidate)
	job := env.postJob(t, employer.ID, "Backend")
	if _, err := env.apps.Apply(context.Background(), grace.ID, model.ApplyRequest{
		JobID: job.ID, ApplicantName: "Grace", Phone: "555-0100",
	}); err != nil {
		t.Fatalf("Apply() unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := NewExportService(env.dashboard).WriteApplicants(context.Background(), employer.ID, &buf); err != nil {
		t.Fatalf("WriteApplicants() unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() unexpected error: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(applicantsSheet)
	if err != nil {
		t.Fatalf("GetRows() unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1", len(rows))
	}
	if rows[0][0] != "Job ID" || rows[0][len(rows[0])-1] != "Applied At" {
		t.Errorf("header = %v", rows[0])
	}
	if len(rows[0]) != len(applicantColumns) {
		t.Errorf("header columns = %d, want %d", len(rows[0]), len(applicantColumns))
	}
	for col, want := range map[string]float64{"C": 24, "G": 48} {
		if w, err := f.GetColWidth(applicantsSheet, col); err != nil || w != want {
			t.Errorf("GetColWidth(%s) = %v, %v; want %v", col, w, err, want)
		}
	}
	want := map[int]string{1: "Backend", 2: "Grace", 3: "grace@example.com", 4: "555-0100", 6: model.NoResumeURL, 7: "pending"}
	for col, v := range want {
		if rows[1][col] != v {
			t.Errorf("row[1][%d] = %q, want %q", col, rows[1][col], v)
		}
	}
}
