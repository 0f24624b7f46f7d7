package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jobboard/jobboard-go/internal/crypto"
	"github.com/jobboard/jobboard-go/internal/events"
	"github.com/jobboard/jobboard-go/internal/middleware"
	"github.com/jobboard/jobboard-go/internal/repository"
	"github.com/jobboard/jobboard-go/internal/repository/repotest"
	"github.com/jobboard/jobboard-go/internal/service"
)

func newTestRouter(t *testing.T) (http.Handler, *crypto.TokenCodec) {
	t.Helper()
	db := repotest.NewDB(t)
	codec := crypto.NewTokenCodec("router-secret", 24*time.Hour)

	users := repository.NewUserRepository(db)
	jobs := repository.NewJobRepository(db)
	apps := repository.NewApplicationRepository(db)
	dashboards := service.NewDashboardService(jobs, apps)

	return New(Deps{
		Codec:              codec,
		Auth:               service.NewAuthService(users, codec, events.Noop{}),
		Jobs:               service.NewJobService(jobs, events.Noop{}),
		Applications:       service.NewApplicationService(jobs, apps, nil, events.Noop{}),
		Dashboards:         dashboards,
		Export:             service.NewExportService(dashboards),
		AuthRateLimitRPS:   100,
		AuthRateLimitBurst: 100,
	}), codec
}

func do(h http.Handler, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func cookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	t.Fatalf("no session cookie (status %d: %s)", rec.Code, rec.Body.String())
	return nil
}

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := do(h, http.MethodGet, "/health", nil, nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("health = %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestProtectedPagesRedirectWithoutValidSession(t *testing.T) {
	h, _ := newTestRouter(t)
	expired, err := crypto.NewTokenCodec("router-secret", -time.Minute).Sign(1, "candidate")
	if err != nil {
		t.Fatalf("Sign() unexpected error: %v", err)
	}

	paths := []string{"/candidate-dashboard", "/candidate-dashboard/applications", "/employer-dashboard", "/employer-dashboard/post-job"}
	cookies := []*http.Cookie{
		nil,
		{Name: middleware.SessionCookieName, Value: ""},
		{Name: middleware.SessionCookieName, Value: "garbage"},
		{Name: middleware.SessionCookieName, Value: expired},
	}
	for _, p := range paths {
		for _, c := range cookies {
			rec := do(h, http.MethodGet, p, nil, c)
			if rec.Code != http.StatusTemporaryRedirect || rec.Header().Get("Location") != middleware.LoginPath {
				t.Errorf("GET %s with %v: %d %q, want 307 /login", p, c, rec.Code, rec.Header().Get("Location"))
			}
		}
	}
}

func TestSignupThenGuardedNavigation(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(h, http.MethodPost, "/api/auth/signup", map[string]string{
		"name": "Boss", "email": "boss@example.com", "password": "pa55word", "role": "employer",
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d: %s", rec.Code, rec.Body.String())
	}
	employer := cookieFrom(t, rec)

	rec = do(h, http.MethodGet, "/login", nil, employer)
	if rec.Code != http.StatusTemporaryRedirect || rec.Header().Get("Location") != middleware.EmployerDashboardPath {
		t.Errorf("/login as employer: %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = do(h, http.MethodGet, "/candidate-dashboard", nil, employer)
	if rec.Code != http.StatusTemporaryRedirect || rec.Header().Get("Location") != middleware.EmployerDashboardPath {
		t.Errorf("/candidate-dashboard as employer: %d Location %q, want %q", rec.Code, rec.Header().Get("Location"), middleware.EmployerDashboardPath)
	}

	rec = do(h, http.MethodGet, "/employer-dashboard", nil, employer)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"page":"employer-dashboard"`) {
		t.Errorf("/employer-dashboard: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(h, http.MethodGet, "/signup", nil, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"page":"signup"`) {
		t.Errorf("/signup anonymous: %d %s", rec.Code, rec.Body.String())
	}
}

func TestJobLifecycleThroughRouter(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(h, http.MethodPost, "/api/auth/signup", map[string]string{
		"name": "Boss", "email": "boss@example.com", "password": "pa55word", "role": "employer",
	}, nil)
	employer := cookieFrom(t, rec)

	for _, title := range []string{"first", "second"} {
		rec := do(h, http.MethodPost, "/api/jobs", map[string]string{
			"job_title": title, "job_description": "d", "company_name": "Acme", "location": "Remote",
		}, employer)
		if rec.Code != http.StatusCreated {
			t.Fatalf("POST /api/jobs: %d %s", rec.Code, rec.Body.String())
		}
	}

	rec = do(h, http.MethodGet, "/api/jobs", nil, nil)
	var list struct {
		Jobs []struct {
			JobTitle string `json:"job_title"`
		} `json:"jobs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("GET /api/jobs body: %v", err)
	}
	if len(list.Jobs) != 2 || list.Jobs[0].JobTitle != "second" {
		t.Errorf("jobs = %+v, want second first", list.Jobs)
	}

	rec = do(h, http.MethodPost, "/api/auth/logout", nil, employer)
	if c := cookieFrom(t, rec); c.MaxAge >= 0 {
		t.Errorf("logout cookie = %+v", c)
	}
}

func TestAuthRoutesAreRateLimited(t *testing.T) {
	db := repotest.NewDB(t)
	codec := crypto.NewTokenCodec("router-secret", time.Hour)
	users := repository.NewUserRepository(db)
	h := New(Deps{
		Codec:              codec,
		Auth:               service.NewAuthService(users, codec, events.Noop{}),
		AuthRateLimitRPS:   0.001,
		AuthRateLimitBurst: 1,
	})

	body := map[string]string{"email": "nobody@example.com", "password": "x"}
	if rec := do(h, http.MethodPost, "/api/auth/login", body, nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("first login = %d, want 401", rec.Code)
	}
	if rec := do(h, http.MethodPost, "/api/auth/login", body, nil); rec.Code != http.StatusTooManyRequests {
		t.Errorf("second login = %d, want 429", rec.Code)
	}
}
