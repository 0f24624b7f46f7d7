// Package router assembles the HTTP routing tree.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/jobboard/jobboard-go/internal/crypto"
	"github.com/jobboard/jobboard-go/internal/handler"
	"github.com/jobboard/jobboard-go/internal/middleware"
	"github.com/jobboard/jobboard-go/internal/service"
)

// Deps are the collaborators the routes are served by.
type Deps struct {
	Codec        *crypto.TokenCodec
	SecureCookie bool

	Auth         *service.AuthService
	Jobs         *service.JobService
	Applications *service.ApplicationService
	Dashboards   *service.DashboardService
	Export       *service.ExportService

	AuthRateLimitRPS   float64
	AuthRateLimitBurst int
}

// New returns the application's root handler. Every request passes the
// route guard before reaching its handler.
func New(d Deps) http.Handler {
	authHandler := handler.NewAuthHandler(d.Auth, d.Codec, d.SecureCookie)
	jobHandler := handler.NewJobHandler(d.Jobs, d.Codec)
	appHandler := handler.NewApplicationHandler(d.Applications, d.Codec)
	dashHandler := handler.NewDashboardHandler(d.Dashboards, d.Export, d.Codec)
	pageHandler := handler.NewPageHandler(d.Dashboards, d.Codec)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RouteGuard(d.Codec))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(d.AuthRateLimitRPS, d.AuthRateLimitBurst))
			r.Post("/auth/signup", authHandler.HandleSignup)
			r.Post("/auth/login", authHandler.HandleLogin)
		})
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.Get("/auth/me", authHandler.HandleMe)

		r.Get("/jobs", jobHandler.HandleList)
		r.Post("/jobs", jobHandler.HandleCreate)
		r.Get("/companies", jobHandler.HandleCompanies)

		r.Post("/apply", appHandler.HandleApply)

		r.Get("/candidate/dashboard", dashHandler.HandleCandidate)
		r.Get("/employer/dashboard", dashHandler.HandleEmployer)
		r.Get("/employer/applications/export", dashHandler.HandleExport)
	})

	r.Get(middleware.LoginPath, pageHandler.HandleLogin)
	r.Get(middleware.SignupPath, pageHandler.HandleSignup)
	r.Get(middleware.CandidateDashboardPath, pageHandler.HandleCandidateDashboard)
	r.Get(middleware.CandidateDashboardPath+"/*", pageHandler.HandleCandidateDashboard)
	r.Get(middleware.EmployerDashboardPath, pageHandler.HandleEmployerDashboard)
	r.Get(middleware.EmployerDashboardPath+"/*", pageHandler.HandleEmployerDashboard)

	return r
}
