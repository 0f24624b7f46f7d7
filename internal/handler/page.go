package handler

import (
	"net/http"

	"github.com/jobboard/jobboard-go/internal/crypto"
	"github.com/jobboard/jobboard-go/internal/middleware"
	"github.com/jobboard/jobboard-go/internal/model"
	"github.com/jobboard/jobboard-go/internal/service"
)

type pageResponse struct {
	Page string `json:"page"`
	Data any    `json:"data,omitempty"`
}

// PageHandler answers the guarded page routes with the data a page renders.
type PageHandler struct {
	dashboards *service.DashboardService
	codec      *crypto.TokenCodec
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(dashboards *service.DashboardService, codec *crypto.TokenCodec) *PageHandler {
	return &PageHandler{dashboards: dashboards, codec: codec}
}

// HandleLogin handles GET /login.
func (h *PageHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pageResponse{Page: "login"})
}

// HandleSignup handles GET /signup.
func (h *PageHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pageResponse{Page: "signup"})
}

// HandleCandidateDashboard handles GET /candidate-dashboard and below.
func (h *PageHandler) HandleCandidateDashboard(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r, model.RoleCandidate)
	if !ok {
		return
	}
	dash, err := h.dashboards.Candidate(r.Context(), s.UserID)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageResponse{Page: "candidate-dashboard", Data: dash})
}

// HandleEmployerDashboard handles GET /employer-dashboard and below.
func (h *PageHandler) HandleEmployerDashboard(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r, model.RoleEmployer)
	if !ok {
		return
	}
	dash, err := h.dashboards.Employer(r.Context(), s.UserID)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageResponse{Page: "employer-dashboard", Data: dash})
}

// session redirects to the login page instead of answering 401, as pages do.
func (h *PageHandler) session(w http.ResponseWriter, r *http.Request, role model.Role) (middleware.Session, bool) {
	s, ok := middleware.SessionFromRequest(r, h.codec)
	if !ok || s.Role != role {
		http.Redirect(w, r, middleware.LoginPath, http.StatusTemporaryRedirect)
		return middleware.Session{}, false
	}
	return s, true
}
