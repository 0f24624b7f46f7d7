package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/jobboard/jobboard-go/internal/crypto"
	"github.com/jobboard/jobboard-go/internal/model"
	"github.com/jobboard/jobboard-go/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardHandler serves the candidate and employer overviews.
type DashboardHandler struct {
	dashboards *service.DashboardService
	export     *service.ExportService
	codec      *crypto.TokenCodec
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboards *service.DashboardService, export *service.ExportService, codec *crypto.TokenCodec) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards, export: export, codec: codec}
}

// HandleCandidate handles GET /api/candidate/dashboard requests.
func (h *DashboardHandler) HandleCandidate(w http.ResponseWriter, r *http.Request) {
	s, ok := requireRole(w, r, h.codec, model.RoleCandidate)
	if !ok {
		return
	}

	dash, err := h.dashboards.Candidate(r.Context(), s.UserID)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

// HandleEmployer handles GET /api/employer/dashboard requests.
func (h *DashboardHandler) HandleEmployer(w http.ResponseWriter, r *http.Request) {
	s, ok := requireRole(w, r, h.codec, model.RoleEmployer)
	if !ok {
		return
	}

	dash, err := h.dashboards.Employer(r.Context(), s.UserID)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

// HandleExport handles GET /api/employer/applications/export requests.
func (h *DashboardHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	s, ok := requireRole(w, r, h.codec, model.RoleEmployer)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.export.WriteApplicants(r.Context(), s.UserID, &buf); err != nil {
		internalError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="applicants.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
