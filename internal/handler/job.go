package handler

import (
	"errors"
	"net/http"

	"github.com/jobboard/jobboard-go/internal/crypto"
	"github.com/jobboard/jobboard-go/internal/model"
	"github.com/jobboard/jobboard-go/internal/service"
)

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	service *service.JobService
	codec   *crypto.TokenCodec
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(svc *service.JobService, codec *crypto.TokenCodec) *JobHandler {
	return &JobHandler{service: svc, codec: codec}
}

// HandleList handles GET /api/jobs requests.
func (h *JobHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.service.List(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.JobListResponse{Jobs: jobs})
}

// HandleCreate handles POST /api/jobs requests. Employers only.
func (h *JobHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	s, ok := requireRole(w, r, h.codec, model.RoleEmployer)
	if !ok {
		return
	}

	var req model.CreateJobRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	job, err := h.service.Create(r.Context(), s.UserID, req)
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.JobResponse{Message: "Job created successfully", Job: *job})
}

// HandleCompanies handles GET /api/companies requests.
func (h *JobHandler) HandleCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.service.Companies(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.CompanyListResponse{Companies: companies})
}
