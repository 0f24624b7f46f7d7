package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/jobboard/jobboard-go/internal/crypto"
	"github.com/jobboard/jobboard-go/internal/model"
	"github.com/jobboard/jobboard-go/internal/service"
)

// maxApplyBody leaves room for the form fields around a maximum-size résumé.
const maxApplyBody = service.MaxResumeSize + 1<<20

// ApplicationHandler handles HTTP requests for job applications.
type ApplicationHandler struct {
	service *service.ApplicationService
	codec   *crypto.TokenCodec
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(svc *service.ApplicationService, codec *crypto.TokenCodec) *ApplicationHandler {
	return &ApplicationHandler{service: svc, codec: codec}
}

// HandleApply handles multipart POST /api/apply requests. Candidates only.
func (h *ApplicationHandler) HandleApply(w http.ResponseWriter, r *http.Request) {
	s, ok := requireRole(w, r, h.codec, model.RoleCandidate)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxApplyBody)
	if err := r.ParseMultipartForm(maxApplyBody); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusBadRequest, errorResponse(service.ErrResumeTooLarge.Error()))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid form data"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := model.ApplyRequest{
		ApplicantName: r.FormValue("applicant_name"),
		Phone:         r.FormValue("phone"),
		Address:       r.FormValue("address"),
	}
	if raw := strings.TrimSpace(r.FormValue("job_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse("invalid job id"))
			return
		}
		req.JobID = id
	}

	resume, err := readResume(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid resume upload"))
		return
	}
	req.Resume = resume

	app, err := h.service.Apply(r.Context(), s.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrJobIDRequired),
			errors.Is(err, service.ErrNameRequired),
			errors.Is(err, service.ErrResumeType),
			errors.Is(err, service.ErrResumeTooLarge):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrJobNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		case errors.Is(err, service.ErrAlreadyApplied):
			writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
		default:
			internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, model.ApplicationResponse{Message: "Application submitted successfully", Application: *app})
}

// readResume returns the "resume" part, or nil when none was sent.
func readResume(r *http.Request) (*model.ResumeFile, error) {
	file, header, err := r.FormFile("resume")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxResumeSize+1))
	if err != nil {
		return nil, err
	}

	return &model.ResumeFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        data,
	}, nil
}
