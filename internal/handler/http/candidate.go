package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-recruitment/internal/domain/candidate"
	"github.com/cmlabs-hris/hris-recruitment/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CandidateHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Filter(w http.ResponseWriter, r *http.Request)
}

type CandidateHandlerImpl struct {
	candidateService candidate.CandidateService
}

func NewCandidateHandler(candidateService candidate.CandidateService) CandidateHandler {
	return &CandidateHandlerImpl{
		candidateService: candidateService,
	}
}

// Register implements CandidateHandler.
func (h *CandidateHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req candidate.CreateCandidateRequest

	if err := decodeRequest(r, &req); err != nil {
		slog.Error("Register candidate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resume, resumeHeader, err := formFile(r, "resume")
	if err != nil {
		response.BadRequest(w, "Failed to read resume", nil)
		return
	}
	if resume != nil {
		defer resume.Close()
		req.Resume, req.ResumeHeader = resume, resumeHeader
	}

	image, imageHeader, err := formFile(r, "profileImage")
	if err != nil {
		response.BadRequest(w, "Failed to read profile image", nil)
		return
	}
	if image != nil {
		defer image.Close()
		req.ProfileImage, req.ProfileImageHeader = image, imageHeader
	}

	resp, err := h.candidateService.RegisterCandidate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Candidate registered successfully"
	if resp.EmployeeID != nil {
		message = "Candidate registered and promoted to employee"
	}
	response.Created(w, message, resp)
}

// Get implements CandidateHandler.
func (h *CandidateHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.candidateService.GetCandidate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Update implements CandidateHandler.
func (h *CandidateHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req candidate.UpdateCandidateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update candidate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	resp, err := h.candidateService.UpdateCandidate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Candidate updated successfully", resp)
}

// Delete implements CandidateHandler.
func (h *CandidateHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.candidateService.DeleteCandidate(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Candidate deleted successfully", nil)
}

// List implements CandidateHandler.
func (h *CandidateHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.candidateService.ListCandidates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Filter implements CandidateHandler.
func (h *CandidateHandlerImpl) Filter(w http.ResponseWriter, r *http.Request) {
	var req candidate.FilterCandidateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Filter candidates decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.candidateService.FilterCandidates(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
