package httpx

import (
	"net/http"

	"github.com/taskul/jobly/internal/domain/model"
	"github.com/taskul/jobly/internal/service"
)

// JobHandlers provides HTTP handlers for job postings.
type JobHandlers struct {
	Svc *service.JobService
}

// Create handles POST /api/jobs.
func (h *JobHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	job, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"job": job})
}

// List handles GET /api/jobs with optional title, minSalary and hasEquity filters.
func (h *JobHandlers) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseJobFilter(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	jobs, err := h.Svc.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"jobs": nonNil(jobs)})
}

// GetByID handles GET /api/jobs/{id}.
func (h *JobHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	job, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"job": job})
}

// Update handles PATCH /api/jobs/{id}.
func (h *JobHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var req model.UpdateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	job, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"job": job})
}

// Delete handles DELETE /api/jobs/{id}.
func (h *JobHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// nonNil turns a nil slice into an empty one so lists encode as [].
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
