package httpx

import (
	"net/http"

	"github.com/taskul/jobly/internal/domain/model"
	"github.com/taskul/jobly/internal/service"
)

// CompanyHandlers provides HTTP handlers for companies.
type CompanyHandlers struct {
	Svc *service.CompanyService
}

// Create handles POST /api/companies.
func (h *CompanyHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCompanyRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	company, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"company": company})
}

// List handles GET /api/companies with optional nameLike, minEmployees and maxEmployees filters.
func (h *CompanyHandlers) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseCompanyFilter(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	companies, err := h.Svc.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"companies": nonNil(companies)})
}

// Get handles GET /api/companies/{handle}; the response includes the company's jobs.
func (h *CompanyHandlers) Get(w http.ResponseWriter, r *http.Request) {
	company, err := h.Svc.Get(r.Context(), r.PathValue("handle"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"company": company})
}

// Update handles PATCH /api/companies/{handle}.
func (h *CompanyHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateCompanyRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	company, err := h.Svc.Update(r.Context(), r.PathValue("handle"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"company": company})
}

// Delete handles DELETE /api/companies/{handle}.
func (h *CompanyHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	if err := h.Svc.Delete(r.Context(), handle); err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"deleted": handle})
}
