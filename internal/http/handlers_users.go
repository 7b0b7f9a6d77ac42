package httpx

import (
	"net/http"

	"github.com/taskul/jobly/internal/domain/model"
	"github.com/taskul/jobly/internal/service"
)

// UserHandlers provides HTTP handlers for user accounts and job applications.
type UserHandlers struct {
	Svc  *service.UserService
	Auth *service.AuthService
}

// Create handles POST /api/users. An admin creates the account and receives a session
// token for it; the new user sets a password by updating their account.
func (h *UserHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.AdminCreateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	user, err := h.Svc.AdminCreate(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	session, err := h.Auth.IssueSession(r.Context(), user)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"user": user, "token": session.ID})
}

// List handles GET /api/users.
func (h *UserHandlers) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"users": nonNil(users)})
}

// Get handles GET /api/users/{username}.
func (h *UserHandlers) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.Svc.Get(r.Context(), r.PathValue("username"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"user": user})
}

// Update handles PATCH /api/users/{username}.
func (h *UserHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	user, err := h.Svc.Update(r.Context(), r.PathValue("username"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"user": user})
}

// Delete handles DELETE /api/users/{username}.
func (h *UserHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if err := h.Svc.Delete(r.Context(), username); err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"deleted": username})
}

// Apply handles POST /api/users/{username}/jobs/{id}.
func (h *UserHandlers) Apply(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := h.Svc.Apply(r.Context(), r.PathValue("username"), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"applied": id})
}

// AppliedJobs handles GET /api/users/{username}/jobs.
func (h *UserHandlers) AppliedJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Svc.AppliedJobs(r.Context(), r.PathValue("username"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"jobs": nonNil(jobs)})
}
