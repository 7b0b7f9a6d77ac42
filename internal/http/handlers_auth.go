package httpx

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/taskul/jobly/internal/domain/auth"
	"github.com/taskul/jobly/internal/domain/model"
	"github.com/taskul/jobly/internal/service"
)

// AuthHandlers provides HTTP handlers for login, registration and logout.
type AuthHandlers struct {
	Svc          *service.AuthService
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Token handles POST /auth/token: it exchanges a username and password for a session token.
func (h *AuthHandlers) Token(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	session, err := h.Svc.Login(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.setSessionCookie(w, r, session)
	WriteJSON(w, http.StatusOK, map[string]string{"token": session.ID})
}

// Register handles POST /auth/register: it creates a regular account and logs it in.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	session, err := h.Svc.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.setSessionCookie(w, r, session)
	WriteJSON(w, http.StatusCreated, map[string]string{"token": session.ID})
}

// Logout handles POST /auth/logout. It always succeeds; a failure to delete the
// server-side session is only logged.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r); token != "" {
		if err := h.Svc.Logout(r.Context(), token); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		}
	}
	h.clearSessionCookie(w, r)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s *domainauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		Expires:  s.ExpiresAt.UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
