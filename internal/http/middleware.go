package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/taskul/jobly/internal/domain/auth"
	apperrors "github.com/taskul/jobly/internal/errors"
)

// SessionCookieName is the cookie that carries the session token for browser clients.
const SessionCookieName = "session_id"

// SessionResolver resolves a session token into a session.
type SessionResolver interface {
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
}

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.InfoContext(r.Context(), "http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *respWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *respWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					WriteError(w, ErrorParams{
						Code:    http.StatusInternalServerError,
						ErrCode: string(apperrors.ErrCodeInternal),
						Err:     errors.New("internal server error"),
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin returns a middleware that requires a session with the admin role.
func RequireAdmin(auth SessionResolver) func(http.Handler) http.Handler {
	return requireSession(auth, func(_ *http.Request, s *domainauth.Session) bool { return s.IsAdmin() })
}

// RequireAdminOrSelf returns a middleware that admits admins and the user named by the
// {username} path segment.
func RequireAdminOrSelf(auth SessionResolver) func(http.Handler) http.Handler {
	return requireSession(auth, func(r *http.Request, s *domainauth.Session) bool {
		return s.CanActAs(r.PathValue("username"))
	})
}

func requireSession(
	auth SessionResolver,
	allowed func(*http.Request, *domainauth.Session) bool,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := getSessionFromRequest(r, auth)
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			if !allowed(r, session) {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: string(apperrors.ErrCodeForbidden),
					Err:     errors.New("insufficient permissions"),
				})
				return
			}
			next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), session)))
		})
	}
}

// getSessionFromRequest resolves the session named by the request token.
func getSessionFromRequest(r *http.Request, auth SessionResolver) (*domainauth.Session, error) {
	token := sessionToken(r)
	if token == "" {
		return nil, apperrors.Unauthorized("Authentication required")
	}
	return auth.GetSession(r.Context(), token)
}

// sessionToken reads the token from an "Authorization: Bearer" header, falling back to
// the session cookie.
func sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if c, err := r.Cookie(SessionCookieName); err == nil {
		return c.Value
	}
	return ""
}
