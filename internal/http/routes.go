package httpx

import (
	"log/slog"
	"net/http"

	"github.com/taskul/jobly/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Jobs      *service.JobService
	Companies *service.CompanyService
	Users     *service.UserService
	Auth      *service.AuthService
	// HealthChecks are probed by /healthz; optional.
	HealthChecks map[string]HealthCheck
	CookieDomain string
	Logger       *slog.Logger // optional; slog.Default when nil
}

// NewRouter creates the API router. Callers wrap it with Recover and Logging.
func NewRouter(services RouterServices) http.Handler {
	if services.Auth == nil {
		panic("NewRouter: Auth service is required") //nolint:forbidigo // Fail fast during server setup.
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	admin := RequireAdmin(services.Auth)
	adminOrSelf := RequireAdminOrSelf(services.Auth)

	registerAuthRoutes(mux, &AuthHandlers{Svc: services.Auth, CookieDomain: services.CookieDomain, Logger: logger})

	jobs := &JobHandlers{Svc: services.Jobs}
	registerCRUD(mux, crudRoutes{
		Base:       "/api/jobs",
		Key:        "id",
		Create:     jobs.Create,
		List:       jobs.List,
		Get:        jobs.GetByID,
		Update:     jobs.Update,
		Delete:     jobs.Delete,
		WriteGuard: admin,
	})

	companies := &CompanyHandlers{Svc: services.Companies}
	registerCRUD(mux, crudRoutes{
		Base:       "/api/companies",
		Key:        "handle",
		Create:     companies.Create,
		List:       companies.List,
		Get:        companies.Get,
		Update:     companies.Update,
		Delete:     companies.Delete,
		WriteGuard: admin,
	})

	registerUserRoutes(mux, &UserHandlers{Svc: services.Users, Auth: services.Auth}, admin, adminOrSelf)

	health := &HealthHandler{Checks: services.HealthChecks}
	mux.Handle("GET /healthz", health)
	mux.Handle("HEAD /healthz", health)

	return mux
}

// crudRoutes describes the standard routes of a resource. Reads are public; writes go
// through WriteGuard when set.
type crudRoutes struct {
	Base       string
	Key        string
	Create     http.HandlerFunc
	List       http.HandlerFunc
	Get        http.HandlerFunc
	Update     http.HandlerFunc
	Delete     http.HandlerFunc
	WriteGuard func(http.Handler) http.Handler
}

func registerCRUD(mux *http.ServeMux, cfg crudRoutes) {
	if cfg.Base == "" || cfg.Key == "" {
		panic("registerCRUD: Base and Key must not be empty") //nolint:forbidigo // Fail fast during server setup.
	}
	if cfg.Create == nil ||
		cfg.List == nil ||
		cfg.Get == nil ||
		cfg.Update == nil ||
		cfg.Delete == nil {
		panic("registerCRUD: nil handler for base " + cfg.Base) //nolint:forbidigo // Fail fast during server setup.
	}

	guard := func(h http.HandlerFunc) http.Handler {
		if cfg.WriteGuard != nil {
			return cfg.WriteGuard(h)
		}
		return h
	}
	item := cfg.Base + "/{" + cfg.Key + "}"
	mux.Handle("POST "+cfg.Base, guard(cfg.Create))
	mux.Handle("GET "+cfg.Base, cfg.List)
	mux.Handle("GET "+item, cfg.Get)
	mux.Handle("PATCH "+item, guard(cfg.Update))
	mux.Handle("DELETE "+item, guard(cfg.Delete))
}

func registerUserRoutes(mux *http.ServeMux, h *UserHandlers, admin, adminOrSelf func(http.Handler) http.Handler) {
	mux.Handle("POST /api/users", admin(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/users", admin(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/users/{username}", adminOrSelf(http.HandlerFunc(h.Get)))
	mux.Handle("PATCH /api/users/{username}", adminOrSelf(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/users/{username}", adminOrSelf(http.HandlerFunc(h.Delete)))
	mux.Handle("POST /api/users/{username}/jobs/{id}", adminOrSelf(http.HandlerFunc(h.Apply)))
	mux.Handle("GET /api/users/{username}/jobs", adminOrSelf(http.HandlerFunc(h.AppliedJobs)))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /auth/token", h.Token)
	mux.HandleFunc("POST /auth/register", h.Register)
	mux.HandleFunc("POST /auth/logout", h.Logout)
}
