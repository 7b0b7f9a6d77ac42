package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/taskul/jobly/config"
	"github.com/taskul/jobly/internal/core"
	"github.com/taskul/jobly/internal/data"
	httpx "github.com/taskul/jobly/internal/http"
	"github.com/taskul/jobly/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Jobs      *service.JobService
	Companies *service.CompanyService
	Users     *service.UserService
	Auth      *service.AuthService
	// HealthChecks probe the backing stores for /healthz.
	HealthChecks map[string]httpx.HealthCheck
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	Jobs      *data.JobRepo
	Companies *data.CompanyRepo
	Users     *data.UserRepo
	Cache     *data.RedisCacheRepo
}

func buildRepositories(deps *ServiceDeps) *serviceRepositories {
	return &serviceRepositories{
		Jobs:      data.NewJobRepo(deps.DB),
		Companies: data.NewCompanyRepo(deps.DB),
		Users:     data.NewUserRepo(deps.DB, data.UserRepoConfig{BcryptCost: deps.Config.Auth.BcryptCost}),
		Cache:     data.NewRedisCacheRepo(deps.RedisClient, deps.Config.Redis.KeyPrefix+"cache:"),
	}
}

// jobCache returns the cache port for job lookups, or nil when caching is disabled.
func jobCache(repos *serviceRepositories, cfg config.CacheConfig) core.CacheRepository {
	if !cfg.Enabled {
		return nil
	}
	return repos.Cache
}

// NewServices builds every service over the Postgres repositories and Redis stores.
func NewServices(deps *ServiceDeps) ServiceContainer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config
	repos := buildRepositories(deps)
	cache := jobCache(repos, cfg.Cache)

	auth, sessions := BuildAuthService(AuthConfig{
		Auth:        cfg.Auth,
		KeyPrefix:   cfg.Redis.KeyPrefix,
		RedisClient: deps.RedisClient,
		Users:       repos.Users,
	})

	return ServiceContainer{
		Jobs: service.NewJobService(service.JobServiceOptions{
			Repo:   repos.Jobs,
			Cache:  cache,
			Config: service.JobCacheConfig{TTL: cfg.Cache.JobTTL},
			Logger: logger,
		}),
		Companies: service.NewCompanyService(service.CompanyServiceOptions{
			Repo:  repos.Companies,
			Jobs:  repos.Jobs,
			Cache: cache,
		}),
		Users: service.NewUserService(service.UserServiceOptions{
			Repo:     repos.Users,
			Sessions: sessions,
		}),
		Auth: auth,
		HealthChecks: map[string]httpx.HealthCheck{
			"postgres": deps.DB.PingContext,
			"redis":    repos.Cache.Health,
		},
	}
}
