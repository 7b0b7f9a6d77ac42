package bootstrap

import (
	"github.com/redis/go-redis/v9"
	"github.com/taskul/jobly/config"
	redisadapter "github.com/taskul/jobly/internal/adapters/redis"
	"github.com/taskul/jobly/internal/core"
	"github.com/taskul/jobly/internal/service"
)

// AuthConfig contains configuration for the auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	KeyPrefix   string
	RedisClient redis.UniversalClient
	Users       core.UserRepository
}

// BuildAuthService creates the password auth service with a Redis-backed session store.
// It also returns the store so other services can revoke sessions.
func BuildAuthService(cfg AuthConfig) (*service.AuthService, *redisadapter.SessionStore) {
	store := redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, cfg.KeyPrefix+"session:")
	svc := service.NewAuthService(service.AuthServiceOptions{
		Users:    cfg.Users,
		Sessions: store,
		Config:   service.AuthConfig{SessionTTL: cfg.Auth.SessionTTL},
	})
	return svc, store
}
