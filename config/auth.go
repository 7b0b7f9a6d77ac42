package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// SessionTTL is how long a session token stays valid.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// BcryptCost is the work factor for password hashes.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"12"`

	// AdminUsername and AdminPassword seed the first admin account via
	// "jobly-admin create-admin" when no flags are given.
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AdminEmail    string `env:"ADMIN_EMAIL"    envDefault:"admin@example.com"`
}

// Sanitize clamps BcryptCost into the range bcrypt accepts and defaults a
// non-positive SessionTTL.
func (a *AuthConfig) Sanitize() {
	if a.BcryptCost < bcrypt.MinCost {
		a.BcryptCost = bcrypt.MinCost
	}
	if a.BcryptCost > bcrypt.MaxCost {
		a.BcryptCost = bcrypt.MaxCost
	}
	if a.SessionTTL <= 0 {
		a.SessionTTL = 24 * time.Hour
	}
}
