package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/taskul/jobly/config"
	"github.com/taskul/jobly/internal/data"
	"github.com/taskul/jobly/internal/domain/model"
)

const defaultCommandTimeout = time.Minute

type createAdminOptions struct {
	Timeout time.Duration
	User    model.CreateUserRequest
}

func runCreateAdmin(cmdCtx *commandContext, args []string) error {
	opts, err := parseCreateAdminFlags(cmdCtx.Config.Auth, args)
	if err != nil {
		return err
	}
	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		repo := data.NewUserRepo(db, data.UserRepoConfig{BcryptCost: cmdCtx.Config.Auth.BcryptCost})
		req := opts.User
		u, err := repo.Create(ctx, &req)
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		cmdCtx.Logger.InfoContext(ctx, "created admin user", "username", u.Username)
		return nil
	})
}

func parseCreateAdminFlags(auth config.AuthConfig, args []string) (createAdminOptions, error) {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := createAdminOptions{
		Timeout: defaultCommandTimeout,
		User:    model.CreateUserRequest{IsAdmin: true},
	}
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum duration for the command")
	fs.StringVar(&opts.User.Username, "username", auth.AdminUsername, "Admin username")
	fs.StringVar(&opts.User.Password, "password", auth.AdminPassword, "Admin password (defaults to AUTH_ADMIN_PASSWORD)")
	fs.StringVar(&opts.User.Email, "email", auth.AdminEmail, "Admin email address")
	fs.StringVar(&opts.User.FirstName, "first-name", "Site", "Admin first name")
	fs.StringVar(&opts.User.LastName, "last-name", "Admin", "Admin last name")

	if err := fs.Parse(args); err != nil {
		return createAdminOptions{}, err
	}
	if opts.Timeout <= 0 {
		return createAdminOptions{}, errors.New("--timeout must be greater than zero")
	}
	if opts.User.Password == "" {
		return createAdminOptions{}, errors.New("--password or AUTH_ADMIN_PASSWORD is required")
	}
	if err := opts.User.Validate(); err != nil {
		return createAdminOptions{}, err
	}
	return opts, nil
}
