package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/taskul/jobly/internal/bootstrap"
	"github.com/taskul/jobly/internal/data"
	"github.com/taskul/jobly/internal/devseed"
)

type seedOptions struct {
	Timeout      time.Duration
	AllowRemote  bool
	UserPassword string
}

func runSeed(cmdCtx *commandContext, args []string) error {
	opts, err := parseSeedFlags(args)
	if err != nil {
		return err
	}
	if err := guardRemoteHost(cmdCtx, opts.AllowRemote, "insert sample data"); err != nil {
		return err
	}
	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		if err := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); err != nil {
			return err
		}
		repos := devseed.Repos{
			Companies: data.NewCompanyRepo(db),
			Jobs:      data.NewJobRepo(db),
			Users:     data.NewUserRepo(db, data.UserRepoConfig{BcryptCost: cmdCtx.Config.Auth.BcryptCost}),
		}
		return devseed.Run(ctx, repos, devseed.Options{
			UserPassword: opts.UserPassword,
			Logger:       cmdCtx.Logger,
		})
	})
}

func parseSeedFlags(args []string) (seedOptions, error) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := seedOptions{Timeout: defaultMigrationTimeout}
	fs.DurationVar(&opts.Timeout, "timeout", defaultMigrationTimeout, "Maximum duration to wait for seeding to complete")
	fs.BoolVar(&opts.AllowRemote, "allow-remote", false, "Permit running against database hosts that do not look local")
	fs.StringVar(&opts.UserPassword, "user-password", "password", "Password given to every sample user")

	if err := fs.Parse(args); err != nil {
		return seedOptions{}, err
	}
	if opts.Timeout <= 0 {
		return seedOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}
