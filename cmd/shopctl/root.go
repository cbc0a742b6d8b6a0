package main

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/errors"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/persistence/postgres"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// env is what every subcommand runs against.
type env struct {
	cfg    *config.Config
	db     *gorm.DB
	logger *slog.Logger
}

// connector opens the environment and returns a function releasing it.
type connector func(ctx context.Context) (*env, func() error, error)

// connectFromConfig loads config.yaml and connects to the configured database.
func connectFromConfig(_ context.Context) (*env, func() error, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return nil, nil, err
	}

	db, err := postgres.Open(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, errors.Wrap(err, "get sql.DB")
	}

	return &env{cfg: cfg, db: db, logger: logger}, sqlDB.Close, nil
}

// NewRootCommand creates the shopctl command tree.
func NewRootCommand(connect connector) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "shopctl",
		Short:         "Storefront administration",
		Long:          "Operator tasks for the storefront: schema migration, catalog seeding, accounts and session cleanup.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newMigrateCommand(connect))
	cmd.AddCommand(newCategoryCommand(connect))
	cmd.AddCommand(newUserCommand(connect))
	cmd.AddCommand(newSessionCommand(connect))

	return cmd
}

// withEnv opens the environment for the duration of fn.
func withEnv(cmd *cobra.Command, connect connector, fn func(ctx context.Context, e *env) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	e, release, err := connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := release(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "close database")
		}
	}()

	return fn(ctx, e)
}
