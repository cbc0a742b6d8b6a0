package main

import (
	"context"
	"fmt"

	"storefront/internal/infra/auth"
	"storefront/internal/infra/persistence/postgres"
	"storefront/internal/usecase"
	"storefront/internal/usecase/impl"

	"github.com/spf13/cobra"
)

func newMigrateCommand(connect connector) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, connect, func(ctx context.Context, e *env) error {
				if err := postgres.AutoMigrate(ctx, e.db); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")

				return nil
			})
		},
	}
}

func newCategoryCommand(connect connector) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage catalog categories",
	}

	var input usecase.CreateCategoryInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, connect, func(ctx context.Context, e *env) error {
				catalog := impl.NewCatalogService(impl.CatalogServiceParams{
					CategoryRepo: postgres.NewCategoryRepository(e.db),
					ProductRepo:  postgres.NewProductRepository(e.db),
					ReviewRepo:   postgres.NewReviewRepository(e.db),
					Logger:       e.logger,
				})

				category, err := catalog.CreateCategory(ctx, input)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created category %q (id %d).\n", category.Slug, category.ID)

				return nil
			})
		},
	}
	create.Flags().StringVar(&input.Name, "name", "", "display name")
	create.Flags().StringVar(&input.Slug, "slug", "", "URL identifier")
	create.Flags().StringVar(&input.Description, "description", "", "optional description")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("slug")

	cmd.AddCommand(create)

	return cmd
}

func newUserCommand(connect connector) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	var input usecase.CreateUserInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Add an account, optionally with staff or superuser rights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, connect, func(ctx context.Context, e *env) error {
				users := impl.NewUserService(impl.UserServiceParams{
					UserRepo:       postgres.NewUserRepository(e.db),
					OrderRepo:      postgres.NewOrderRepository(e.db),
					PasswordHasher: auth.NewBcryptHasher(e.cfg),
					Logger:         e.logger,
				})

				user, err := users.CreateUser(ctx, input)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created user %q (staff=%t, superuser=%t).\n",
					user.Username, user.IsStaff, user.IsSuperuser)

				return nil
			})
		},
	}
	create.Flags().StringVar(&input.Username, "username", "", "login name")
	create.Flags().StringVar(&input.Email, "email", "", "email address")
	create.Flags().StringVar(&input.Password, "password", "", "initial password")
	create.Flags().BoolVar(&input.IsStaff, "staff", false, "allow adding products")
	create.Flags().BoolVar(&input.IsSuperuser, "superuser", false, "grant every permission")
	_ = create.MarkFlagRequired("username")
	_ = create.MarkFlagRequired("password")

	cmd.AddCommand(create)

	return cmd
}

func newSessionCommand(connect connector) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Maintain visitor sessions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Delete expired sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, connect, func(ctx context.Context, e *env) error {
				tokens, err := auth.NewSessionTokenService(e.cfg)
				if err != nil {
					return err
				}

				sessions := impl.NewSessionService(impl.SessionServiceParams{
					SessionRepo: postgres.NewSessionRepository(e.db),
					UserRepo:    postgres.NewUserRepository(e.db),
					TxManager:   postgres.NewTransactionManager(e.db),
					Tokens:      tokens,
					Config:      e.cfg,
					Logger:      e.logger,
				})

				purged, err := sessions.PurgeExpired(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Purged %d expired session(s).\n", purged)

				return nil
			})
		},
	})

	return cmd
}
