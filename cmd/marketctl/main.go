package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/vncsmyrnk/digimarket/internal/app"
	"github.com/vncsmyrnk/digimarket/internal/config"
	"github.com/vncsmyrnk/digimarket/internal/core/domain"
	"github.com/vncsmyrnk/digimarket/internal/core/ports"
	"github.com/vncsmyrnk/digimarket/internal/logger"
)

func main() {
	if err := newRootCommand(loadApp).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// appLoader builds the application from config; swapped out in tests.
type appLoader func(ctx context.Context) (*app.App, error)

func loadApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	return app.New(ctx, cfg)
}

func newRootCommand(load appLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "marketctl",
		Short:         "Administrative tasks for the digimarket API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newMigrateCommand(load))
	cmd.AddCommand(newCreateAdminCommand(load))
	cmd.AddCommand(newPurgeRevokedCommand(load))
	return cmd
}

func withApp(cmd *cobra.Command, load appLoader, fn func(ctx context.Context, a *app.App, out io.Writer) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := load(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a, cmd.OutOrStdout())
}

func newMigrateCommand(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, load, func(ctx context.Context, a *app.App, out io.Writer) error {
				if err := a.Migrate(ctx); err != nil {
					return err
				}
				fmt.Fprintln(out, "migrations applied")
				return nil
			})
		},
	}
}

func newCreateAdminCommand(load appLoader) *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a user with the admin role",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, load, func(ctx context.Context, a *app.App, out io.Writer) error {
				user, err := a.UserService.Register(ctx, ports.RegisterUserInput{
					Email:    email,
					Password: password,
					Name:     name,
					Role:     domain.RoleAdmin,
				})
				if err != nil {
					return fmt.Errorf("create admin: %w", err)
				}
				fmt.Fprintf(out, "admin %s created with id %s\n", user.Email, user.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email address")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (at least 8 characters)")
	cmd.Flags().StringVar(&name, "name", "Admin User", "Display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newPurgeRevokedCommand(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "purge-revoked",
		Short: "Remove expired entries from the token revocation ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, load, func(ctx context.Context, a *app.App, out io.Writer) error {
				removed, err := a.Sweeper(log.Logger).SweepOnce(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "removed %d expired revoked tokens\n", removed)
				return nil
			})
		},
	}
}
