// Package main implements the entry point for the AnotaAi API server, which
// manages users and their tasks over a JSON REST interface.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/RuanLopes1350/AnotaAi/internal/config"
	"github.com/RuanLopes1350/AnotaAi/internal/platform/logger"
	"github.com/RuanLopes1350/AnotaAi/internal/platform/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "anotaai:", err)
		os.Exit(1)
	}
}

// newRootCommand builds the CLI. Running the binary without a subcommand
// starts the server. SIGINT and SIGTERM cancel the command context, which
// triggers a graceful shutdown.
func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "anotaai",
		Short:         "AnotaAi task management API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	})

	root.AddCommand(&cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Run PostgreSQL schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus},
		RunE:      runMigrate,
	})

	return root
}

// initializeApp loads configuration and sets up the default logger.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_url", postgres.MaskURL(cfg.Database.URL)),
		slog.Bool("auth_enabled", cfg.Auth.Enabled()),
		slog.Bool("rate_limit_enabled", cfg.RateLimit.Enabled()))

	return cfg, log, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := initializeApp()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	backend, err := openBackend(ctx, cfg.Database, log)
	if err != nil {
		log.Error("failed to open storage backend", slog.String("error", err.Error()))
		return err
	}

	app, err := newApplication(cfg, log, backend)
	if err != nil {
		backend.close(ctx)
		log.Error("failed to initialize application", slog.String("error", err.Error()))
		return err
	}

	if err := app.Run(ctx); err != nil {
		log.Error("server stopped with error", slog.String("error", err.Error()))
		return err
	}
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := initializeApp()
	if err != nil {
		return err
	}
	if backendKind(cfg.Database.URL) != backendPostgres {
		err := fmt.Errorf("migrations are only supported for postgres database urls")
		log.Error("migrate failed", slog.String("error", err.Error()))
		return err
	}

	ctx := cmd.Context()
	db, err := postgres.Open(ctx, cfg.Database.URL, cfg.Database.ConnectTimeout(), log)
	if err != nil {
		log.Error("migrate failed", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Error("failed to close database", slog.String("error", cerr.Error()))
		}
	}()

	if err := postgres.Migrate(ctx, db, args[0], log); err != nil {
		log.Error("migrate failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}
