package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/RuanLopes1350/AnotaAi/internal/config"
	"github.com/RuanLopes1350/AnotaAi/internal/platform/mongodb"
	"github.com/RuanLopes1350/AnotaAi/internal/platform/postgres"
	"github.com/RuanLopes1350/AnotaAi/internal/store"
)

const (
	backendMongo    = "mongodb"
	backendPostgres = "postgres"
)

// backend bundles the stores of one storage engine with the function that
// releases its connection.
type backend struct {
	name    string
	tasks   store.TaskStore
	users   store.UserStore
	closeFn func(ctx context.Context) error
	logger  *slog.Logger
}

func (b *backend) close(ctx context.Context) {
	if b == nil || b.closeFn == nil {
		return
	}
	if err := b.closeFn(ctx); err != nil {
		b.logger.Error("failed to close storage backend",
			slog.String("backend", b.name),
			slog.String("error", err.Error()))
	}
}

// backendKind maps the scheme of a database URL to a backend name. It returns
// an empty string for unsupported schemes.
func backendKind(dbURL string) string {
	u, err := url.Parse(dbURL)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "mongodb", "mongodb+srv":
		return backendMongo
	case "postgres", "postgresql":
		return backendPostgres
	default:
		return ""
	}
}

// openBackend connects to the database named by cfg.URL and prepares it:
// indexes for MongoDB, pending migrations for PostgreSQL.
func openBackend(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*backend, error) {
	switch backendKind(cfg.URL) {
	case backendMongo:
		return openMongo(ctx, cfg, logger)
	case backendPostgres:
		return openPostgres(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported database url %q", postgres.MaskURL(cfg.URL))
	}
}

func openMongo(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*backend, error) {
	client, err := mongodb.Connect(ctx, mongodb.Config{
		URI:            cfg.URL,
		Database:       cfg.Name,
		ConnectTimeout: cfg.ConnectTimeout(),
	}, logger)
	if err != nil {
		return nil, err
	}
	if err := client.EnsureIndexes(ctx); err != nil {
		_ = client.Close(context.Background())
		return nil, err
	}

	db := client.Database()
	return &backend{
		name:    backendMongo,
		tasks:   mongodb.NewTaskStore(db, logger),
		users:   mongodb.NewUserStore(db, logger),
		closeFn: client.Close,
		logger:  logger,
	}, nil
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*backend, error) {
	db, err := postgres.Open(ctx, cfg.URL, cfg.ConnectTimeout(), logger)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, db, postgres.MigrateUp, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &backend{
		name:    backendPostgres,
		tasks:   postgres.NewTaskStore(db, logger),
		users:   postgres.NewUserStore(db, logger),
		closeFn: closeSQL(db),
		logger:  logger,
	}, nil
}

func closeSQL(db *sql.DB) func(context.Context) error {
	return func(context.Context) error {
		return db.Close()
	}
}
