package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	TasksCollection = "tasks"
	UsersCollection = "usuarios"
)

// Unique index names; duplicate-key errors are mapped back to fields by name.
const (
	emailIndex  = "uniq_email"
	handleIndex = "uniq_apelido"
)

// Config holds the connection settings.
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// Client owns the driver connection and the database handle.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

// Connect opens a connection and verifies it with a ping against the primary.
func Connect(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongodb URI cannot be empty")
	}
	if cfg.Database == "" {
		return nil, errors.New("mongodb database name cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	log := logger.With(slog.String("component", "mongodb"))

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	log.Info("connected to mongodb", slog.String("database", cfg.Database))

	return &Client{
		client: client,
		db:     client.Database(cfg.Database),
		logger: log,
	}, nil
}

// Database returns the database handle the stores operate on.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Ping checks that the primary is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the unique and lookup indexes. It is idempotent.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	users := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName(emailIndex)},
		{Keys: bson.D{{Key: "apelido", Value: 1}}, Options: options.Index().SetUnique(true).SetName(handleIndex)},
	}
	tasks := []mongo.IndexModel{
		{Keys: bson.D{{Key: "usuario", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "titulo", Value: 1}}},
		{Keys: bson.D{{Key: "dataLimite", Value: 1}}},
		{Keys: bson.D{{Key: "data_criacao", Value: -1}}},
	}

	if _, err := c.db.Collection(UsersCollection).Indexes().CreateMany(ctx, users); err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", UsersCollection, err)
	}
	if _, err := c.db.Collection(TasksCollection).Indexes().CreateMany(ctx, tasks); err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", TasksCollection, err)
	}

	c.logger.Info("mongodb indexes ensured")
	return nil
}

// Close disconnects from the server.
func (c *Client) Close(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	c.logger.Info("disconnected from mongodb")
	return nil
}
