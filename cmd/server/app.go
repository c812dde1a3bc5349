package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alexedwards/argon2id"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/RuanLopes1350/AnotaAi/internal/api"
	apiMiddleware "github.com/RuanLopes1350/AnotaAi/internal/api/middleware"
	"github.com/RuanLopes1350/AnotaAi/internal/config"
	"github.com/RuanLopes1350/AnotaAi/internal/overdue"
	"github.com/RuanLopes1350/AnotaAi/internal/service"
	"github.com/RuanLopes1350/AnotaAi/internal/service/auth"
	"github.com/RuanLopes1350/AnotaAi/internal/validation"
)

// application holds the shared dependencies of the server and releases them
// on shutdown.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	backend *backend
	redis   *redis.Client

	jwtService auth.JWTService
	metrics    *apiMiddleware.Metrics
	limiter    *apiMiddleware.RateLimiter
	sweeper    *overdue.Sweeper

	taskHandler *api.TaskHandler
	userHandler *api.UserHandler
	authHandler *api.AuthHandler
}

// appOption customizes newApplication.
type appOption func(*appOptions)

type appOptions struct {
	secrets auth.SecretHasher
	answers auth.SecretHasher
}

// withHashers replaces the secret and security-answer hashers.
func withHashers(secrets, answers auth.SecretHasher) appOption {
	return func(o *appOptions) {
		o.secrets = secrets
		o.answers = answers
	}
}

// newApplication wires services and handlers over an opened backend.
func newApplication(cfg *config.Config, logger *slog.Logger, b *backend, opts ...appOption) (*application, error) {
	options := appOptions{
		secrets: auth.NewBcryptHasher(bcrypt.DefaultCost),
		answers: auth.NewArgon2idHasher(argon2id.DefaultParams),
	}
	for _, opt := range opts {
		opt(&options)
	}

	app := &application{
		config:  cfg,
		logger:  logger,
		backend: b,
	}

	if cfg.Auth.Enabled() {
		var err error
		app.jwtService, err = auth.NewJWTService(cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		logger.Info("JWT authentication enabled",
			slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))
	} else {
		logger.Warn("AUTH_JWT_SECRET not set, API routes are not authenticated")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = apiMiddleware.NewMetrics(registry)

	if cfg.RateLimit.Enabled() {
		app.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.RedisAddr,
			Password: cfg.RateLimit.RedisPassword,
		})
		app.limiter = apiMiddleware.NewRateLimiter(app.redis,
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, logger)
		logger.Info("rate limiting enabled",
			slog.Float64("requests_per_second", cfg.RateLimit.RequestsPerSecond),
			slog.Int("burst", cfg.RateLimit.Burst))
	}

	if cfg.Overdue.Enabled() {
		app.sweeper = overdue.NewSweeper(b.tasks, overdue.Config{
			Interval: cfg.Overdue.Interval(),
			Workers:  cfg.Overdue.Workers,
		}, logger)
	}

	app.initHandlers(options.secrets, options.answers)

	logger.Info("application initialized", slog.String("backend", b.name))
	return app, nil
}

func (app *application) initHandlers(secrets, answers auth.SecretHasher) {
	v := validation.New()

	tasks := service.NewTaskService(app.backend.tasks, v, app.logger)
	users := service.NewUserService(service.UserServiceDeps{
		Users:     app.backend.users,
		Tasks:     app.backend.tasks,
		Validator: v,
		Secrets:   secrets,
		Answers:   answers,
		Logger:    app.logger,
	})
	authn := service.NewAuthService(service.AuthServiceDeps{
		Users:     app.backend.users,
		Validator: v,
		Tokens:    app.jwtService,
		Secrets:   secrets,
		Answers:   answers,
		Logger:    app.logger,
	})

	app.taskHandler = api.NewTaskHandler(tasks, app.logger)
	app.userHandler = api.NewUserHandler(users, app.logger)
	app.authHandler = api.NewAuthHandler(authn, app.logger)
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if app.sweeper != nil {
		if err := app.sweeper.Start(ctx); err != nil {
			return fmt.Errorf("failed to start overdue sweeper: %w", err)
		}
	}

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup stops background work and releases the storage and Redis
// connections.
func (app *application) cleanup(ctx context.Context) {
	if app.sweeper != nil {
		app.sweeper.Stop()
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", slog.String("error", err.Error()))
		}
	}
	app.backend.close(ctx)
}
