package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variable bound to each configuration key.
var envBindings = map[string]string{
	"server.port":                      "PORT",
	"server.base_url":                  "URL",
	"server.log_level":                 "LOG_LEVEL",
	"database.url":                     "DB_URL",
	"database.name":                    "DB_NAME",
	"database.connect_timeout_seconds": "DB_CONNECT_TIMEOUT_SECONDS",
	"auth.jwt_secret":                  "AUTH_JWT_SECRET",
	"auth.token_lifetime_minutes":      "AUTH_TOKEN_LIFETIME_MINUTES",
	"rate_limit.redis_addr":            "REDIS_ADDR",
	"rate_limit.redis_password":        "REDIS_PASSWORD",
	"rate_limit.requests_per_second":   "RATE_LIMIT_RPS",
	"rate_limit.burst":                 "RATE_LIMIT_BURST",
	"overdue.sweep_interval_seconds":   "OVERDUE_SWEEP_INTERVAL_SECONDS",
	"overdue.workers":                  "OVERDUE_WORKERS",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5130)
	v.SetDefault("server.base_url", "http://localhost")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.name", "anotaai")
	v.SetDefault("database.connect_timeout_seconds", 10)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("rate_limit.redis_addr", "")
	v.SetDefault("rate_limit.redis_password", "")
	v.SetDefault("rate_limit.requests_per_second", 10)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("overdue.sweep_interval_seconds", 0)
	v.SetDefault("overdue.workers", 4)
}

// Load configuration from environment variables and optionally config files.
// A .env file in the working directory is loaded first when present; it never
// overrides variables already set in the process environment. Environment
// variables take precedence over values from config.yaml.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom is Load with an explicit directory for .env and config.yaml.
func LoadFrom(dir string) (*Config, error) {
	if err := godotenv.Load(dir + "/.env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
