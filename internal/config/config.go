package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Overdue   OverdueConfig   `mapstructure:"overdue"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	BaseURL  string `mapstructure:"base_url" validate:"required,url"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
// The URL scheme selects the storage backend.
type DatabaseConfig struct {
	URL                   string `mapstructure:"url" validate:"required"`
	Name                  string `mapstructure:"name" validate:"required"`
	ConnectTimeoutSeconds int    `mapstructure:"connect_timeout_seconds" validate:"gt=0"`
}

// ConnectTimeout returns the connection timeout as a duration.
func (c DatabaseConfig) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutSeconds) * time.Second
}

// AuthConfig contains all authentication and authorization settings.
// Bearer authentication is enabled only when JWTSecret is set.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
}

// Enabled reports whether bearer authentication is configured.
func (c AuthConfig) Enabled() bool {
	return c.JWTSecret != ""
}

// RateLimitConfig configures the optional Redis-backed rate limiter.
type RateLimitConfig struct {
	RedisAddr         string  `mapstructure:"redis_addr"`
	RedisPassword     string  `mapstructure:"redis_password"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gte=0"`
	Burst             int     `mapstructure:"burst" validate:"gte=0"`
}

// Enabled reports whether a limiter should be installed.
func (c RateLimitConfig) Enabled() bool {
	return c.RedisAddr != "" && c.RequestsPerSecond > 0
}

// OverdueConfig configures the background job that marks past-due tasks as
// overdue. A zero interval disables it.
type OverdueConfig struct {
	SweepIntervalSeconds int `mapstructure:"sweep_interval_seconds" validate:"gte=0"`
	Workers              int `mapstructure:"workers" validate:"gt=0"`
}

// Enabled reports whether the sweeper should run.
func (c OverdueConfig) Enabled() bool {
	return c.SweepIntervalSeconds > 0
}

// Interval returns the time between sweeps.
func (c OverdueConfig) Interval() time.Duration {
	return time.Duration(c.SweepIntervalSeconds) * time.Second
}
