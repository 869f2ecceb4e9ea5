package config

import (
	"time"

	"github.com/phrazzld/flashdeck/internal/domain/srs"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth" validate:"required"`
	SRS       SRSConfig       `mapstructure:"srs" validate:"required"`
	Queue     QueueConfig     `mapstructure:"queue" validate:"required"`
	Quiz      QuizConfig      `mapstructure:"quiz" validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat              string `mapstructure:"log_format" validate:"required,oneof=json text"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// ShutdownTimeout returns the graceful shutdown budget.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" validate:"gt=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" validate:"gte=0,ltefield=MaxOpenConns"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
	ClockSkewSeconds     int    `mapstructure:"clock_skew_seconds" validate:"gte=0,lte=300"`
}

// TokenLifetime returns how long issued access tokens stay valid.
func (c AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(c.TokenLifetimeMinutes) * time.Minute
}

// ClockSkew returns the leeway applied to token time claims.
func (c AuthConfig) ClockSkew() time.Duration {
	return time.Duration(c.ClockSkewSeconds) * time.Second
}

// SRSConfig overrides the scheduler constants.
type SRSConfig struct {
	MinEaseFactor        float64 `mapstructure:"min_ease_factor" validate:"gte=1.3"`
	InitialEaseFactor    float64 `mapstructure:"initial_ease_factor" validate:"gtefield=MinEaseFactor"`
	LapseEasePenalty     float64 `mapstructure:"lapse_ease_penalty" validate:"gte=0"`
	LapseInterval        int     `mapstructure:"lapse_interval" validate:"gte=1"`
	FirstInterval        int     `mapstructure:"first_interval" validate:"gte=1"`
	SecondInterval       int     `mapstructure:"second_interval" validate:"gte=1"`
	HardIntervalModifier float64 `mapstructure:"hard_interval_modifier" validate:"gt=0"`
	GoodIntervalModifier float64 `mapstructure:"good_interval_modifier" validate:"gt=0"`
	EasyIntervalModifier float64 `mapstructure:"easy_interval_modifier" validate:"gt=0"`
}

// Params converts the section into scheduler parameters.
func (c SRSConfig) Params() *srs.Params {
	return srs.NewParams(srs.ParamsConfig{
		MinEaseFactor:        c.MinEaseFactor,
		InitialEaseFactor:    c.InitialEaseFactor,
		LapseEasePenalty:     c.LapseEasePenalty,
		LapseInterval:        c.LapseInterval,
		FirstInterval:        c.FirstInterval,
		SecondInterval:       c.SecondInterval,
		HardIntervalModifier: c.HardIntervalModifier,
		GoodIntervalModifier: c.GoodIntervalModifier,
		EasyIntervalModifier: c.EasyIntervalModifier,
	})
}

// QueueConfig tunes daily queue selection.
type QueueConfig struct {
	LearningCap int `mapstructure:"learning_cap" validate:"gt=0"`
}

// QuizConfig bounds quiz requests.
type QuizConfig struct {
	DefaultCount int `mapstructure:"default_count" validate:"gt=0,ltefield=MaxCount"`
	MaxCount     int `mapstructure:"max_count" validate:"gt=0"`
}

// RateLimitConfig limits how fast a single user may submit ratings.
type RateLimitConfig struct {
	ReviewsPerWindow int `mapstructure:"reviews_per_window" validate:"gt=0"`
	WindowSeconds    int `mapstructure:"window_seconds" validate:"gt=0"`
}

// Window returns the rate limiting window.
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}
