package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. FLASHDECK_SERVER_PORT.
const EnvPrefix = "FLASHDECK"

// defaults lists every configuration key. Keys must be known to viper for
// environment overrides to reach Unmarshal, so required keys get an empty default.
var defaults = map[string]any{
	"server.port":                     8080,
	"server.log_level":                "info",
	"server.log_format":               "json",
	"server.shutdown_timeout_seconds": 10,

	"database.url":                       "",
	"database.max_open_conns":            10,
	"database.max_idle_conns":            5,
	"database.conn_max_lifetime_minutes": 5,

	"auth.jwt_secret":             "",
	"auth.token_lifetime_minutes": 60,
	"auth.clock_skew_seconds":     30,

	"srs.min_ease_factor":        1.3,
	"srs.initial_ease_factor":    2.5,
	"srs.lapse_ease_penalty":     0.8,
	"srs.lapse_interval":         1,
	"srs.first_interval":         1,
	"srs.second_interval":        6,
	"srs.hard_interval_modifier": 0.8,
	"srs.good_interval_modifier": 1.0,
	"srs.easy_interval_modifier": 1.3,

	"queue.learning_cap": 50,

	"quiz.default_count": 10,
	"quiz.max_count":     50,

	"rate_limit.reviews_per_window": 10,
	"rate_limit.window_seconds":     10,
}

// Load reads configuration from an optional config.yaml in the working
// directory and from FLASHDECK_* environment variables.
// Environment variables take precedence over values from the file.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file path. An empty path searches
// the working directory for config.yaml and tolerates its absence; an explicit
// path must exist.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct tag constraints and reports every failing field.
func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config validation failed: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
