package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "TASKLOG"

// keys lists every configuration key so that environment variables are honored
// even when no config file defines them.
var keys = []string{
	"server.port",
	"server.log_level",
	"server.shutdown_timeout_seconds",
	"database.url",
	"database.max_open_conns",
	"database.max_idle_conns",
	"database.conn_max_lifetime_minutes",
	"auth.jwt_secret",
	"auth.token_lifetime_minutes",
	"auth.clock_skew_seconds",
	"auth.bcrypt_cost",
	"report.enabled",
	"report.job_name",
	"report.schedule",
	"report.user_id",
	"report.time_zone",
	"report.redis_addr",
	"report.redis_password",
	"report.redis_db",
	"report.redis_key",
	"report.redis_max_entries",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 5)

	v.SetDefault("auth.token_lifetime_minutes", 5)
	v.SetDefault("auth.clock_skew_seconds", 0)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("report.enabled", true)
	v.SetDefault("report.job_name", "print-task-details")
	v.SetDefault("report.schedule", "*/1 * * * *")
	v.SetDefault("report.user_id", 1)
	v.SetDefault("report.time_zone", "UTC")
	v.SetDefault("report.redis_db", 0)
	v.SetDefault("report.redis_key", "tasklog:reports")
	v.SetDefault("report.redis_max_entries", 100)
}

// Section names a top-level group of Config.
type Section string

const (
	SectionServer   Section = "server"
	SectionDatabase Section = "database"
	SectionAuth     Section = "auth"
	SectionReport   Section = "report"
)

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// A .env file in the working directory, if present, is loaded into the process
// environment first. Returns a populated Config struct or an error if
// loading/validation fails.
func Load() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFor reads the configuration the same way as Load but validates only
// the listed sections. The other sections are populated with whatever the
// sources and defaults hold and must not be relied upon.
func LoadFor(sections ...Section) (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if err := ValidateSections(cfg, sections...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func read() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	// DATABASE_URL is the conventional name used by tooling and CI.
	if err := v.BindEnv("database.url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind env for database.url: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ValidateSections checks the listed sections of cfg against their struct tags.
func ValidateSections(cfg *Config, sections ...Section) error {
	validate := validator.New()
	for _, section := range sections {
		var target any
		switch section {
		case SectionServer:
			target = cfg.Server
		case SectionDatabase:
			target = cfg.Database
		case SectionAuth:
			target = cfg.Auth
		case SectionReport:
			target = cfg.Report
		default:
			return fmt.Errorf("unknown configuration section %q", section)
		}
		if err := validate.Struct(target); err != nil {
			return fmt.Errorf("invalid configuration: %s: %w", section, err)
		}
	}
	return nil
}
