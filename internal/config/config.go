package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Report   ReportConfig   `mapstructure:"report"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url"                       validate:"required,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"            validate:"gt=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"            validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
	// ClockSkewSeconds is the leeway applied to exp/nbf checks.
	ClockSkewSeconds int `mapstructure:"clock_skew_seconds" validate:"gte=0"`
	BcryptCost       int `mapstructure:"bcrypt_cost"        validate:"gte=4,lte=31"`
}

// ReportConfig configures the recurring task report job.
type ReportConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	JobName  string `mapstructure:"job_name"  validate:"required"`
	Schedule string `mapstructure:"schedule"  validate:"required"`
	UserID   int64  `mapstructure:"user_id"   validate:"gt=0"`
	TimeZone string `mapstructure:"time_zone" validate:"required,timezone"`

	// Redis sink is optional; an empty address disables it.
	RedisAddr       string `mapstructure:"redis_addr"        validate:"omitempty,hostname_port"`
	RedisPassword   string `mapstructure:"redis_password"`
	RedisDB         int    `mapstructure:"redis_db"          validate:"gte=0"`
	RedisKey        string `mapstructure:"redis_key"         validate:"required_with=RedisAddr"`
	RedisMaxEntries int64  `mapstructure:"redis_max_entries" validate:"gt=0"`
}
