// Package config manages environment variables.
//
// It reads variables from the `.env` file and the process environment,
// loads them into structured Go types (struct), and
// validates that required values are present so they
// can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Fill defaults for everything the service can run without.
//   - Validate the result so the app fails fast on bad config.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: triggers godotenv's autoload feature.
	// If a `.env` file exists, it gets loaded into the process env
	// before any variable below is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	`koanf` reads config sources (here: environment variables) into a flat
	key-value store and then unmarshals it into the structs below.

	Key mapping:
	- Only variables with the MENU_ prefix are read.
	- Keys are lowercased and the prefix is removed.
	- A double underscore separates nesting levels:
	  MENU_SERVER__READ_TIMEOUT -> server.read_timeout -> Config.Server.ReadTimeout
	  MENU_OBSERVABILITY__NEW_RELIC__LICENSE_KEY -> observability.new_relic.license_key
*/

const (
	// EnvPrefix is the prefix every application variable must carry.
	EnvPrefix = "MENU_"

	// DefaultPort is used when neither MENU_SERVER__PORT nor PORT is set.
	DefaultPort = "3000"

	// DefaultDatabasePath is the SQLite file opened when nothing else is configured.
	DefaultDatabasePath = "./db.db"

	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from.
// The `validate:"..."` tags are enforced by go-playground/validator
// after defaults are applied.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
// Used to tag logs and to switch behavior based on env ("local" enables SQL logging).
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required,numeric"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is the allowed requests per second per client IP. Zero disables limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
}

// DatabaseConfig selects the SQL driver and tunes the connection pool.
//
// Path is used by the sqlite3 driver, DSN by the pgx driver.
type DatabaseConfig struct {
	Driver          string `koanf:"driver" validate:"required,oneof=sqlite3 pgx"`
	Path            string `koanf:"path" validate:"required_if=Driver sqlite3"`
	DSN             string `koanf:"dsn" validate:"required_if=Driver pgx"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"min=0"`
}

// RedisConfig contains Redis connection details for the read cache.
// Address is "host:port"; an empty address disables the cache.
type RedisConfig struct {
	Address  string        `koanf:"address" validate:"omitempty,hostname_port"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db" validate:"min=0"`
	CacheTTL time.Duration `koanf:"cache_ttl" validate:"min=0"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// LoadConfig loads configuration from the process environment, applies
// defaults, validates it and returns the resulting config.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", keyFromEnv), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.applyDefaults(os.Getenv)

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Service name and environment are forced so telemetry stays consistent.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// keyFromEnv turns MENU_SERVER__READ_TIMEOUT into server.read_timeout.
func keyFromEnv(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// applyDefaults fills every optional value that was not provided.
//
// lookup resolves plain (unprefixed) variables such as PORT.
func (c *Config) applyDefaults(lookup func(string) string) {
	if c.Primary.Env == "" {
		c.Primary.Env = "development"
	}

	if c.Server.Port == "" {
		c.Server.Port = lookup("PORT")
	}
	if c.Server.Port == "" {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}

	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	if c.Database.Driver == DriverSQLite && c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Database.ConnMaxIdleTime == 0 {
		c.Database.ConnMaxIdleTime = 60
	}

	if c.Redis.CacheTTL == 0 {
		c.Redis.CacheTTL = 30 * time.Second
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
	c.Observability.Environment = c.Primary.Env
	c.Observability.fillDefaults()
}
