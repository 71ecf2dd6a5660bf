// Package testhelpers builds fully wired servers for tests.
//
// Every server runs against its own SQLite file under t.TempDir(), so
// tests never share state and need no external database.
package testhelpers

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/menu-service/internal/config"
	"github.com/deppfellow/menu-service/internal/server"
)

// Option adjusts the config before the server is built.
type Option func(t *testing.T, cfg *config.Config)

// WithRedis starts an in-memory Redis and points the config at it.
// The returned pointer is filled once the option runs.
func WithRedis(mr **miniredis.Miniredis) Option {
	return func(t *testing.T, cfg *config.Config) {
		*mr = miniredis.RunT(t)
		cfg.Redis.Address = (*mr).Addr()
	}
}

// WithRateLimit enables the per-IP rate limiter.
func WithRateLimit(rps float64) Option {
	return func(_ *testing.T, cfg *config.Config) {
		cfg.Server.RateLimit = rps
	}
}

// NewTestConfig returns a complete config pointing at a temporary SQLite file.
func NewTestConfig(t *testing.T) *config.Config {
	t.Helper()

	observability := config.DefaultObservabilityConfig()
	observability.Environment = "test"
	observability.Logging.Level = "debug"
	observability.Logging.Format = "console"

	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               config.DefaultPort,
			ReadTimeout:        5,
			WriteTimeout:       5,
			IdleTimeout:        5,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			Path:         filepath.Join(t.TempDir(), "menu.db"),
			MaxOpenConns: 4,
			MaxIdleConns: 2,
		},
		Redis: config.RedisConfig{
			CacheTTL: time.Minute,
		},
		Observability: observability,
	}
}

// NewTestLogger writes through t.Log so output is attached to the failing test.
func NewTestLogger(t *testing.T) *zerolog.Logger {
	t.Helper()

	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	return &logger
}

// NewTestServer builds a server on a fresh database. It is closed on cleanup.
func NewTestServer(t *testing.T, opts ...Option) *server.Server {
	t.Helper()

	cfg := NewTestConfig(t)
	for _, opt := range opts {
		opt(t, cfg)
	}

	s, err := server.New(cfg, NewTestLogger(t), nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	return s
}
