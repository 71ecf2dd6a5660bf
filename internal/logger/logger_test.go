package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/deppfellow/menu-service/internal/config"
)

func TestLoggerService_DisabledWithoutLicense(t *testing.T) {
	service := NewLoggerService(config.DefaultObservabilityConfig())

	assert.Nil(t, service.GetApplication())
	assert.NotPanics(t, service.Shutdown)

	var nilService *LoggerService
	assert.Nil(t, nilService.GetApplication())
}

func TestNewLogger_Level(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "warn"

	logger := NewLoggerWithService(cfg, nil)
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}

func TestFromContext(t *testing.T) {
	fallback := zerolog.Nop()
	assert.Same(t, &fallback, FromContext(context.Background(), &fallback))

	var buf bytes.Buffer
	scoped := zerolog.New(&buf).With().Str("request_id", "abc").Logger()
	ctx := scoped.WithContext(context.Background())

	FromContext(ctx, &fallback).Info().Msg("hello")
	assert.Contains(t, buf.String(), `"request_id":"abc"`)
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	assert.Equal(t, tracelog.LogLevelDebug, GetPgxTraceLogLevel(zerolog.DebugLevel))
	assert.Equal(t, tracelog.LogLevelError, GetPgxTraceLogLevel(zerolog.ErrorLevel))
	assert.Equal(t, tracelog.LogLevelNone, GetPgxTraceLogLevel(zerolog.Disabled))
}
