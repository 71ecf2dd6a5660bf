package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/menu-service/internal/middleware"
	"github.com/deppfellow/menu-service/internal/server"
)

// HealthHandler serves the liveness root and the dependency report.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// Alive answers GET / with an empty 200.
func (h *HealthHandler) Alive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// CheckHealth reports database and Redis connectivity.
//
// It returns 503 when the database is unreachable. Redis is optional, so
// an unhealthy Redis is reported but keeps the status at 200.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	checksConfig := h.server.Config.Observability.HealthChecks

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
	}

	checks := make(map[string]any)
	isHealthy := true

	if checksConfig.Has("database") {
		dbStart := time.Now()
		err := h.ping(c.Request().Context(), checksConfig.Timeout, h.server.DB.Ping)
		checks["database"] = checkResult(dbStart, err)

		if err != nil {
			isHealthy = false
			logger.Error().Err(err).Dur("response_time", time.Since(dbStart)).Msg("database health check failed")
			h.recordFailure("database", dbStart, err)
		}
	}

	if checksConfig.Has("redis") && h.server.Redis != nil {
		redisStart := time.Now()
		err := h.ping(c.Request().Context(), checksConfig.Timeout, func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
		checks["redis"] = checkResult(redisStart, err)

		if err != nil {
			logger.Warn().Err(err).Dur("response_time", time.Since(redisStart)).Msg("redis health check failed")
			h.recordFailure("redis", redisStart, err)
		}
	}

	response["checks"] = checks

	if !isHealthy {
		response["status"] = "unhealthy"
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}

func (h *HealthHandler) ping(parent context.Context, timeout time.Duration, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()
	return fn(ctx)
}

func checkResult(start time.Time, err error) map[string]any {
	result := map[string]any{
		"status":        "healthy",
		"response_time": time.Since(start).String(),
	}
	if err != nil {
		result["status"] = "unhealthy"
		result["error"] = err.Error()
	}
	return result
}

// recordFailure emits a New Relic custom event when the agent runs.
func (h *HealthHandler) recordFailure(check string, start time.Time, err error) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	app.RecordCustomEvent("HealthCheckError", map[string]any{
		"check_type":       check,
		"operation":        "health_check",
		"error_type":       check + "_unhealthy",
		"response_time_ms": time.Since(start).Milliseconds(),
		"error_message":    err.Error(),
	})
}
