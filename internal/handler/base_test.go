package handler

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/menu-service/internal/errs"
	"github.com/deppfellow/menu-service/internal/middleware"
)

func runFailingHandler(t *testing.T, failure error) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)

	c := echo.New().NewContext(httptest.NewRequest(http.MethodDelete, "/quotes/delete/7", nil), httptest.NewRecorder())
	c.SetParamNames(ParamID)
	c.SetParamValues("7")
	c.Set(middleware.LoggerKey, &logger)

	h := HandleNoContent(NewHandler(nil), func(c echo.Context, req *IDRequest) error {
		assert.Equal(t, int64(7), req.ID)
		return failure
	}, http.StatusOK, func() *IDRequest { return &IDRequest{} })

	require.ErrorIs(t, h(c), failure)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	assert.Equal(t, "handler execution failed", entry["message"])
	return entry
}

func TestHandleRequest_LogLevelByFailure(t *testing.T) {
	tests := []struct {
		name    string
		failure error
		level   string
	}{
		{name: "missing row", failure: pkgerrors.Wrap(sql.ErrNoRows, "table:quotes: delete id=7"), level: "warn"},
		{name: "not found", failure: errs.NewNotFoundError("Route not found", true, nil), level: "warn"},
		{name: "storage failure", failure: pkgerrors.New("disk I/O error"), level: "error"},
		{name: "internal http error", failure: errs.NewInternalServerError(), level: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := runFailingHandler(t, tt.failure)
			assert.Equal(t, tt.level, entry["level"])
		})
	}
}
